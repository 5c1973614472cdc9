package ports

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, tenant *entity.Tenant, customer *entity.Customer) ([]byte, error)
}
