package repository

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// InvoiceFilter filtros opcionales del listado de facturas.
type InvoiceFilter struct {
	Status     string
	CustomerID string
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLineItem(ctx context.Context, item *entity.InvoiceLineItem) error
	// ReplaceLineItems borra las líneas actuales y persiste las nuevas.
	ReplaceLineItems(ctx context.Context, tenantID, invoiceID string, items []*entity.InvoiceLineItem) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Invoice, error)
	List(ctx context.Context, tenantID string, filter InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error)
	// Update persiste cabecera (estado, fechas, totales) de una factura ya cargada.
	Update(ctx context.Context, invoice *entity.Invoice) error
}
