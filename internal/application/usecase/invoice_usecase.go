package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
	"github.com/jhoicas/fieldservice-api/pkg/patch"
)

// InvoiceUseCase casos de uso de facturas: alta con líneas, totales, anulación y PDF.
type InvoiceUseCase struct {
	runner    repository.TxRunner
	repos     repository.TxRepos
	tenants   repository.TenantRepository
	generator ports.InvoicePDFGenerator
}

// NewInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewInvoiceUseCase(
	runner repository.TxRunner,
	repos repository.TxRepos,
	tenants repository.TenantRepository,
	generator ports.InvoicePDFGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{runner: runner, repos: repos, tenants: tenants, generator: generator}
}

// Create valida la factura, calcula totales y la persiste con sus líneas y número INV-xxxxxx.
func (uc *InvoiceUseCase) Create(ctx context.Context, tenantID string, raw map[string]any) (*dto.InvoiceResponse, error) {
	p, err := invoiceSchema.Validate(raw, validation.ModeCreate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: p.String("customerId").OrElse(""),
		JobID:      p.String("jobId").Ptr(),
		Status:     p.String("status").OrElse(entity.InvoiceDraft),
		IssueDate:  p.Time("issueDate").OrElse(now),
		DueDate:    p.Time("dueDate").Ptr(),
		TaxRate:    p.Decimal("taxRate").OrElse(decimal.Zero),
		Notes:      p.String("notes").OrElse(""),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	items, _ := p.Objects("lineItems").Get()
	inv.LineItems = newLineItems(inv, items)
	inv.Recalculate()
	if err := checkDueDate(inv); err != nil {
		return nil, err
	}

	// ── Reserva de número + cabecera + líneas en una sola transacción ─────────
	err = createNumbered(ctx, uc.runner, tenantID, domain.SequenceInvoice, func(tx repository.TxRepos, number string) error {
		if err := uc.checkRefs(ctx, tx, inv); err != nil {
			return err
		}
		inv.InvoiceNumber = number
		if err := tx.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		for _, li := range inv.LineItems {
			if err := tx.Invoices.CreateLineItem(ctx, li); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toInvoiceResponse(inv)
	return &out, nil
}

// Get devuelve la factura con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, tenantID, id string) (*dto.InvoiceResponse, error) {
	inv, err := loadInvoice(ctx, uc.repos, tenantID, id)
	if err != nil {
		return nil, err
	}
	out := toInvoiceResponse(inv)
	return &out, nil
}

// List lista cabeceras de facturas.
func (uc *InvoiceUseCase) List(ctx context.Context, tenantID string, filter repository.InvoiceFilter, page dto.PageRequest) (*dto.ListResponse[dto.InvoiceResponse], error) {
	page = normalizePage(page)
	list, total, err := uc.repos.Invoices.List(ctx, tenantID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return listResponse(list, total, page, toInvoiceResponse), nil
}

// Update aplica una actualización parcial. lineItems presente reemplaza todas las líneas.
// Una factura anulada (VOID) no admite cambios.
func (uc *InvoiceUseCase) Update(ctx context.Context, tenantID, id string, raw map[string]any) (*dto.InvoiceResponse, error) {
	p, err := invoiceSchema.Validate(raw, validation.ModeUpdate)
	if err != nil {
		return nil, err
	}
	ip := entity.InvoicePatch{
		Status:  p.String("status"),
		DueDate: p.Time("dueDate"),
		TaxRate: p.Decimal("taxRate"),
		Notes:   p.String("notes"),
		JobID:   p.String("jobId"),
	}

	var inv *entity.Invoice
	err = uc.runner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		if inv, err = loadInvoice(ctx, tx, tenantID, id); err != nil {
			return err
		}
		if inv.Status == entity.InvoiceVoid {
			return fmt.Errorf("%w: la factura %s está anulada", domain.ErrConflict, inv.InvoiceNumber)
		}
		if items, ok := p.Objects("lineItems").Get(); ok {
			ip.LineItems = patch.Set(newLineItems(inv, items))
		}
		ip.ApplyTo(inv)
		if err := checkDueDate(inv); err != nil {
			return err
		}
		if ip.JobID.IsSet() {
			if err := uc.checkRefs(ctx, tx, inv); err != nil {
				return err
			}
		}
		if ip.LineItems.IsSet() {
			if err := tx.Invoices.ReplaceLineItems(ctx, tenantID, id, inv.LineItems); err != nil {
				return err
			}
		}
		inv.UpdatedAt = time.Now().UTC()
		return tx.Invoices.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	out := toInvoiceResponse(inv)
	return &out, nil
}

// Delete anula la factura (borrado lógico: status VOID). Anular dos veces no falla.
func (uc *InvoiceUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.runner.Run(ctx, func(tx repository.TxRepos) error {
		inv, err := loadInvoice(ctx, tx, tenantID, id)
		if err != nil {
			return err
		}
		if inv.Status == entity.InvoiceVoid {
			return nil
		}
		inv.Status = entity.InvoiceVoid
		inv.UpdatedAt = time.Now().UTC()
		return tx.Invoices.Update(ctx, inv)
	})
}

// PDF genera la representación PDF de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe en el tenant.
func (uc *InvoiceUseCase) PDF(ctx context.Context, tenantID, id string) ([]byte, string, error) {
	inv, err := loadInvoice(ctx, uc.repos, tenantID, id)
	if err != nil {
		return nil, "", err
	}
	tenant, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener tenant: %w", err)
	}
	if tenant == nil {
		return nil, "", domain.ErrUnknownTenant
	}
	customer, err := requireCustomer(ctx, uc.repos, tenantID, inv.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if customer.Addresses, err = uc.repos.Addresses.ListByCustomer(ctx, tenantID, customer.ID); err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, inv, tenant, customer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, inv.InvoiceNumber + ".pdf", nil
}

// checkRefs comprueba el cliente y, si viene, que el trabajo sea del mismo cliente.
func (uc *InvoiceUseCase) checkRefs(ctx context.Context, tx repository.TxRepos, inv *entity.Invoice) error {
	if _, err := requireCustomer(ctx, tx, inv.TenantID, inv.CustomerID); err != nil {
		return err
	}
	if inv.JobID == nil {
		return nil
	}
	job, err := requireJob(ctx, tx, inv.TenantID, *inv.JobID)
	if err != nil {
		return err
	}
	if job.CustomerID != inv.CustomerID {
		return domain.NotFound("trabajo", *inv.JobID)
	}
	return nil
}

func loadInvoice(ctx context.Context, tx repository.TxRepos, tenantID, id string) (*entity.Invoice, error) {
	inv, err := tx.Invoices.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NotFound("factura", id)
	}
	return inv, nil
}

func newLineItems(inv *entity.Invoice, items []*validation.Payload) []*entity.InvoiceLineItem {
	out := make([]*entity.InvoiceLineItem, 0, len(items))
	for i, it := range items {
		out = append(out, &entity.InvoiceLineItem{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			TenantID:    inv.TenantID,
			Description: it.String("description").OrElse(""),
			Quantity:    it.Decimal("quantity").OrElse(decimal.Zero),
			UnitPrice:   it.Decimal("unitPrice").OrElse(decimal.Zero),
			Position:    i,
		})
	}
	return out
}

func checkDueDate(inv *entity.Invoice) error {
	if inv.DueDate != nil && inv.DueDate.Before(inv.IssueDate) {
		return validation.NewError(validation.FieldError{Field: "dueDate", Reason: validation.ReasonRange})
	}
	return nil
}
