package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

var invoiceColumns = []string{
	"id", "tenant_id", "invoice_number", "customer_id", "job_id", "status", "issue_date", "due_date",
	"tax_rate", "subtotal", "tax_total", "total", "notes", "created_at", "updated_at",
}

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query, args, err := psql.Insert("invoices").Columns(invoiceColumns...).Values(
		inv.ID, inv.TenantID, inv.InvoiceNumber, inv.CustomerID, inv.JobID, inv.Status, inv.IssueDate, inv.DueDate,
		inv.TaxRate, inv.Subtotal, inv.TaxTotal, inv.Total, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert invoice: %w", err)
	}
	_, err = r.q.Exec(ctx, query, args...)
	return wrapErr("insert invoice", err)
}

// CreateLineItem persiste una línea de detalle.
func (r *InvoiceRepo) CreateLineItem(ctx context.Context, li *entity.InvoiceLineItem) error {
	if li.ID == "" {
		li.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_line_items (id, invoice_id, tenant_id, description, quantity, unit_price, amount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		li.ID, li.InvoiceID, li.TenantID, li.Description, li.Quantity, li.UnitPrice, li.Amount, li.Position,
	)
	return wrapErr("insert invoice line item", err)
}

// ReplaceLineItems borra las líneas actuales de la factura y persiste las nuevas.
func (r *InvoiceRepo) ReplaceLineItems(ctx context.Context, tenantID, invoiceID string, items []*entity.InvoiceLineItem) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoice_line_items WHERE tenant_id = $1 AND invoice_id = $2`, tenantID, invoiceID)
	if err != nil {
		return wrapErr("delete invoice line items", err)
	}
	for _, li := range items {
		li.InvoiceID = invoiceID
		li.TenantID = tenantID
		if err := r.CreateLineItem(ctx, li); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene una factura del tenant con sus líneas; nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Invoice, error) {
	query, args, err := psql.Select(invoiceColumns...).From("invoices").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get invoice: %w", err)
	}
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get invoice", err)
	}
	items, err := r.lineItems(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items
	return inv, nil
}

func (r *InvoiceRepo) lineItems(ctx context.Context, tenantID, invoiceID string) ([]*entity.InvoiceLineItem, error) {
	query := `
		SELECT id, invoice_id, tenant_id, description, quantity, unit_price, amount, position
		FROM invoice_line_items WHERE tenant_id = $1 AND invoice_id = $2 ORDER BY position`
	rows, err := r.q.Query(ctx, query, tenantID, invoiceID)
	if err != nil {
		return nil, wrapErr("list invoice line items", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLineItem
	for rows.Next() {
		var li entity.InvoiceLineItem
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.TenantID, &li.Description, &li.Quantity, &li.UnitPrice, &li.Amount, &li.Position); err != nil {
			return nil, wrapErr("scan invoice line item", err)
		}
		list = append(list, &li)
	}
	return list, wrapErr("list invoice line items", rows.Err())
}

// List facturas del tenant (solo cabeceras), más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, tenantID string, f repository.InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error) {
	b := psql.Select().From("invoices").Where(sq.Eq{"tenant_id": tenantID})
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.CustomerID != "" {
		b = b.Where(sq.Eq{"customer_id": f.CustomerID})
	}
	var list []*entity.Invoice
	total, err := countAndList(ctx, r.q, b, invoiceColumns, "created_at DESC", limit, offset, func(rows pgx.Rows) error {
		inv, err := scanInvoice(rows)
		if err != nil {
			return err
		}
		list = append(list, inv)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update persiste la cabecera completa (estado, fechas, tasa, totales).
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET job_id     = $3,
		    status     = $4,
		    due_date   = $5,
		    tax_rate   = $6,
		    subtotal   = $7,
		    tax_total  = $8,
		    total      = $9,
		    notes      = $10,
		    updated_at = $11
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		inv.TenantID, inv.ID, inv.JobID, inv.Status, inv.DueDate, inv.TaxRate,
		inv.Subtotal, inv.TaxTotal, inv.Total, inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		return wrapErr("update invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("factura", inv.ID)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.TenantID, &inv.InvoiceNumber, &inv.CustomerID, &inv.JobID, &inv.Status,
		&inv.IssueDate, &inv.DueDate, &inv.TaxRate, &inv.Subtotal, &inv.TaxTotal, &inv.Total, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
