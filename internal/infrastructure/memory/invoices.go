package memory

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo facturas en memoria.
type InvoiceRepo struct{ v view }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.v.write(func(d *dataset) error {
		for _, other := range d.invoices {
			if other.TenantID == inv.TenantID && other.InvoiceNumber == inv.InvoiceNumber {
				return domain.ErrDuplicate
			}
		}
		stored := *inv
		stored.LineItems = nil
		d.invoices[inv.ID] = stored
		return nil
	})
}

func (r *InvoiceRepo) CreateLineItem(_ context.Context, item *entity.InvoiceLineItem) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.invoices[item.InvoiceID]; !ok {
			return domain.NotFound("factura", item.InvoiceID)
		}
		d.lineItems[item.InvoiceID] = append(d.lineItems[item.InvoiceID], *item)
		return nil
	})
}

func (r *InvoiceRepo) ReplaceLineItems(_ context.Context, tenantID, invoiceID string, items []*entity.InvoiceLineItem) error {
	return r.v.write(func(d *dataset) error {
		inv, ok := d.invoices[invoiceID]
		if !ok || inv.TenantID != tenantID {
			return domain.NotFound("factura", invoiceID)
		}
		list := make([]entity.InvoiceLineItem, 0, len(items))
		for _, it := range items {
			list = append(list, *it)
		}
		d.lineItems[invoiceID] = list
		return nil
	})
}

func (r *InvoiceRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	r.v.read(func(d *dataset) {
		inv, ok := d.invoices[id]
		if !ok || inv.TenantID != tenantID {
			return
		}
		for _, li := range d.lineItems[id] {
			li := li
			inv.LineItems = append(inv.LineItems, &li)
		}
		out = &inv
	})
	return out, nil
}

func (r *InvoiceRepo) List(_ context.Context, tenantID string, f repository.InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error) {
	var all []*entity.Invoice
	r.v.read(func(d *dataset) {
		for _, inv := range d.invoices {
			if inv.TenantID != tenantID ||
				(f.Status != "" && inv.Status != f.Status) ||
				(f.CustomerID != "" && inv.CustomerID != f.CustomerID) {
				continue
			}
			inv := inv
			all = append(all, &inv)
		}
	})
	sortByCreated(all, func(inv *entity.Invoice) int64 { return inv.CreatedAt.UnixNano() })
	return paginate(all, limit, offset), len(all), nil
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	return r.v.write(func(d *dataset) error {
		cur, ok := d.invoices[inv.ID]
		if !ok || cur.TenantID != inv.TenantID {
			return domain.NotFound("factura", inv.ID)
		}
		stored := *inv
		stored.LineItems = nil
		d.invoices[inv.ID] = stored
		return nil
	})
}
