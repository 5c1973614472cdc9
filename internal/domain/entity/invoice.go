package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fieldservice-api/pkg/patch"
)

// Estados de factura.
const (
	InvoiceDraft   = "DRAFT"
	InvoiceSent    = "SENT"
	InvoicePaid    = "PAID"
	InvoiceOverdue = "OVERDUE"
	InvoiceVoid    = "VOID"
)

// InvoiceStatuses valores válidos de Invoice.Status.
var InvoiceStatuses = []string{InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceVoid}

// Invoice representa la cabecera de una factura.
type Invoice struct {
	ID            string
	TenantID      string
	InvoiceNumber string // INV-000001
	CustomerID    string
	JobID         *string
	Status        string
	IssueDate     time.Time
	DueDate       *time.Time
	TaxRate       decimal.Decimal // porcentaje, ej. 8.25
	Subtotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	LineItems     []*InvoiceLineItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recalculate deriva subtotales y totales desde las líneas y la tasa de impuesto.
func (inv *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for _, li := range inv.LineItems {
		li.Amount = li.Quantity.Mul(li.UnitPrice).Round(2)
		subtotal = subtotal.Add(li.Amount)
	}
	inv.Subtotal = subtotal
	inv.TaxTotal = subtotal.Mul(inv.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	inv.Total = inv.Subtotal.Add(inv.TaxTotal)
}

// InvoicePatch actualización parcial de una factura. LineItems presente reemplaza todas las líneas.
type InvoicePatch struct {
	Status    patch.Value[string]
	DueDate   patch.Value[time.Time]
	TaxRate   patch.Value[decimal.Decimal]
	Notes     patch.Value[string]
	JobID     patch.Value[string]
	LineItems patch.Value[[]*InvoiceLineItem]
}

// ApplyTo aplica los campos presentes sobre inv y recalcula totales si cambió algo que los afecte.
func (p InvoicePatch) ApplyTo(inv *Invoice) {
	p.Status.Apply(&inv.Status)
	p.DueDate.ApplyPtr(&inv.DueDate)
	p.TaxRate.Apply(&inv.TaxRate)
	p.Notes.Apply(&inv.Notes)
	p.JobID.ApplyPtr(&inv.JobID)
	p.LineItems.Apply(&inv.LineItems)
	if p.TaxRate.IsPresent() || p.LineItems.IsPresent() {
		inv.Recalculate()
	}
}
