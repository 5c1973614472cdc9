package entity

import "github.com/shopspring/decimal"

// InvoiceLineItem línea de detalle de una factura.
type InvoiceLineItem struct {
	ID          string
	InvoiceID   string
	TenantID    string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity * UnitPrice, redondeado a 2 decimales
	Position    int
}
