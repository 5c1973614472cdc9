package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineItemResponse línea de detalle en la respuesta.
type InvoiceLineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID            string                    `json:"id"`
	TenantID      string                    `json:"tenantId"`
	InvoiceNumber string                    `json:"invoiceNumber"`
	CustomerID    string                    `json:"customerId"`
	JobID         *string                   `json:"jobId,omitempty"`
	Status        string                    `json:"status"`
	IssueDate     time.Time                 `json:"issueDate"`
	DueDate       *time.Time                `json:"dueDate,omitempty"`
	TaxRate       decimal.Decimal           `json:"taxRate"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	TaxTotal      decimal.Decimal           `json:"taxTotal"`
	Total         decimal.Decimal           `json:"total"`
	Notes         string                    `json:"notes,omitempty"`
	LineItems     []InvoiceLineItemResponse `json:"lineItems"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}
