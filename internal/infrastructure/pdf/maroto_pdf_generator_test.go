package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

func sampleInvoice() *entity.Invoice {
	due := time.Date(2030, 5, 31, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		InvoiceNumber: "INV-000001",
		Status:        entity.InvoiceDraft,
		IssueDate:     time.Date(2030, 5, 1, 15, 0, 0, 0, time.UTC),
		DueDate:       &due,
		TaxRate:       decimal.RequireFromString("8.25"),
		Notes:         "Gracias",
		LineItems: []*entity.InvoiceLineItem{
			{Description: "Labor", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("85")},
			{Description: "Filter", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("24.99")},
		},
	}
	inv.Recalculate()
	return inv
}

func TestGenerateInvoicePDF(t *testing.T) {
	tenant := &entity.Tenant{Name: "Acme HVAC", Locale: "en-US", Currency: "USD", Timezone: "America/Chicago"}
	customer := &entity.Customer{
		FirstName: "John", LastName: "Smith", CustomerNumber: "CUST-000001",
		Addresses: []*entity.Address{{Street: "1 Elm St", City: "Dallas", State: "TX", ZipCode: "75201", Country: "US", IsPrimary: true}},
	}

	b, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), sampleInvoice(), tenant, customer)
	require.NoError(t, err)
	require.Greater(t, len(b), 4)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGenerateInvoicePDF_TenantSinLocale(t *testing.T) {
	inv := sampleInvoice()
	inv.Status = entity.InvoiceVoid
	b, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), inv, &entity.Tenant{Name: "X"}, &entity.Customer{})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestFormatter(t *testing.T) {
	f := newFormatter(&entity.Tenant{Locale: "en-US", Currency: "USD", Timezone: "America/Chicago"})
	assert.Contains(t, f.money(decimal.RequireFromString("211.08")), "211.08")
	assert.Contains(t, f.money(decimal.RequireFromString("1234.5")), "1,234.50")
	// 2030-05-01 02:00 UTC es todavía 30 de abril en Chicago.
	assert.Equal(t, "Apr 30, 2030", f.date(time.Date(2030, 5, 1, 2, 0, 0, 0, time.UTC)))

	fallback := newFormatter(&entity.Tenant{Locale: "??", Currency: "???", Timezone: "Nowhere/City"})
	assert.Equal(t, time.UTC, fallback.loc)
	assert.Contains(t, fallback.money(decimal.NewFromInt(5)), "5.00")
}

func TestFormatAddress(t *testing.T) {
	a := &entity.Address{Street: "1 Elm St", City: "Dallas", State: "TX", ZipCode: "75201", Country: "US"}
	assert.Equal(t, "1 Elm St, Dallas, TX 75201, US", formatAddress(a))

	first := &entity.Address{Street: "x"}
	a.IsPrimary = true
	assert.Equal(t, a, primaryAddress([]*entity.Address{first, a}))
	assert.Equal(t, first, primaryAddress([]*entity.Address{first}))
	assert.Nil(t, primaryAddress(nil))
}
