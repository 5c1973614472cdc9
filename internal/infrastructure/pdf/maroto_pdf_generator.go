// Package pdf genera la representación PDF de una factura de servicio.
//
// Layout de la página Letter:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa (tenant)     │  N° Factura + Fechas        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Empresa / contacto / dirección principal │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto (tasa) / TOTAL                │
//	│  NOTAS + estado                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

var _ ports.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorVoid    = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes. Montos y fechas usan el
// locale, la moneda y la zona horaria del tenant.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	inv *entity.Invoice,
	tenant *entity.Tenant,
	customer *entity.Customer,
) ([]byte, error) {
	f := newFormatter(tenant)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.InvoiceNumber, true).
		WithAuthor(tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, tenant, f))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	m.AddRows(lineItemRows(inv.LineItems, f)...)

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv, f))
	m.AddRows(footerRows(inv)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Formato por tenant ────────────────────────────────────────────────────────

type formatter struct {
	printer *message.Printer
	unit    currency.Unit
	loc     *time.Location
}

func newFormatter(tenant *entity.Tenant) formatter {
	tag, err := language.Parse(tenant.Locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	unit, err := currency.ParseISO(tenant.Currency)
	if err != nil {
		unit = currency.USD
	}
	loc, err := time.LoadLocation(tenant.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return formatter{printer: message.NewPrinter(tag), unit: unit, loc: loc}
}

// money antepone el símbolo de la moneda y redondea a su escala estándar (USD: 2).
func (f formatter) money(d decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(f.unit)
	return f.printer.Sprintf("%v %v", currency.Symbol(f.unit), number.Decimal(d.InexactFloat64(), number.Scale(scale)))
}

func (f formatter) quantity(d decimal.Decimal) string {
	return f.printer.Sprint(d.InexactFloat64())
}

func (f formatter) date(t time.Time) string {
	return t.In(f.loc).Format("Jan 2, 2006")
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y número + fechas (der).
func headerRow(inv *entity.Invoice, tenant *entity.Tenant, f formatter) core.Row {
	right := []core.Component{
		text.New("INVOICE", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(inv.InvoiceNumber, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
		}),
		text.New("Issued: "+f.date(inv.IssueDate), props.Text{
			Size: 8, Align: align.Right, Top: 13, Color: colorGray,
		}),
	}
	if inv.DueDate != nil {
		right = append(right, text.New("Due: "+f.date(*inv.DueDate), props.Text{
			Size: 8, Align: align.Right, Top: 17, Color: colorGray,
		}))
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(tenant.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(right...),
	)
}

// billToRow: datos del cliente y su dirección principal.
func billToRow(c *entity.Customer) core.Row {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	contact := fmt.Sprintf("Email: %s   |   Phone: %s", nonEmpty(c.Email, "—"), nonEmpty(c.Phone, "—"))
	components := []core.Component{
		text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(name+" ("+c.CustomerNumber+")", props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
	}
	if c.CompanyName != "" {
		components = append(components, text.New(c.CompanyName, props.Text{Size: 8, Top: 16, Color: colorGray}))
	}
	if a := primaryAddress(c.Addresses); a != nil {
		components = append(components, text.New(formatAddress(a), props.Text{Size: 8, Top: 20, Color: colorGray}))
	}
	return row.New(26).Add(col.New(12).Add(components...))
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// lineItemRows: una fila por línea de la factura.
func lineItemRows(items []*entity.InvoiceLineItem, f formatter) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, li := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(f.quantity(li.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(li.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(f.money(li.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(f.money(li.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(inv *entity.Invoice, f formatter) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 12}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 0),
			label("Tax ("+inv.TaxRate.String()+"%):", 6),
			text.New("TOTAL:", grand),
		),
		col.New(3).Add(
			value(f.money(inv.Subtotal), 0),
			value(f.money(inv.TaxTotal), 6),
			text.New(f.money(inv.Total), grand),
		),
	)
}

// footerRows: notas y marca de anulación.
func footerRows(inv *entity.Invoice) []core.Row {
	rows := []core.Row{row.New(4)}
	if inv.Notes != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}),
			text.New(inv.Notes, props.Text{Size: 8, Top: 5, Color: colorGray}),
		)))
	}
	if inv.Status == entity.InvoiceVoid {
		rows = append(rows, row.New(14).Add(col.New(12).Add(
			text.New("VOID", props.Text{Style: fontstyle.Bold, Size: 20, Align: align.Center, Color: colorVoid, Top: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func primaryAddress(list []*entity.Address) *entity.Address {
	for _, a := range list {
		if a.IsPrimary {
			return a
		}
	}
	if len(list) > 0 {
		return list[0]
	}
	return nil
}

func formatAddress(a *entity.Address) string {
	parts := []string{a.Street, a.City}
	if region := strings.TrimSpace(a.State + " " + a.ZipCode); region != "" {
		parts = append(parts, region)
	}
	if a.Country != "" {
		parts = append(parts, a.Country)
	}
	return strings.Join(parts, ", ")
}
