// Package pdf renders the printable invoice document.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Business name + GSTIN  │  Invoice # + Date         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: customer / shop / phone / shipping address        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: # | Description | HSN | Qty | Rate | [GST%] | Amt   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Freight / [GST] / GRAND TOTAL           │
//	│  Amount in words + notes                                    │
//	└─────────────────────────────────────────────────────────────┘
//
// GST invoices get the two extra tax columns and the GST line in the
// totals block; non-GST invoices get the plain "INVOICE" title.
package pdf

import (
	"context"
	"fmt"

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

	appbilling "github.com/loop2cod/hs-accounts/internal/application/billing"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/pkg/numwords"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 58, Blue: 95}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Business identifies the seller printed on every invoice.
type Business struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// MarotoPDFGenerator implements billing.InvoicePDFGenerator using Maroto v2.
type MarotoPDFGenerator struct {
	business Business
}

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator(business Business) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{business: business}
}

// GenerateInvoicePDF renders the invoice and returns the PDF bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(invoice.InvoiceNumber, true).
		WithAuthor(g.business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.billToRow(invoice, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(invoice.WithGST))
	for _, r := range tableItemRows(invoice) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))
	for _, r := range footerRows(invoice) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: business name + GSTIN (left), invoice number + date (right).
func (g *MarotoPDFGenerator) headerRow(invoice *entity.Invoice) core.Row {
	title := "INVOICE"
	if invoice.WithGST {
		title = "TAX INVOICE"
	}
	date := invoice.Date.Format("02/01/2006")

	left := []core.Component{
		text.New(g.business.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	}
	sub := g.business.Address
	if g.business.GSTIN != "" {
		sub = joinNonEmpty(sub, "GSTIN: "+g.business.GSTIN)
	}
	if g.business.Phone != "" {
		sub = joinNonEmpty(sub, "Ph: "+g.business.Phone)
	}
	if sub != "" {
		left = append(left, text.New(sub, props.Text{Size: 8, Top: 9, Color: colorGray}))
	}

	return row.New(18).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// billToRow: buyer block. The shipping address on the invoice overrides the
// customer's stored address when present.
func (g *MarotoPDFGenerator) billToRow(invoice *entity.Invoice, customer *entity.Customer) core.Row {
	name := customer.Name
	if customer.ShopName != "" {
		name = customer.ShopName + " — " + customer.Name
	}
	address := invoice.ShippingAddress
	if address == "" {
		address = customer.Address
	}
	contact := joinNonEmpty(address, nonEmpty(customer.Phone, ""))
	if customer.GSTIN != "" {
		contact = joinNonEmpty(contact, "GSTIN: "+customer.GSTIN)
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: item table header. GST invoices carry the two tax columns.
func tableHeaderRow(withGST bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	if withGST {
		return row.New(8).Add(
			h("#", 1, align.Center),
			h("Description", 4, align.Left),
			h("HSN", 1, align.Center),
			h("Qty", 1, align.Right),
			h("Rate", 2, align.Right),
			h("GST%", 1, align.Center),
			h("Total", 2, align.Right),
		)
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Description", 5, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Right),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

// tableItemRows: one row per line item, in stored position order.
func tableItemRows(invoice *entity.Invoice) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(invoice.LineItems))
	for i, item := range invoice.LineItems {
		desc := item.Description
		if item.Narration != "" {
			desc += " (" + item.Narration + ")"
		}
		if invoice.WithGST {
			rate, rowTotal := "-", item.Amount
			if item.GST != nil {
				rate = item.GST.Rate.StringFixed(0) + "%"
				rowTotal = item.GST.RowTotal
			}
			result = append(result, row.New(7).Add(
				cell(fmt.Sprintf("%d", i+1), 1, align.Center),
				cell(desc, 4, align.Left),
				cell(item.HSNCode, 1, align.Center),
				cell(item.Quantity.String(), 1, align.Right),
				cell(item.UnitPrice.StringFixed(2), 2, align.Right),
				cell(rate, 1, align.Center),
				cell(rowTotal.StringFixed(2), 2, align.Right),
			))
			continue
		}
		result = append(result, row.New(7).Add(
			cell(fmt.Sprintf("%d", i+1), 1, align.Center),
			cell(desc, 5, align.Left),
			cell(item.HSNCode, 1, align.Center),
			cell(item.Quantity.String(), 1, align.Right),
			cell(item.UnitPrice.StringFixed(2), 2, align.Right),
			cell(item.Amount.StringFixed(2), 2, align.Right),
		))
	}
	return result
}

// totalsRow: right-aligned totals block.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	labels := []core.Component{label("Subtotal:", 1)}
	values := []core.Component{value("₹"+invoice.Subtotal.StringFixed(2), 1)}
	top := 6.0
	if !invoice.Freight.IsZero() {
		labels = append(labels, label("Freight:", top))
		values = append(values, value("₹"+invoice.Freight.StringFixed(2), top))
		top += 5
	}
	if invoice.WithGST && invoice.TotalGST != nil {
		labels = append(labels, label("GST:", top))
		values = append(values, value("₹"+invoice.TotalGST.StringFixed(2), top))
		top += 5
	}
	labels = append(labels, text.New("GRAND TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2, Top: top,
	}))
	values = append(values, text.New("₹"+invoice.TotalAmount.StringFixed(2), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1, Top: top,
	}))

	return row.New(28).Add(
		col.New(5),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
	)
}

// footerRows: amount in words plus free-form notes.
func footerRows(invoice *entity.Invoice) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("Amount in words: "+numwords.InRupees(invoice.TotalAmount.Round(0).IntPart()), props.Text{
				Style: fontstyle.Italic, Size: 8, Top: 2, Color: colorGray,
			}),
		)),
	}
	if invoice.Notes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Notes: "+invoice.Notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "   |   " + b
	}
}
