// Package billing holds the invoice money math: per-line amounts, GST
// rounding, subtotal/freight/grand-total composition and invoice-number
// formatting. Everything here is pure; persistence and sequencing live in
// the application and infrastructure layers.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// LineInput is one proposed invoice row as the caller supplies it. GSTRate
// is only consulted when the invoice carries GST; a nil rate counts as 0%.
type LineInput struct {
	Description string
	HSNCode     string
	Narration   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	GSTRate     *decimal.Decimal
}

// empty reports whether the row carries no data at all. Blank trailing rows
// from the invoice form are discarded, not rejected.
func (in LineInput) empty() bool {
	return strings.TrimSpace(in.Description) == "" && in.Quantity.IsZero() && in.UnitPrice.IsZero()
}

// Totals is the fully computed, persistable body of an invoice.
type Totals struct {
	Lines      []entity.LineItem
	Subtotal   decimal.Decimal  // Σ amount, before freight and GST
	TotalGST   *decimal.Decimal // nil for non-GST invoices
	GrandTotal decimal.Decimal  // subtotal + freight (+ total GST)
}

// Compute transforms proposed line items into computed invoice totals.
//
// Per retained line: amount = quantity × unitPrice. On a GST invoice each
// line additionally gets gstAmount = round(amount × rate / 100) to the
// nearest whole rupee (half away from zero, amounts are never negative) and
// rowTotal = amount + gstAmount. Totals are never trusted from the caller;
// create and update both go through here.
func Compute(items []LineInput, withGST bool, freight decimal.Decimal) (*Totals, error) {
	if freight.IsNegative() {
		return nil, domain.Validationf("freight cannot be negative")
	}

	retained := make([]LineInput, 0, len(items))
	for _, in := range items {
		if !in.empty() {
			retained = append(retained, in)
		}
	}
	if len(retained) == 0 {
		return nil, domain.Validationf("add at least one line item")
	}

	t := &Totals{Lines: make([]entity.LineItem, 0, len(retained))}
	subtotal := decimal.Zero
	totalGST := decimal.Zero
	for pos, in := range retained {
		if in.Quantity.IsNegative() || in.UnitPrice.IsNegative() {
			return nil, domain.Validationf("quantity and unit price cannot be negative")
		}
		amount := in.Quantity.Mul(in.UnitPrice)
		line := entity.LineItem{
			Position:    pos,
			Description: strings.TrimSpace(in.Description),
			HSNCode:     strings.TrimSpace(in.HSNCode),
			Narration:   strings.TrimSpace(in.Narration),
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Amount:      amount,
		}
		if withGST {
			rate := decimal.Zero
			if in.GSTRate != nil {
				rate = *in.GSTRate
			}
			if rate.IsNegative() {
				return nil, domain.Validationf("GST rate cannot be negative")
			}
			gstAmount := amount.Mul(rate).Div(oneHundred).Round(0)
			line.GST = &entity.LineItemGST{
				Rate:     rate,
				Amount:   gstAmount,
				RowTotal: amount.Add(gstAmount),
			}
			totalGST = totalGST.Add(gstAmount)
		}
		subtotal = subtotal.Add(amount)
		t.Lines = append(t.Lines, line)
	}

	t.Subtotal = subtotal
	taxable := subtotal.Add(freight)
	if withGST {
		t.TotalGST = &totalGST
		t.GrandTotal = taxable.Add(totalGST)
	} else {
		t.GrandTotal = taxable
	}
	return t, nil
}
