package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the header of a sales invoice. The customer reference is fixed
// at creation: the invoice number is committed to its series and never
// reissued, even after a soft delete. WithGST may change on update, always
// together with the recomputed totals (TotalGST nil ⇔ WithGST false).
type Invoice struct {
	ID              string
	CustomerID      string
	WithGST         bool
	InvoiceNumber   string // INV-NNN or INV-GST-NNN, unique within its series
	Date            time.Time
	ShippingAddress string // overrides the customer address on the printed invoice
	Freight         decimal.Decimal
	Subtotal        decimal.Decimal
	TotalGST        *decimal.Decimal // nil for non-GST invoices
	TotalAmount     decimal.Decimal
	Notes           string
	Status          string
	LineItems       []LineItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Deleted reports whether the invoice has been soft-deleted.
func (i *Invoice) Deleted() bool { return i.Status == StatusDeleted }

// LineItem is one billable row of an invoice.
type LineItem struct {
	ID          string
	InvoiceID   string
	Position    int
	Description string
	HSNCode     string
	Narration   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity × UnitPrice
	GST         *LineItemGST    // present exactly when the invoice is a GST invoice
}

// LineItemGST holds the tax variant of a line. Presence of the struct, not
// zero values, signals tax applicability downstream.
type LineItemGST struct {
	Rate     decimal.Decimal // percentage
	Amount   decimal.Decimal // rounded to the nearest whole rupee
	RowTotal decimal.Decimal // Amount + GST amount
}
