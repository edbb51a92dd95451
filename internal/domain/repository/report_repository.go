package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSourceRow is one raw transaction read for the ledger report. The
// repository returns rows ordered by (date asc, created_at asc); CreatedAt
// is carried so the use case can keep that order stable when merging
// invoices and payments into one sequence.
type LedgerSourceRow struct {
	CustomerID string
	Date       time.Time
	CreatedAt  time.Time
	Reference  string
	Amount     decimal.Decimal
}

// ActivitySums are the dashboard counters for a date range.
type ActivitySums struct {
	InvoiceCount int64
	InvoicedSum  decimal.Decimal
	PaymentCount int64
	PaidSum      decimal.Decimal
}

// ReportRepository defines the read-only aggregation queries behind the
// balance, due & balance and ledger reports. Implementations never modify
// data. Soft-deleted invoices are excluded everywhere; payments are always
// included.
type ReportRepository interface {
	// InvoiceTotalsByCustomer sums total_amount of active invoices grouped
	// by customer. Customers with no invoices are simply absent.
	InvoiceTotalsByCustomer(ctx context.Context) (map[string]decimal.Decimal, error)
	PaymentTotalsByCustomer(ctx context.Context) (map[string]decimal.Decimal, error)

	InvoiceTotalForCustomer(ctx context.Context, customerID string) (decimal.Decimal, error)
	PaymentTotalForCustomer(ctx context.Context, customerID string) (decimal.Decimal, error)

	// LedgerInvoices returns active invoices (reference = invoice number,
	// positive amounts); empty customerID means all customers.
	LedgerInvoices(ctx context.Context, customerID string) ([]LedgerSourceRow, error)
	// LedgerPayments returns payments with positive amounts and reference =
	// the payment id; the use case flips the sign and synthesizes the label.
	LedgerPayments(ctx context.Context, customerID string) ([]LedgerSourceRow, error)

	ActivitySince(ctx context.Context, since time.Time) (*ActivitySums, error)
}
