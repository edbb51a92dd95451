package dto

import "github.com/shopspring/decimal"

// DueBalanceRow is one customer in the due & balance report. Due includes
// the opening balance; Balance = Due − Paid.
type DueBalanceRow struct {
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	ShopName       string          `json:"shop_name"`
	RouteWeekday   int             `json:"route_weekday"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Due            decimal.Decimal `json:"due"`
	Paid           decimal.Decimal `json:"paid"`
	Balance        decimal.Decimal `json:"balance"`
}

// Ledger entry types.
const (
	LedgerEntryInvoice = "invoice"
	LedgerEntryPayment = "payment"
)

// LedgerEntry is one row of the chronological ledger. Amount is signed:
// positive for invoices, negative for payments. RunningBalance folds the
// amounts from zero — the opening balance is not a ledger entry.
type LedgerEntry struct {
	Date           string          `json:"date"`
	Type           string          `json:"type"`
	Reference      string          `json:"reference"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// DashboardSummary is the landing-page summary block.
type DashboardSummary struct {
	TotalCustomers     int64           `json:"total_customers"`
	TotalOutstanding   decimal.Decimal `json:"total_outstanding"` // Σ positive balances
	InvoicesLast30Days int64           `json:"invoices_last_30_days"`
	InvoicedLast30Days decimal.Decimal `json:"invoiced_last_30_days"`
	PaymentsLast30Days int64           `json:"payments_last_30_days"`
	PaidLast30Days     decimal.Decimal `json:"paid_last_30_days"`
}
