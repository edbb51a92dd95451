// Package reports computes the derived financial views: per-customer
// outstanding balance, the due & balance report, the chronological ledger
// and the dashboard summary. Everything here is a pure read over committed
// data; a payment recorded between two reads of the same report is an
// accepted staleness window, not something to lock against.
package reports

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase aggregates invoices and payments into reports.
type UseCase struct {
	customerRepo repository.CustomerRepository
	reportRepo   repository.ReportRepository
}

// NewUseCase builds the use case.
func NewUseCase(customerRepo repository.CustomerRepository, reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{customerRepo: customerRepo, reportRepo: reportRepo}
}

// CustomerBalance computes the outstanding-balance block for one customer:
// due = Σ active invoice totals + opening balance, paid = Σ payments,
// balance = due − paid. A malformed id yields zeros, not an error.
func (uc *UseCase) CustomerBalance(ctx context.Context, customerID string) (*dto.BalanceResponse, error) {
	if _, err := uuid.Parse(customerID); err != nil {
		return &dto.BalanceResponse{Due: decimal.Zero, Paid: decimal.Zero, Balance: decimal.Zero}, nil
	}
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	opening := decimal.Zero
	if customer != nil {
		opening = customer.OpeningBalance
	}
	due, err := uc.reportRepo.InvoiceTotalForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	paid, err := uc.reportRepo.PaymentTotalForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	due = due.Add(opening)
	return &dto.BalanceResponse{Due: due, Paid: paid, Balance: due.Sub(paid)}, nil
}

// DueBalanceReport computes the balance row for every active customer,
// optionally filtered to one route weekday, sorted by shop name then name.
//
// Two grouped sums plus the customer list; each customer's row is built only
// from its own totals, so one customer's figures can never leak into
// another's.
func (uc *UseCase) DueBalanceReport(ctx context.Context, weekday *int) ([]dto.DueBalanceRow, error) {
	customers, err := uc.customerRepo.List(ctx, repository.CustomerFilter{RouteWeekday: weekday})
	if err != nil {
		return nil, err
	}
	invoiced, err := uc.reportRepo.InvoiceTotalsByCustomer(ctx)
	if err != nil {
		return nil, err
	}
	paidTotals, err := uc.reportRepo.PaymentTotalsByCustomer(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.DueBalanceRow, 0, len(customers))
	for _, c := range customers {
		due := invoiced[c.ID].Add(c.OpeningBalance)
		paid := paidTotals[c.ID]
		rows = append(rows, dto.DueBalanceRow{
			CustomerID:     c.ID,
			CustomerName:   c.Name,
			ShopName:       c.ShopName,
			RouteWeekday:   c.RouteWeekday,
			OpeningBalance: c.OpeningBalance,
			Due:            due,
			Paid:           paid,
			Balance:        due.Sub(paid),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ShopName != rows[j].ShopName {
			return rows[i].ShopName < rows[j].ShopName
		}
		return rows[i].CustomerName < rows[j].CustomerName
	})
	return rows, nil
}

// Ledger merges every active invoice (positive) and every payment
// (negative) for one or all customers into one chronological sequence and
// folds a running balance from zero.
//
// Order is date ascending with record creation order as the tie-break; the
// stable sort keeps two same-day transactions in the same relative order on
// every run. The opening balance is deliberately not an entry here — the
// final running balance differs from CustomerBalance by exactly that amount.
func (uc *UseCase) Ledger(ctx context.Context, customerID string) ([]dto.LedgerEntry, error) {
	if customerID != "" {
		if _, err := uuid.Parse(customerID); err != nil {
			return []dto.LedgerEntry{}, nil
		}
	}
	invoices, err := uc.reportRepo.LedgerInvoices(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.reportRepo.LedgerPayments(ctx, customerID)
	if err != nil {
		return nil, err
	}

	type row struct {
		src  repository.LedgerSourceRow
		kind string
		ref  string
		amt  decimal.Decimal
	}
	rows := make([]row, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		rows = append(rows, row{src: inv, kind: dto.LedgerEntryInvoice, ref: inv.Reference, amt: inv.Amount})
	}
	for _, p := range payments {
		rows = append(rows, row{src: p, kind: dto.LedgerEntryPayment, ref: paymentReference(p.Reference), amt: p.Amount.Neg()})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].src.Date.Equal(rows[j].src.Date) {
			return rows[i].src.Date.Before(rows[j].src.Date)
		}
		return rows[i].src.CreatedAt.Before(rows[j].src.CreatedAt)
	})

	running := decimal.Zero
	entries := make([]dto.LedgerEntry, 0, len(rows))
	for _, r := range rows {
		running = running.Add(r.amt)
		entries = append(entries, dto.LedgerEntry{
			Date:           r.src.Date.Format(dateLayout),
			Type:           r.kind,
			Reference:      r.ref,
			Amount:         r.amt,
			RunningBalance: running,
		})
	}
	return entries, nil
}

// paymentReference synthesizes the display label for a payment entry from
// the tail of its id.
func paymentReference(id string) string {
	tail := id
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return "Payment " + tail
}
