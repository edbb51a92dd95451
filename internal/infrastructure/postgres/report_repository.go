package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implements the read-only aggregation queries for reports.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the adapter. Pass pool or tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InvoiceTotalsByCustomer sums total_amount of active invoices per customer.
func (r *ReportRepo) InvoiceTotalsByCustomer(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT customer_id, COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE status = $1
		GROUP BY customer_id`
	return r.totalsMap(ctx, query, entity.StatusActive)
}

// PaymentTotalsByCustomer sums payment amounts per customer.
func (r *ReportRepo) PaymentTotalsByCustomer(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT customer_id, COALESCE(SUM(amount), 0)
		FROM payments
		GROUP BY customer_id`
	return r.totalsMap(ctx, query)
}

// InvoiceTotalForCustomer sums one customer's active invoice totals.
func (r *ReportRepo) InvoiceTotalForCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM invoices WHERE customer_id = $1 AND status = $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, customerID, entity.StatusActive).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum invoices for customer: %w", err)
	}
	return total, nil
}

// PaymentTotalForCustomer sums one customer's payments.
func (r *ReportRepo) PaymentTotalForCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE customer_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, customerID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments for customer: %w", err)
	}
	return total, nil
}

// LedgerInvoices returns active invoices as ledger rows, oldest first.
func (r *ReportRepo) LedgerInvoices(ctx context.Context, customerID string) ([]repository.LedgerSourceRow, error) {
	query := `
		SELECT customer_id, date, created_at, invoice_number, total_amount
		FROM invoices
		WHERE status = $1`
	args := []any{entity.StatusActive}
	if customerID != "" {
		args = append(args, customerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	query += " ORDER BY date, created_at"
	return r.ledgerRows(ctx, query, args...)
}

// LedgerPayments returns payments as ledger rows, oldest first. The
// reference column carries the payment id; the report layer builds the
// display label from it.
func (r *ReportRepo) LedgerPayments(ctx context.Context, customerID string) ([]repository.LedgerSourceRow, error) {
	query := `
		SELECT customer_id, date, created_at, id, amount
		FROM payments
		WHERE 1=1`
	args := []any{}
	if customerID != "" {
		args = append(args, customerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	query += " ORDER BY date, created_at"
	return r.ledgerRows(ctx, query, args...)
}

// ActivitySince returns the dashboard counters from the given instant on.
func (r *ReportRepo) ActivitySince(ctx context.Context, since time.Time) (*repository.ActivitySums, error) {
	sums := &repository.ActivitySums{
		InvoicedSum: decimal.Zero,
		PaidSum:     decimal.Zero,
	}
	invQuery := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE status = $1 AND date >= $2`
	if err := r.q.QueryRow(ctx, invQuery, entity.StatusActive, since).Scan(&sums.InvoiceCount, &sums.InvoicedSum); err != nil {
		return nil, fmt.Errorf("invoice activity: %w", err)
	}
	payQuery := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments
		WHERE date >= $1`
	if err := r.q.QueryRow(ctx, payQuery, since).Scan(&sums.PaymentCount, &sums.PaidSum); err != nil {
		return nil, fmt.Errorf("payment activity: %w", err)
	}
	return sums, nil
}

func (r *ReportRepo) totalsMap(ctx context.Context, query string, args ...any) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("totals query: %w", err)
	}
	defer rows.Close()
	totals := map[string]decimal.Decimal{}
	for rows.Next() {
		var id string
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan totals row: %w", err)
		}
		totals[id] = sum
	}
	return totals, rows.Err()
}

func (r *ReportRepo) ledgerRows(ctx context.Context, query string, args ...any) ([]repository.LedgerSourceRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger query: %w", err)
	}
	defer rows.Close()
	var out []repository.LedgerSourceRow
	for rows.Next() {
		var row repository.LedgerSourceRow
		if err := rows.Scan(&row.CustomerID, &row.Date, &row.CreatedAt, &row.Reference, &row.Amount); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
