package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/application/reports"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers []*entity.Customer
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	f.customers = append(f.customers, c)
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.Phone == phone && !c.Deleted() {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) List(_ context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		if c.Deleted() && !filter.IncludeDeleted {
			continue
		}
		if filter.RouteWeekday != nil && c.RouteWeekday != *filter.RouteWeekday {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, _ *entity.Customer) error { return nil }

func (f *fakeCustomerRepo) SoftDelete(_ context.Context, id string) error {
	for _, c := range f.customers {
		if c.ID == id {
			c.Status = entity.StatusDeleted
		}
	}
	return nil
}

func (f *fakeCustomerRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, c := range f.customers {
		if !c.Deleted() {
			n++
		}
	}
	return n, nil
}

type fakeReportRepo struct {
	invoices []repository.LedgerSourceRow
	payments []repository.LedgerSourceRow
}

func (f *fakeReportRepo) InvoiceTotalsByCustomer(_ context.Context) (map[string]decimal.Decimal, error) {
	totals := map[string]decimal.Decimal{}
	for _, r := range f.invoices {
		totals[r.CustomerID] = totals[r.CustomerID].Add(r.Amount)
	}
	return totals, nil
}

func (f *fakeReportRepo) PaymentTotalsByCustomer(_ context.Context) (map[string]decimal.Decimal, error) {
	totals := map[string]decimal.Decimal{}
	for _, r := range f.payments {
		totals[r.CustomerID] = totals[r.CustomerID].Add(r.Amount)
	}
	return totals, nil
}

func (f *fakeReportRepo) InvoiceTotalForCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	totals, _ := f.InvoiceTotalsByCustomer(ctx)
	return totals[customerID], nil
}

func (f *fakeReportRepo) PaymentTotalForCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	totals, _ := f.PaymentTotalsByCustomer(ctx)
	return totals[customerID], nil
}

func filterRows(rows []repository.LedgerSourceRow, customerID string) []repository.LedgerSourceRow {
	if customerID == "" {
		return rows
	}
	var out []repository.LedgerSourceRow
	for _, r := range rows {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeReportRepo) LedgerInvoices(_ context.Context, customerID string) ([]repository.LedgerSourceRow, error) {
	return filterRows(f.invoices, customerID), nil
}

func (f *fakeReportRepo) LedgerPayments(_ context.Context, customerID string) ([]repository.LedgerSourceRow, error) {
	return filterRows(f.payments, customerID), nil
}

func (f *fakeReportRepo) ActivitySince(_ context.Context, since time.Time) (*repository.ActivitySums, error) {
	sums := &repository.ActivitySums{InvoicedSum: decimal.Zero, PaidSum: decimal.Zero}
	for _, r := range f.invoices {
		if !r.Date.Before(since) {
			sums.InvoiceCount++
			sums.InvoicedSum = sums.InvoicedSum.Add(r.Amount)
		}
	}
	for _, r := range f.payments {
		if !r.Date.Before(since) {
			sums.PaymentCount++
			sums.PaidSum = sums.PaidSum.Add(r.Amount)
		}
	}
	return sums, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	custA = "11111111-1111-1111-1111-111111111111"
	custB = "22222222-2222-2222-2222-222222222222"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func at(d int, h int) time.Time {
	return time.Date(2025, time.March, d, h, 0, 0, 0, time.UTC)
}

func fixture() (*fakeCustomerRepo, *fakeReportRepo, *reports.UseCase) {
	customers := &fakeCustomerRepo{customers: []*entity.Customer{
		{ID: custA, Name: "Ravi", ShopName: "Sree Silks", Phone: "9000000001", RouteWeekday: 1, OpeningBalance: decimal.NewFromInt(1000), Status: entity.StatusActive},
		{ID: custB, Name: "Kumar", ShopName: "Anitha Textiles", Phone: "9000000002", RouteWeekday: 2, OpeningBalance: decimal.Zero, Status: entity.StatusActive},
	}}
	reportRepo := &fakeReportRepo{
		invoices: []repository.LedgerSourceRow{
			{CustomerID: custA, Date: day(3), CreatedAt: at(3, 10), Reference: "INV-001", Amount: decimal.NewFromInt(5000)},
			{CustomerID: custA, Date: day(10), CreatedAt: at(10, 11), Reference: "INV-GST-001", Amount: decimal.NewFromInt(5250)},
			{CustomerID: custB, Date: day(5), CreatedAt: at(5, 9), Reference: "INV-002", Amount: decimal.NewFromInt(2000)},
		},
		payments: []repository.LedgerSourceRow{
			{CustomerID: custA, Date: day(7), CreatedAt: at(7, 15), Reference: "aaaa-bbbb-cc1234", Amount: decimal.NewFromInt(3000)},
		},
	}
	return customers, reportRepo, reports.NewUseCase(customers, reportRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// CustomerBalance
// ──────────────────────────────────────────────────────────────────────────────

// Due includes the opening balance on top of the invoiced total.
func TestCustomerBalance_IncludesOpeningBalance(t *testing.T) {
	_, _, uc := fixture()

	balance, err := uc.CustomerBalance(context.Background(), custA)
	require.NoError(t, err)

	assert.True(t, balance.Due.Equal(decimal.NewFromInt(11250)), "5000 + 5250 + 1000 opening, got %s", balance.Due)
	assert.True(t, balance.Paid.Equal(decimal.NewFromInt(3000)))
	assert.True(t, balance.Balance.Equal(decimal.NewFromInt(8250)))
}

// A malformed customer id yields a zero balance, not an error.
func TestCustomerBalance_MalformedIDYieldsZeros(t *testing.T) {
	_, _, uc := fixture()

	balance, err := uc.CustomerBalance(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.True(t, balance.Due.IsZero())
	assert.True(t, balance.Paid.IsZero())
	assert.True(t, balance.Balance.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// DueBalanceReport
// ──────────────────────────────────────────────────────────────────────────────

// Each row is computed from that customer's totals alone; adding another
// customer's transactions never changes an existing row.
func TestDueBalanceReport_RowsAreIndependent(t *testing.T) {
	_, reportRepo, uc := fixture()

	before, err := uc.DueBalanceReport(context.Background(), nil)
	require.NoError(t, err)

	reportRepo.invoices = append(reportRepo.invoices, repository.LedgerSourceRow{
		CustomerID: custB, Date: day(20), CreatedAt: at(20, 10), Reference: "INV-003", Amount: decimal.NewFromInt(999),
	})
	after, err := uc.DueBalanceReport(context.Background(), nil)
	require.NoError(t, err)

	rowA := func(rows []dto.DueBalanceRow) dto.DueBalanceRow {
		for _, r := range rows {
			if r.CustomerID == custA {
				return r
			}
		}
		t.Fatal("row for customer A not found")
		return dto.DueBalanceRow{}
	}
	assert.True(t, rowA(before).Balance.Equal(rowA(after).Balance),
		"customer A's balance must not move when customer B is invoiced")
}

func TestDueBalanceReport_SortedByShopThenName(t *testing.T) {
	_, _, uc := fixture()

	rows, err := uc.DueBalanceReport(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Anitha Textiles", rows[0].ShopName)
	assert.Equal(t, "Sree Silks", rows[1].ShopName)
}

func TestDueBalanceReport_WeekdayFilter(t *testing.T) {
	_, _, uc := fixture()

	monday := 1
	rows, err := uc.DueBalanceReport(context.Background(), &monday)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, custA, rows[0].CustomerID)
}

// Soft-deleted customers drop out of the report even though their invoices
// are still stored.
func TestDueBalanceReport_ExcludesDeletedCustomers(t *testing.T) {
	customers, _, uc := fixture()

	require.NoError(t, customers.SoftDelete(context.Background(), custB))
	rows, err := uc.DueBalanceReport(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, custA, rows[0].CustomerID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ChronologicalWithRunningBalance(t *testing.T) {
	_, _, uc := fixture()

	entries, err := uc.Ledger(context.Background(), custA)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, dto.LedgerEntryInvoice, entries[0].Type)
	assert.Equal(t, "INV-001", entries[0].Reference)
	assert.True(t, entries[0].RunningBalance.Equal(decimal.NewFromInt(5000)))

	assert.Equal(t, dto.LedgerEntryPayment, entries[1].Type)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(-3000)), "payments are negative")
	assert.True(t, entries[1].RunningBalance.Equal(decimal.NewFromInt(2000)))

	assert.Equal(t, "INV-GST-001", entries[2].Reference)
	assert.True(t, entries[2].RunningBalance.Equal(decimal.NewFromInt(7250)))
}

// Payment entries display "Payment " + the last six characters of the id.
func TestLedger_PaymentReferenceLabel(t *testing.T) {
	_, _, uc := fixture()

	entries, err := uc.Ledger(context.Background(), custA)
	require.NoError(t, err)
	assert.Equal(t, "Payment cc1234", entries[1].Reference)
}

// The running balance starts from zero: the final ledger balance differs
// from CustomerBalance by exactly the opening balance.
func TestLedger_DivergesFromBalanceByOpening(t *testing.T) {
	customers, _, uc := fixture()

	entries, err := uc.Ledger(context.Background(), custA)
	require.NoError(t, err)
	balance, err := uc.CustomerBalance(context.Background(), custA)
	require.NoError(t, err)

	customer, err := customers.GetByID(context.Background(), custA)
	require.NoError(t, err)

	final := entries[len(entries)-1].RunningBalance
	assert.True(t, balance.Balance.Sub(final).Equal(customer.OpeningBalance),
		"balance %s − ledger %s must equal opening %s", balance.Balance, final, customer.OpeningBalance)
}

// Two same-day transactions keep creation order on every run.
func TestLedger_SameDayTieBreakByCreation(t *testing.T) {
	customers, reportRepo, _ := fixture()
	reportRepo.invoices = append(reportRepo.invoices, repository.LedgerSourceRow{
		CustomerID: custA, Date: day(7), CreatedAt: at(7, 9), Reference: "INV-005", Amount: decimal.NewFromInt(100),
	})
	uc := reports.NewUseCase(customers, reportRepo)

	entries, err := uc.Ledger(context.Background(), custA)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// March 7th: invoice created 09:00 before payment created 15:00.
	assert.Equal(t, "INV-005", entries[1].Reference)
	assert.Equal(t, "Payment cc1234", entries[2].Reference)
}

func TestLedger_MalformedCustomerIDYieldsEmpty(t *testing.T) {
	_, _, uc := fixture()

	entries, err := uc.Ledger(context.Background(), "oid-style-id")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_OutstandingSumsOnlyPositiveBalances(t *testing.T) {
	customers, reportRepo, uc := fixture()
	// Customer B overpays: credit balances must not offset A's dues.
	reportRepo.payments = append(reportRepo.payments, repository.LedgerSourceRow{
		CustomerID: custB, Date: day(8), CreatedAt: at(8, 10), Reference: "p2", Amount: decimal.NewFromInt(5000),
	})
	dashboard := reports.NewDashboardUseCase(customers, reportRepo, uc)

	summary, err := dashboard.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalCustomers)
	// A: 5000+5250+1000 − 3000 = 8250. B: 2000 − 5000 = −3000, ignored.
	assert.True(t, summary.TotalOutstanding.Equal(decimal.NewFromInt(8250)),
		"got %s", summary.TotalOutstanding)
}
