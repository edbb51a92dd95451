package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/loop2cod/hs-accounts/internal/application/billing"
	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

// memReportRepo returns configured totals; the full aggregation logic is
// covered in the reports package tests.
type memReportRepo struct {
	invoiced map[string]decimal.Decimal
	paid     map[string]decimal.Decimal
}

func (m *memReportRepo) InvoiceTotalsByCustomer(_ context.Context) (map[string]decimal.Decimal, error) {
	return m.invoiced, nil
}

func (m *memReportRepo) PaymentTotalsByCustomer(_ context.Context) (map[string]decimal.Decimal, error) {
	return m.paid, nil
}

func (m *memReportRepo) InvoiceTotalForCustomer(_ context.Context, customerID string) (decimal.Decimal, error) {
	return m.invoiced[customerID], nil
}

func (m *memReportRepo) PaymentTotalForCustomer(_ context.Context, customerID string) (decimal.Decimal, error) {
	return m.paid[customerID], nil
}

func (m *memReportRepo) LedgerInvoices(_ context.Context, _ string) ([]repository.LedgerSourceRow, error) {
	return nil, nil
}

func (m *memReportRepo) LedgerPayments(_ context.Context, _ string) ([]repository.LedgerSourceRow, error) {
	return nil, nil
}

func (m *memReportRepo) ActivitySince(_ context.Context, _ time.Time) (*repository.ActivitySums, error) {
	return &repository.ActivitySums{}, nil
}

func newCustomerFixture() (*memCustomerRepo, *memReportRepo, *appbilling.CustomerUseCase) {
	customers := newMemCustomerRepo()
	reportRepo := &memReportRepo{
		invoiced: map[string]decimal.Decimal{},
		paid:     map[string]decimal.Decimal{},
	}
	return customers, reportRepo, appbilling.NewCustomerUseCase(customers, reportRepo)
}

func TestCustomerCreate(t *testing.T) {
	_, _, uc := newCustomerFixture()

	opening := dec("1500")
	resp, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:           "Ravi",
		ShopName:       "Sree Silks",
		Phone:          "9000000001",
		RouteWeekday:   3,
		OpeningBalance: &opening,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 3, resp.RouteWeekday)
	assert.True(t, resp.OpeningBalance.Equal(dec("1500")))
	assert.Equal(t, "active", resp.Status)
}

func TestCustomerCreate_Validation(t *testing.T) {
	_, _, uc := newCustomerFixture()

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Ravi", ShopName: "Sree Silks", Phone: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "blank phone")

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Ravi", ShopName: "Sree Silks", Phone: "9000000001", RouteWeekday: 7,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "weekday out of range")
}

func TestCustomerCreate_DuplicatePhone(t *testing.T) {
	_, _, uc := newCustomerFixture()

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Ravi", ShopName: "Sree Silks", Phone: "9000000001",
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Kumar", ShopName: "Anitha Textiles", Phone: "9000000001",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// A soft-deleted customer releases its phone number for reuse.
func TestCustomerCreate_PhoneReusableAfterDelete(t *testing.T) {
	_, _, uc := newCustomerFixture()

	first, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Ravi", ShopName: "Sree Silks", Phone: "9000000001",
	})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(context.Background(), first.ID))

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Kumar", ShopName: "Anitha Textiles", Phone: "9000000001",
	})
	assert.NoError(t, err)
}

// The customer page carries the balance block; due includes the opening
// balance.
func TestCustomerGet_BalanceIncludesOpening(t *testing.T) {
	_, reportRepo, uc := newCustomerFixture()

	opening := dec("1000")
	created, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Ravi", ShopName: "Sree Silks", Phone: "9000000001", OpeningBalance: &opening,
	})
	require.NoError(t, err)
	reportRepo.invoiced[created.ID] = dec("5000")
	reportRepo.paid[created.ID] = dec("2000")

	detail, err := uc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, detail.Balance.Due.Equal(dec("6000")))
	assert.True(t, detail.Balance.Paid.Equal(dec("2000")))
	assert.True(t, detail.Balance.Balance.Equal(dec("4000")))
}

func TestCustomerDelete_Twice(t *testing.T) {
	_, _, uc := newCustomerFixture()

	created, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Ravi", ShopName: "Sree Silks", Phone: "9000000001",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, uc.Delete(context.Background(), created.ID), domain.ErrNotFound)
}

func TestCustomerUpdate_PhoneConflict(t *testing.T) {
	_, _, uc := newCustomerFixture()

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Ravi", ShopName: "Sree Silks", Phone: "9000000001",
	})
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Kumar", ShopName: "Anitha Textiles", Phone: "9000000002",
	})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), second.ID, dto.UpdateCustomerRequest{
		Name: "Kumar", ShopName: "Anitha Textiles", Phone: "9000000001",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Keeping one's own phone is not a conflict.
	_, err = uc.Update(context.Background(), second.ID, dto.UpdateCustomerRequest{
		Name: "Kumar", ShopName: "Anitha Textiles", Phone: "9000000002",
	})
	assert.NoError(t, err)
}
