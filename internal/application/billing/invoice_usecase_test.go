package billing_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/loop2cod/hs-accounts/internal/application/billing"
	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/domain"
	dombilling "github.com/loop2cod/hs-accounts/internal/domain/billing"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newMemCustomerRepo(customers ...*entity.Customer) *memCustomerRepo {
	m := &memCustomerRepo{customers: map[string]*entity.Customer{}}
	for _, c := range customers {
		m.customers[c.ID] = c
	}
	return m
}

func (m *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	m.customers[c.ID] = c
	return nil
}

func (m *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	// A real adapter fails to encode a malformed id into the uuid column;
	// callers must guard before reaching the repository.
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return m.customers[id], nil
}

func (m *memCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	for _, c := range m.customers {
		if c.Phone == phone && !c.Deleted() {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCustomerRepo) List(_ context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range m.customers {
		if c.Deleted() && !filter.IncludeDeleted {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	m.customers[c.ID] = c
	return nil
}

func (m *memCustomerRepo) SoftDelete(_ context.Context, id string) error {
	if c, ok := m.customers[id]; ok {
		c.Status = entity.StatusDeleted
	}
	return nil
}

func (m *memCustomerRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, c := range m.customers {
		if !c.Deleted() {
			n++
		}
	}
	return n, nil
}

type memInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string][]entity.LineItem
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		items:    map[string][]entity.LineItem{},
	}
}

func (m *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	m.invoices[inv.ID] = &cp
	return nil
}

func (m *memInvoiceRepo) CreateLineItem(_ context.Context, item *entity.LineItem) error {
	m.items[item.InvoiceID] = append(m.items[item.InvoiceID], *item)
	return nil
}

func (m *memInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	stored, ok := m.invoices[inv.ID]
	if !ok {
		return nil
	}
	// Header fields, GST flag included; number and customer stay untouched.
	stored.WithGST = inv.WithGST
	stored.Date = inv.Date
	stored.ShippingAddress = inv.ShippingAddress
	stored.Freight = inv.Freight
	stored.Subtotal = inv.Subtotal
	stored.TotalGST = inv.TotalGST
	stored.TotalAmount = inv.TotalAmount
	stored.Notes = inv.Notes
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (m *memInvoiceRepo) ReplaceLineItems(_ context.Context, invoiceID string, items []entity.LineItem) error {
	m.items[invoiceID] = append([]entity.LineItem(nil), items...)
	return nil
}

func (m *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	cp.LineItems = append([]entity.LineItem(nil), m.items[id]...)
	return &cp, nil
}

func (m *memInvoiceRepo) GetLineItems(_ context.Context, invoiceID string) ([]entity.LineItem, error) {
	return m.items[invoiceID], nil
}

func (m *memInvoiceRepo) List(_ context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range m.invoices {
		if inv.Deleted() && !filter.IncludeDeleted {
			continue
		}
		if filter.WithGST != nil && inv.WithGST != *filter.WithGST {
			continue
		}
		if filter.CustomerID != "" && inv.CustomerID != filter.CustomerID {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (m *memInvoiceRepo) SoftDelete(_ context.Context, id string) error {
	if inv, ok := m.invoices[id]; ok {
		inv.Status = entity.StatusDeleted
	}
	return nil
}

// memCounterRepo allocates numbers per series, in memory.
type memCounterRepo struct {
	seq map[dombilling.Series]int64
}

func newMemCounterRepo() *memCounterRepo {
	return &memCounterRepo{seq: map[dombilling.Series]int64{}}
}

func (m *memCounterRepo) Next(_ context.Context, series dombilling.Series) (int64, error) {
	m.seq[series]++
	return m.seq[series], nil
}

// memTxRunner passes the shared fakes straight through; there is no real
// transaction to manage in memory.
type memTxRunner struct {
	invoiceRepo *memInvoiceRepo
	counterRepo *memCounterRepo
}

func (m *memTxRunner) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	counterRepo repository.CounterRepository,
) error) error {
	return fn(m.invoiceRepo, m.counterRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

var (
	testCustomerID  = uuid.New().String()
	otherCustomerID = uuid.New().String()
)

func newInvoiceFixture() (*memCustomerRepo, *memInvoiceRepo, *appbilling.InvoiceUseCase) {
	customers := newMemCustomerRepo(
		&entity.Customer{ID: testCustomerID, Name: "Ravi", ShopName: "Sree Silks", Phone: "9000000001", Status: entity.StatusActive},
		&entity.Customer{ID: otherCustomerID, Name: "Kumar", ShopName: "Anitha Textiles", Phone: "9000000002", Status: entity.StatusActive},
	)
	invoices := newMemInvoiceRepo()
	runner := &memTxRunner{invoiceRepo: invoices, counterRepo: newMemCounterRepo()}
	return customers, invoices, appbilling.NewInvoiceUseCase(runner, customers, invoices)
}

func gstLine(desc string, qty, price, rate string) dto.LineItemRequest {
	r := dec(rate)
	return dto.LineItemRequest{Description: desc, Quantity: dec(qty), UnitPrice: dec(price), GSTRate: &r}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceCreate_GSTComputesAndNumbers(t *testing.T) {
	_, invoices, uc := newInvoiceFixture()

	resp, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		Date:       "2025-04-01",
		LineItems:  []dto.LineItemRequest{gstLine("Saree", "10", "500", "5")},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-GST-001", resp.InvoiceNumber)
	assert.True(t, resp.Subtotal.Equal(dec("5000")))
	require.NotNil(t, resp.TotalGST)
	assert.True(t, resp.TotalGST.Equal(dec("250")))
	assert.True(t, resp.TotalAmount.Equal(dec("5250")))

	stored, err := invoices.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.LineItems, 1)
	assert.NotEmpty(t, stored.LineItems[0].ID)
	assert.Equal(t, resp.ID, stored.LineItems[0].InvoiceID)
}

// The two series number independently: a GST invoice never advances the
// non-GST counter.
func TestInvoiceCreate_SeriesAreIndependent(t *testing.T) {
	_, _, uc := newInvoiceFixture()

	first, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		LineItems:  []dto.LineItemRequest{gstLine("Saree", "1", "500", "5")},
	})
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{{Description: "Lungi", Quantity: dec("1"), UnitPrice: dec("250")}},
	})
	require.NoError(t, err)
	third, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		LineItems:  []dto.LineItemRequest{gstLine("Saree", "2", "500", "5")},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-GST-001", first.InvoiceNumber)
	assert.Equal(t, "INV-001", second.InvoiceNumber)
	assert.Equal(t, "INV-GST-002", third.InvoiceNumber)
}

func TestInvoiceCreate_RejectsUnknownOrDeletedCustomer(t *testing.T) {
	customers, _, uc := newInvoiceFixture()

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: uuid.New().String(),
		LineItems:  []dto.LineItemRequest{{Description: "Saree", Quantity: dec("1"), UnitPrice: dec("500")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown customer")

	require.NoError(t, customers.SoftDelete(context.Background(), testCustomerID))
	_, err = uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{{Description: "Saree", Quantity: dec("1"), UnitPrice: dec("500")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "deleted customer")
}

// A malformed customer id is a validation failure, never a storage error
// surfacing as an internal one.
func TestInvoiceCreate_MalformedCustomerIsValidationError(t *testing.T) {
	_, _, uc := newInvoiceFixture()

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "not-a-uuid",
		LineItems:  []dto.LineItemRequest{{Description: "Saree", Quantity: dec("1"), UnitPrice: dec("500")}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid customer")
}

// An invoice whose rows are all blank is rejected — and the counter must
// not have been consumed by the failed attempt.
func TestInvoiceCreate_EmptyItemsDoNotConsumeNumber(t *testing.T) {
	_, _, uc := newInvoiceFixture()

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		LineItems:  []dto.LineItemRequest{{Description: "  "}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		LineItems:  []dto.LineItemRequest{gstLine("Saree", "1", "500", "5")},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-GST-001", resp.InvoiceNumber, "failed create must not burn a number")
}

func TestInvoiceCreate_RejectsBadDate(t *testing.T) {
	_, _, uc := newInvoiceFixture()

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		Date:       "01/04/2025",
		LineItems:  []dto.LineItemRequest{{Description: "Saree", Quantity: dec("1"), UnitPrice: dec("500")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceUpdate_RecomputesAndKeepsNumber(t *testing.T) {
	_, _, uc := newInvoiceFixture()

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		LineItems:  []dto.LineItemRequest{gstLine("Saree", "10", "500", "5")},
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		LineItems:  []dto.LineItemRequest{gstLine("Saree", "20", "500", "5")},
	})
	require.NoError(t, err)

	assert.Equal(t, created.InvoiceNumber, updated.InvoiceNumber, "update never reissues the number")
	assert.True(t, updated.Subtotal.Equal(dec("10000")))
	assert.True(t, updated.TotalAmount.Equal(dec("10500")))
}

// Flipping the GST flag on update must persist the flag together with the
// recomputed totals: a stored invoice never carries GST totals under
// with_gst=false, or the reverse.
func TestInvoiceUpdate_PersistsGSTFlagWithTotals(t *testing.T) {
	_, invoices, uc := newInvoiceFixture()

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{{Description: "Saree", Quantity: dec("10"), UnitPrice: dec("500")}},
	})
	require.NoError(t, err)
	require.False(t, created.WithGST)
	require.Nil(t, created.TotalGST)

	_, err = uc.Update(context.Background(), created.ID, dto.UpdateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		LineItems:  []dto.LineItemRequest{gstLine("Saree", "10", "500", "5")},
	})
	require.NoError(t, err)

	stored, err := invoices.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.WithGST, "flag must follow the recomputed totals")
	require.NotNil(t, stored.TotalGST)
	assert.True(t, stored.TotalGST.Equal(dec("250")))
	require.Len(t, stored.LineItems, 1)
	require.NotNil(t, stored.LineItems[0].GST)

	// And back: dropping GST clears the totals and the flag together.
	_, err = uc.Update(context.Background(), created.ID, dto.UpdateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{{Description: "Saree", Quantity: dec("10"), UnitPrice: dec("500")}},
	})
	require.NoError(t, err)

	stored, err = invoices.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, stored.WithGST)
	assert.Nil(t, stored.TotalGST)
	require.Len(t, stored.LineItems, 1)
	assert.Nil(t, stored.LineItems[0].GST)
}

// The customer reference is committed at creation.
func TestInvoiceUpdate_CustomerIsImmutable(t *testing.T) {
	_, _, uc := newInvoiceFixture()

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{{Description: "Saree", Quantity: dec("1"), UnitPrice: dec("500")}},
	})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), created.ID, dto.UpdateInvoiceRequest{
		CustomerID: otherCustomerID,
		LineItems:  []dto.LineItemRequest{{Description: "Saree", Quantity: dec("1"), UnitPrice: dec("500")}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "customer cannot be changed")
}

func TestInvoiceUpdate_MissingInvoice(t *testing.T) {
	_, _, uc := newInvoiceFixture()

	_, err := uc.Update(context.Background(), uuid.New().String(), dto.UpdateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{{Description: "Saree", Quantity: dec("1"), UnitPrice: dec("500")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete and list
// ──────────────────────────────────────────────────────────────────────────────

// Deleting an invoice hides it from lists but does not free its number: the
// next invoice in the series continues the count.
func TestInvoiceDelete_NumberStaysConsumed(t *testing.T) {
	_, _, uc := newInvoiceFixture()

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		LineItems:  []dto.LineItemRequest{gstLine("Saree", "1", "500", "5")},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(context.Background(), created.ID))

	list, err := uc.List(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, list, "soft-deleted invoices drop out of lists")

	next, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		WithGST:    true,
		LineItems:  []dto.LineItemRequest{gstLine("Saree", "1", "500", "5")},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-GST-002", next.InvoiceNumber)

	assert.ErrorIs(t, uc.Delete(context.Background(), created.ID), domain.ErrNotFound,
		"second delete of the same invoice")
}

func TestInvoiceList_MalformedCustomerFilterYieldsEmpty(t *testing.T) {
	_, _, uc := newInvoiceFixture()

	list, err := uc.List(context.Background(), nil, "not-a-uuid")
	require.NoError(t, err)
	assert.Empty(t, list)
}
