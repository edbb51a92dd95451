package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/internal/domain/billing"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// InvoiceUseCase creates, recomputes and reads invoices. Totals are always
// recomputed server-side; client-provided amounts are never trusted.
type InvoiceUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Create computes and persists a new invoice: validate the customer,
// compute the line amounts and totals, then — inside one transaction —
// allocate the next number in the series and insert header and lines.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" {
		return nil, domain.Validationf("customer required")
	}
	if _, err := uuid.Parse(in.CustomerID); err != nil {
		return nil, domain.Validationf("invalid customer")
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Deleted() {
		return nil, domain.Validationf("invalid customer")
	}

	date, err := parseInvoiceDate(in.Date)
	if err != nil {
		return nil, err
	}
	totals, err := billing.Compute(toLineInputs(in.LineItems), in.WithGST, freightOrZero(in.Freight))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		CustomerID:      customer.ID,
		WithGST:         in.WithGST,
		Date:            date,
		ShippingAddress: in.ShippingAddress,
		Freight:         freightOrZero(in.Freight),
		Subtotal:        totals.Subtotal,
		TotalGST:        totals.TotalGST,
		TotalAmount:     totals.GrandTotal,
		Notes:           in.Notes,
		Status:          entity.StatusActive,
		LineItems:       totals.Lines,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	series := billing.SeriesFor(in.WithGST)
	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		counterRepo repository.CounterRepository,
	) error {
		seq, err := counterRepo.Next(ctx, series)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = billing.FormatInvoiceNumber(series, seq)
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for i := range inv.LineItems {
			item := &inv.LineItems[i]
			item.ID = uuid.New().String()
			item.InvoiceID = inv.ID
			if err := invoiceRepo.CreateLineItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, customer), nil
}

// Update recomputes an existing invoice from scratch against a new set of
// line items and freight. The invoice number is not reissued and the
// customer reference cannot change — the number is committed to its series.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	stored, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.Deleted() {
		return nil, domain.ErrNotFound
	}
	if in.CustomerID != "" && in.CustomerID != stored.CustomerID {
		return nil, domain.Validationf("customer cannot be changed")
	}

	date, err := parseInvoiceDate(in.Date)
	if err != nil {
		return nil, err
	}
	totals, err := billing.Compute(toLineInputs(in.LineItems), in.WithGST, freightOrZero(in.Freight))
	if err != nil {
		return nil, err
	}

	stored.WithGST = in.WithGST
	stored.Date = date
	stored.ShippingAddress = in.ShippingAddress
	stored.Freight = freightOrZero(in.Freight)
	stored.Subtotal = totals.Subtotal
	stored.TotalGST = totals.TotalGST
	stored.TotalAmount = totals.GrandTotal
	stored.Notes = in.Notes
	stored.UpdatedAt = time.Now()
	stored.LineItems = totals.Lines
	for i := range stored.LineItems {
		stored.LineItems[i].ID = uuid.New().String()
		stored.LineItems[i].InvoiceID = stored.ID
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.CounterRepository,
	) error {
		if err := invoiceRepo.Update(ctx, stored); err != nil {
			return err
		}
		return invoiceRepo.ReplaceLineItems(ctx, stored.ID, stored.LineItems)
	})
	if err != nil {
		return nil, err
	}

	customer, _ := uc.customerRepo.GetByID(ctx, stored.CustomerID)
	return toInvoiceResponse(stored, customer), nil
}

// Get returns one invoice with lines.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.LineItems == nil {
		items, err := uc.invoiceRepo.GetLineItems(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		inv.LineItems = items
	}
	customer, _ := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	return toInvoiceResponse(inv, customer), nil
}

// List returns invoices (without lines) filtered by series and customer,
// newest first. A malformed customer id filter yields no rows, not an error.
func (uc *InvoiceUseCase) List(ctx context.Context, withGST *bool, customerID string) ([]*dto.InvoiceResponse, error) {
	if customerID != "" {
		if _, err := uuid.Parse(customerID); err != nil {
			return []*dto.InvoiceResponse{}, nil
		}
	}
	list, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{WithGST: withGST, CustomerID: customerID})
	if err != nil {
		return nil, err
	}
	names, err := uc.customerNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		resp := toInvoiceResponse(inv, nil)
		if c, ok := names[inv.CustomerID]; ok {
			resp.CustomerName = c.Name
			resp.ShopName = c.ShopName
		}
		out = append(out, resp)
	}
	return out, nil
}

// Delete soft-deletes the invoice. Its number stays consumed.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil || inv.Deleted() {
		return domain.ErrNotFound
	}
	return uc.invoiceRepo.SoftDelete(ctx, id)
}

// customerNames loads all customers (deleted included, orphan references on
// old invoices still need a display name) keyed by id.
func (uc *InvoiceUseCase) customerNames(ctx context.Context) (map[string]*entity.Customer, error) {
	customers, err := uc.customerRepo.List(ctx, repository.CustomerFilter{IncludeDeleted: true})
	if err != nil {
		return nil, err
	}
	m := make(map[string]*entity.Customer, len(customers))
	for _, c := range customers {
		m[c.ID] = c
	}
	return m, nil
}

func toLineInputs(items []dto.LineItemRequest) []billing.LineInput {
	in := make([]billing.LineInput, 0, len(items))
	for _, it := range items {
		in = append(in, billing.LineInput{
			Description: it.Description,
			HSNCode:     it.HSNCode,
			Narration:   it.Narration,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			GSTRate:     it.GSTRate,
		})
	}
	return in
}

func freightOrZero(f *decimal.Decimal) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return *f
}

func parseInvoiceDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.Validationf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return date, nil
}

func toInvoiceResponse(inv *entity.Invoice, customer *entity.Customer) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		CustomerID:      inv.CustomerID,
		WithGST:         inv.WithGST,
		InvoiceNumber:   inv.InvoiceNumber,
		Date:            inv.Date.Format(dateLayout),
		ShippingAddress: inv.ShippingAddress,
		Freight:         inv.Freight,
		Subtotal:        inv.Subtotal,
		TotalGST:        inv.TotalGST,
		TotalAmount:     inv.TotalAmount,
		Notes:           inv.Notes,
		Status:          inv.Status,
		LineItems:       make([]dto.LineItemResponse, 0, len(inv.LineItems)),
	}
	if customer != nil {
		resp.CustomerName = customer.Name
		resp.ShopName = customer.ShopName
	}
	for _, li := range inv.LineItems {
		lr := dto.LineItemResponse{
			Description: li.Description,
			HSNCode:     li.HSNCode,
			Narration:   li.Narration,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		}
		if li.GST != nil {
			rate, amount, rowTotal := li.GST.Rate, li.GST.Amount, li.GST.RowTotal
			lr.GSTRate = &rate
			lr.GSTAmount = &amount
			lr.RowTotal = &rowTotal
		}
		resp.LineItems = append(resp.LineItems, lr)
	}
	return resp
}
