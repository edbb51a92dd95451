package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

// PaymentUseCase records and edits customer payments.
type PaymentUseCase struct {
	repo         repository.PaymentRepository
	customerRepo repository.CustomerRepository
}

// NewPaymentUseCase builds the use case.
func NewPaymentUseCase(repo repository.PaymentRepository, customerRepo repository.CustomerRepository) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, customerRepo: customerRepo}
}

// Create records a payment against a customer. Amount must be positive.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
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
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.Validationf("valid amount required")
	}
	date, err := parseInvoiceDate(in.Date)
	if err != nil {
		return nil, err
	}
	mode := in.PaymentMode
	if mode == "" {
		mode = entity.PaymentModeCash
	}
	payment := &entity.Payment{
		ID:          uuid.New().String(),
		CustomerID:  customer.ID,
		Amount:      in.Amount,
		Date:        date,
		PaymentMode: mode,
		Reference:   in.Reference,
		Notes:       in.Notes,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, payment); err != nil {
		return nil, err
	}
	resp := toPaymentResponse(payment)
	resp.CustomerName = customer.Name
	return resp, nil
}

// Update edits an existing payment (amount, date, mode, reference, notes).
// The customer reference does not change.
func (uc *PaymentUseCase) Update(ctx context.Context, id string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	payment, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.Validationf("valid amount required")
	}
	date, err := parseInvoiceDate(in.Date)
	if err != nil {
		return nil, err
	}
	payment.Amount = in.Amount
	payment.Date = date
	if in.PaymentMode != "" {
		payment.PaymentMode = in.PaymentMode
	}
	payment.Reference = in.Reference
	payment.Notes = in.Notes
	if err := uc.repo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// List returns payments newest first, paginated. limit 0 returns all rows.
// A malformed customer id filter yields no rows, not an error.
func (uc *PaymentUseCase) List(ctx context.Context, customerID string, page, limit int) (*dto.PaymentListResponse, error) {
	if customerID != "" {
		if _, err := uuid.Parse(customerID); err != nil {
			return &dto.PaymentListResponse{
				Payments:     []dto.PaymentResponse{},
				PageResponse: dto.PageResponse{Page: 1, Limit: limit, TotalPages: 1},
			}, nil
		}
	}
	if page <= 0 {
		page = 1
	}
	if limit < 0 {
		limit = 10
	}

	filter := repository.PaymentFilter{CustomerID: customerID, Limit: limit, Offset: (page - 1) * limit}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	names, err := uc.customerNames(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.PaymentListResponse{Payments: make([]dto.PaymentResponse, 0, len(list))}
	for _, p := range list {
		resp := toPaymentResponse(p)
		if c, ok := names[p.CustomerID]; ok {
			resp.CustomerName = c.Name
		}
		out.Payments = append(out.Payments, *resp)
	}
	out.Page = page
	if limit == 0 {
		out.Limit = int(total)
		out.TotalPages = 1
	} else {
		out.Limit = limit
		out.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	out.Total = total
	return out, nil
}

// Delete removes the payment permanently.
func (uc *PaymentUseCase) Delete(ctx context.Context, id string) error {
	payment, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PaymentUseCase) customerNames(ctx context.Context) (map[string]*entity.Customer, error) {
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

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Amount:      p.Amount,
		Date:        p.Date.Format(dateLayout),
		PaymentMode: p.PaymentMode,
		Reference:   p.Reference,
		Notes:       p.Notes,
	}
}
