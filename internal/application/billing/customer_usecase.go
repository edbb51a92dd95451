package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

// CustomerUseCase manages the route customers.
type CustomerUseCase struct {
	repo       repository.CustomerRepository
	reportRepo repository.ReportRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository, reportRepo repository.ReportRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, reportRepo: reportRepo}
}

// Create creates a customer. Name, shop name and phone are required; the
// phone number is unique across customers.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomerInput(&in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		Name:           in.Name,
		ShopName:       in.ShopName,
		Phone:          in.Phone,
		Address:        in.Address,
		RouteWeekday:   in.RouteWeekday,
		RouteOrder:     in.RouteOrder,
		GSTIN:          in.GSTIN,
		OpeningBalance: openingOrZero(in.OpeningBalance),
		Status:         entity.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update rewrites the customer record from the edit form.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Deleted() {
		return nil, domain.ErrNotFound
	}
	if err := validateCustomerInput(&in); err != nil {
		return nil, err
	}
	if in.Phone != customer.Phone {
		existing, err := uc.repo.GetByPhone(ctx, in.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	customer.Name = in.Name
	customer.ShopName = in.ShopName
	customer.Phone = in.Phone
	customer.Address = in.Address
	customer.RouteWeekday = in.RouteWeekday
	customer.RouteOrder = in.RouteOrder
	customer.GSTIN = in.GSTIN
	customer.OpeningBalance = openingOrZero(in.OpeningBalance)
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get returns one customer with its balance block.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerDetailResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	due, err := uc.reportRepo.InvoiceTotalForCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	paid, err := uc.reportRepo.PaymentTotalForCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	due = due.Add(customer.OpeningBalance)
	return &dto.CustomerDetailResponse{
		Customer: *toCustomerResponse(customer),
		Balance:  dto.BalanceResponse{Due: due, Paid: paid, Balance: due.Sub(paid)},
	}, nil
}

// List returns customers sorted by route weekday, route order, name.
func (uc *CustomerUseCase) List(ctx context.Context, weekday *int, includeDeleted bool, limit, offset int) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx, repository.CustomerFilter{
		RouteWeekday:   weekday,
		IncludeDeleted: includeDeleted,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Delete soft-deletes the customer. Invoices and payments keep their
// reference and stay in historical reports.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil || customer.Deleted() {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(ctx, id)
}

func validateCustomerInput(in *dto.CreateCustomerRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.ShopName = strings.TrimSpace(in.ShopName)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.ShopName == "" || in.Phone == "" {
		return domain.Validationf("name, shop name and phone are required")
	}
	if in.RouteWeekday < 0 || in.RouteWeekday > 6 {
		return domain.Validationf("route weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	return nil
}

func openingOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		ShopName:       c.ShopName,
		Phone:          c.Phone,
		Address:        c.Address,
		RouteWeekday:   c.RouteWeekday,
		RouteOrder:     c.RouteOrder,
		GSTIN:          c.GSTIN,
		OpeningBalance: c.OpeningBalance,
		Status:         c.Status,
	}
}
