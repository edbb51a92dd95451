package repository

import (
	"context"

	"github.com/loop2cod/hs-accounts/internal/domain/entity"
)

// CustomerFilter narrows List. RouteWeekday filters to one delivery day;
// IncludeDeleted is deliberate and explicit — report queries must opt in to
// seeing soft-deleted customers, never get them by accident.
type CustomerFilter struct {
	RouteWeekday   *int
	IncludeDeleted bool
	Limit          int // 0 = no limit
	Offset         int
}

// CustomerRepository is the persistence port for Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// SoftDelete flips the status to deleted; invoices and payments keep
	// their (now orphaned) customer reference.
	SoftDelete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}
