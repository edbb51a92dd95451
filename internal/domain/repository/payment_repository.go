package repository

import (
	"context"

	"github.com/loop2cod/hs-accounts/internal/domain/entity"
)

// PaymentFilter narrows List. Limit 0 means all rows (the Excel export
// needs the unpaginated list).
type PaymentFilter struct {
	CustomerID string
	Limit      int
	Offset     int
}

// PaymentRepository is the persistence port for Payment. Payments are
// hard-deleted; there is no soft-delete state to filter on.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error)
	Count(ctx context.Context, filter PaymentFilter) (int64, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id string) error
}
