package repository

import (
	"context"

	"github.com/loop2cod/hs-accounts/internal/domain/billing"
)

// CounterRepository allocates invoice sequence numbers.
//
// Next must be a single atomic fetch-and-increment in the storage engine —
// never a read-then-write pair — so that concurrently created invoices in
// the same series can never draw the same number. Counters are lazily
// initialized to zero and never move backwards; a number stays consumed
// even when its invoice is later soft-deleted.
type CounterRepository interface {
	Next(ctx context.Context, series billing.Series) (int64, error)
}
