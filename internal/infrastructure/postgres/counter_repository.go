package postgres

import (
	"context"
	"fmt"

	"github.com/loop2cod/hs-accounts/internal/domain/billing"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo allocates invoice numbers from the singleton counters row
// (usable with pool or tx).
type CounterRepo struct {
	q Querier
}

// NewCounterRepository builds the adapter. Pass pool or tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next atomically increments the counter for the series and returns the
// new value. A single upsert statement does the lazy initialization and the
// fetch-and-add in one atomic step; two concurrent allocations in the same
// series can never observe the same value. Application code never reads
// then writes the counter.
func (r *CounterRepo) Next(ctx context.Context, series billing.Series) (int64, error) {
	var query string
	if series == billing.SeriesGST {
		query = `
			INSERT INTO invoice_counters (id, gst_seq, non_gst_seq)
			VALUES (1, 1, 0)
			ON CONFLICT (id) DO UPDATE SET gst_seq = invoice_counters.gst_seq + 1
			RETURNING gst_seq`
	} else {
		query = `
			INSERT INTO invoice_counters (id, gst_seq, non_gst_seq)
			VALUES (1, 0, 1)
			ON CONFLICT (id) DO UPDATE SET non_gst_seq = invoice_counters.non_gst_seq + 1
			RETURNING non_gst_seq`
	}
	var n int64
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number (%s): %w", series, err)
	}
	return n, nil
}
