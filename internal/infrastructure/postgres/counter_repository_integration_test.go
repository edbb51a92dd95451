//go:build integration

package postgres

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loop2cod/hs-accounts/internal/domain/billing"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/

func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// The atomic upsert is the whole concurrency story for invoice numbering:
// under heavy parallel allocation every value must come out exactly once,
// covering 1..N with no gap and no repeat, independently per series.
func TestCounterNext_ConcurrentAllocationsAreUnique(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS invoice_counters (
			id INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			gst_seq BIGINT NOT NULL DEFAULT 0,
			non_gst_seq BIGINT NOT NULL DEFAULT 0
		)`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `DELETE FROM invoice_counters`)
	require.NoError(t, err)

	repo := NewCounterRepository(pool)

	const n = 1000
	results := make(chan int64, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := repo.Next(ctx, billing.SeriesGST)
			if err != nil {
				errs <- err
				return
			}
			results <- seq
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("allocation failed: %v", err)
	}

	seen := make(map[int64]bool, n)
	for seq := range results {
		assert.False(t, seen[seq], "sequence %d allocated twice", seq)
		seen[seq] = true
	}
	require.Len(t, seen, n)
	for i := int64(1); i <= n; i++ {
		assert.True(t, seen[i], "sequence %d never allocated", i)
	}

	// The other series was never touched by any of the allocations above.
	first, err := repo.Next(ctx, billing.SeriesNonGST)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
}
