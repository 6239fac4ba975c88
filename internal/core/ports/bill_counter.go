package ports

import (
	"context"

	"bakehouse/internal/core/domain/model/kernel"
)

// BillCounter allocates per (branch, calendar day) bill sequence numbers.
type BillCounter interface {
	// IncrementAndGet atomically increments the counter for the key and
	// returns the new value. The first call for a key yields 1. The
	// increment-and-fetch is a single atomic upsert so concurrent creates
	// for the same branch and day never collide on a sequence number.
	IncrementAndGet(ctx context.Context, branchID kernel.UUID, dayKey string) (int, error)
}
