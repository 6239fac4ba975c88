package ports

import (
	"context"

	"bakehouse/internal/core/domain/model/inventory"
	"bakehouse/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for stock ledger
// records. Records are keyed by (product, location) with a nil location
// denoting the central factory.
type InventoryRepository interface {
	// Get retrieves a ledger record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Record, error)

	// GetOrCreate retrieves the record for a (product, location) pair,
	// lazily creating an empty one with the default low-stock threshold.
	GetOrCreate(ctx context.Context, productID kernel.UUID, locationID *kernel.UUID) (*inventory.Record, error)

	// Update persists the record's stock level and threshold and appends
	// its flushed movements to the history.
	Update(ctx context.Context, record *inventory.Record) error
}
