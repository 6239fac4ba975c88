package ports

import (
	"context"

	"bakehouse/internal/core/domain/model/dining"
	"bakehouse/internal/core/domain/model/kernel"
)

// TableRepository defines the persistence contract for dining tables.
type TableRepository interface {
	// Add persists a new table.
	Add(ctx context.Context, table *dining.Table) error

	// Update persists occupancy changes. The check-then-set on occupancy
	// is only safe inside the unit of work that read the table.
	Update(ctx context.Context, table *dining.Table) error

	// Get retrieves a table by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*dining.Table, error)
}
