// Package ports defines repository and unit-of-work interfaces for the
// order-to-stock engine. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The bill number carries a unique constraint; a duplicate under a
	// concurrent race surfaces as a conflict error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// its line items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order. Inventory movements already committed for
	// the order are not reversed; this is a bookkeeping-only removal.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAllOverdue retrieves orders still in a "new" status whose
	// scheduled delivery time has passed (stock channel) or whose creation
	// time exceeds the staleness window (live channel). Used by the
	// overdue sweep.
	GetAllOverdue(ctx context.Context, now time.Time, staleness time.Duration) ([]*order.Order, error)
}
