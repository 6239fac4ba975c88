package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request or
// command, ensuring isolation between concurrent operations. The concrete
// strategy, transactional or best-effort, is chosen once at startup; call
// sites never branch on transaction support.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary across the order,
// inventory, bill counter and table repositories. Client code explicitly
// manages the lifecycle: Begin, repository operations, then Commit or
// Rollback.
type UnitOfWork interface {
	// Begin starts the unit of work.
	Begin(ctx context.Context) error

	// Commit makes all changes within the unit of work durable.
	Commit(ctx context.Context) error

	// Rollback discards all changes within the unit of work. Under the
	// best-effort strategy this is a no-op and partial state may persist.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to this unit of work.
	OrderRepository() OrderRepository

	// InventoryRepository returns an InventoryRepository bound to this unit of work.
	InventoryRepository() InventoryRepository

	// BillCounter returns a BillCounter bound to this unit of work.
	BillCounter() BillCounter

	// TableRepository returns a TableRepository bound to this unit of work.
	TableRepository() TableRepository
}
