// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// unit-of-work management, and persistence.
package commands

import (
	"context"

	"bakehouse/internal/core/ports"
)

// Unit of work interfaces provide transaction management for command
// handlers. Handlers depend on the narrowest composition they need; the
// concrete strategy (transactional or best-effort) is injected at startup.
type (
	// TxManager handles the unit-of-work lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a unit of work.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InventoryRepoFactory provides access to the inventory repository within a unit of work.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// BillCounterFactory provides access to the bill counter within a unit of work.
	BillCounterFactory interface {
		BillCounter() ports.BillCounter
	}

	// TableRepoFactory provides access to the table repository within a unit of work.
	TableRepoFactory interface {
		TableRepository() ports.TableRepository
	}

	// OrderUoW manages units of work that only touch order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order-only unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// InventoryUoW manages units of work that only touch the stock ledger.
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
	}

	// InventoryUoWFactory creates inventory-only unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// UoW manages units of work spanning orders, inventory, the bill
	// counter and tables. Used by the lifecycle engine commands whose side
	// effects cross aggregate boundaries.
	UoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		BillCounterFactory
		TableRepoFactory
	}

	// UoWFactory creates cross-aggregate unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
