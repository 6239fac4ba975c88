package postgres

import (
	"context"

	"bakehouse/internal/adapters/out/postgres/billcounterrepo"
	"bakehouse/internal/adapters/out/postgres/inventoryrepo"
	"bakehouse/internal/adapters/out/postgres/orderrepo"
	"bakehouse/internal/adapters/out/postgres/tablerepo"
	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/ports"

	"gorm.io/gorm"
)

// BestEffortUnitOfWorkFactory creates non-transactional UnitOfWork
// instances. Intended for deployments that cannot afford transaction locks;
// the default deployment uses the transactional factory.
type BestEffortUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewBestEffortUnitOfWorkFactory creates a factory for best-effort unit of
// work instances on the given database connection.
func NewBestEffortUnitOfWorkFactory(db *gorm.DB) *BestEffortUnitOfWorkFactory {
	return &BestEffortUnitOfWorkFactory{db: db}
}

// Create produces a new best-effort UnitOfWork.
func (f *BestEffortUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &BestEffortUnitOfWork{db: f.db}
}

// BestEffortUnitOfWork satisfies ports.UnitOfWork without a database
// transaction. Every repository call executes immediately on the base
// connection; a failure partway through an operation leaves the earlier
// writes in place. Handlers are written so each step is individually valid,
// which bounds the damage to stale-but-consistent rows.
type BestEffortUnitOfWork struct {
	db *gorm.DB
}

// Begin is a no-op.
func (uow *BestEffortUnitOfWork) Begin(_ context.Context) error {
	return nil
}

// Commit is a no-op; every write is already durable.
func (uow *BestEffortUnitOfWork) Commit(_ context.Context) error {
	return nil
}

// Rollback is a no-op; writes made before a failure persist.
func (uow *BestEffortUnitOfWork) Rollback(_ context.Context) error {
	return nil
}

// OrderRepository returns order persistence on the base connection.
func (uow *BestEffortUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.db, uow)
}

// InventoryRepository returns ledger persistence on the base connection.
func (uow *BestEffortUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return inventoryrepo.NewGormInventoryRepository(uow.db, uow)
}

// BillCounter returns the bill sequence allocator on the base connection.
// The allocation itself stays atomic; it is a single upsert statement.
func (uow *BestEffortUnitOfWork) BillCounter() ports.BillCounter {
	return billcounterrepo.NewGormBillCounter(uow.db)
}

// TableRepository returns table persistence on the base connection.
func (uow *BestEffortUnitOfWork) TableRepository() ports.TableRepository {
	return tablerepo.NewGormTableRepository(uow.db, uow)
}

// TrackAggregate implements the aggregate tracker; best-effort operations
// track nothing.
func (uow *BestEffortUnitOfWork) TrackAggregate(_ kernel.UUID, _ interface{}) {}
