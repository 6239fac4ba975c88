package inventoryrepo

import (
	"context"
	"errors"

	"bakehouse/internal/core/domain/model/inventory"
	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves a ledger record by ID.
func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOrCreate retrieves the record for a (product, location) pair, creating
// an empty one with the default threshold on first touch.
func (r *GormInventoryRepository) GetOrCreate(
	ctx context.Context,
	productID kernel.UUID,
	locationID *kernel.UUID,
) (*inventory.Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return nil, err
		}
	}

	session := r.db.WithContext(ctx).Where("product_id = ?", productID.Bytes())
	if locationID != nil {
		session = session.Where("location_id = ?", locationID.Bytes())
	} else {
		session = session.Where("location_id IS NULL")
	}

	var dto RecordDTO
	err := session.First(&dto).Error
	if err == nil {
		return toDomain(dto)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record, err := inventory.NewRecord(kernel.NewUUID(), productID, locationID)
	if err != nil {
		return nil, err
	}

	created := fromDomain(record)
	if err = r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}

	return record, nil
}

// Update persists the record's stock level and threshold and appends its
// flushed movements to the history.
func (r *GormInventoryRepository) Update(ctx context.Context, record *inventory.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ?", dto.ID).
		Select("quantity", "threshold").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if movements := movementsFromDomain(dto.ID, record.FlushMovements()); len(movements) > 0 {
		if err := r.db.WithContext(ctx).Create(&movements).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}
