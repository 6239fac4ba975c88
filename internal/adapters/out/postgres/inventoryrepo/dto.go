// Package inventoryrepo provides data transfer objects and mapping functions
// for stock ledger persistence. Records are keyed by (product, location)
// with a NULL location denoting the central factory; movements are an
// append-only history table.
package inventoryrepo

import (
	"time"

	"bakehouse/internal/core/domain/model/inventory"
	"bakehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecordDTO represents the database row of a ledger record. The unique
// index on (product, location) keeps one record per pair; GetOrCreate races
// resolve on it.
type RecordDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_stock_product_location,priority:1"`
	LocationID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_stock_product_location,priority:2"`
	Quantity   float64
	Threshold  float64
}

// TableName overrides GORM's default naming to use "stock_records".
func (RecordDTO) TableName() string {
	return "stock_records"
}

// MovementDTO represents one append-only ledger history entry.
type MovementDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecordID   uuid.UUID `gorm:"type:uuid;index"`
	Delta      float64
	Reason     string
	OccurredAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "stock_movements".
func (MovementDTO) TableName() string {
	return "stock_movements"
}

// fromDomain converts a ledger record to its database representation.
func fromDomain(record *inventory.Record) RecordDTO {
	var locationID *uuid.UUID
	if id := record.LocationID(); id != nil {
		raw := id.Bytes()
		locationID = &raw
	}

	return RecordDTO{
		ID:         record.ID().Bytes(),
		ProductID:  record.ProductID().Bytes(),
		LocationID: locationID,
		Quantity:   record.Stock(),
		Threshold:  record.Threshold(),
	}
}

// toDomain converts a database row to a ledger record.
func toDomain(dto RecordDTO) (*inventory.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var locationID *kernel.UUID
	if dto.LocationID != nil {
		parsed, locErr := kernel.UUIDFromBytes((*dto.LocationID)[:])
		if locErr != nil {
			return nil, locErr
		}
		locationID = &parsed
	}

	return inventory.RestoreRecord(id, productID, locationID, dto.Quantity, dto.Threshold)
}

// movementsFromDomain converts flushed history entries to database rows.
func movementsFromDomain(recordID uuid.UUID, movements []inventory.Movement) []MovementDTO {
	dtos := make([]MovementDTO, 0, len(movements))
	for _, movement := range movements {
		dtos = append(dtos, MovementDTO{
			ID:         movement.ID.Bytes(),
			RecordID:   recordID,
			Delta:      movement.Delta,
			Reason:     movement.Reason,
			OccurredAt: movement.OccurredAt,
		})
	}
	return dtos
}
