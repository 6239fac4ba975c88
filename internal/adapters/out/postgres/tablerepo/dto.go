// Package tablerepo provides data transfer objects and mapping functions for
// dining table persistence.
package tablerepo

import (
	"bakehouse/internal/core/domain/model/dining"
	"bakehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// TableDTO represents the database row of a dining table. The active order
// back-reference is set exactly while the table is occupied.
type TableDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BranchID      uuid.UUID  `gorm:"type:uuid;index"`
	CategoryID    uuid.UUID  `gorm:"type:uuid;index"`
	Label         string
	Status        int
	ActiveOrderID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName overrides GORM's default naming to use "tables".
func (TableDTO) TableName() string {
	return "tables"
}

// fromDomain converts a table entity to its database representation.
func fromDomain(table *dining.Table) TableDTO {
	var activeOrderID *uuid.UUID
	if id := table.ActiveOrderID(); id != nil {
		raw := id.Bytes()
		activeOrderID = &raw
	}

	return TableDTO{
		ID:            table.ID().Bytes(),
		BranchID:      table.BranchID().Bytes(),
		CategoryID:    table.CategoryID().Bytes(),
		Label:         table.Label(),
		Status:        int(table.Status()),
		ActiveOrderID: activeOrderID,
	}
}

// toDomain converts a database row to a table entity.
func toDomain(dto TableDTO) (*dining.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return nil, err
	}

	var activeOrderID *kernel.UUID
	if dto.ActiveOrderID != nil {
		parsed, orderErr := kernel.UUIDFromBytes((*dto.ActiveOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		activeOrderID = &parsed
	}

	return dining.RestoreTable(
		id, branchID, categoryID,
		dto.Label,
		dining.TableStatus(dto.Status),
		activeOrderID,
	)
}
