// Package branchdir provides read access to the branch directory. Branches
// are owned by an external back office; the engine only reads them for the
// bill-number prefix and receipt data.
package branchdir

import (
	"context"
	"errors"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/ports"
	"bakehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BranchDTO represents the database row of one branch directory entry.
type BranchDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string
	Address string
	Phone   string
}

// TableName overrides GORM's default naming to use "branches".
func (BranchDTO) TableName() string {
	return "branches"
}

// GormBranchDirectory implements BranchDirectory using GORM.
type GormBranchDirectory struct {
	db *gorm.DB
}

// NewGormBranchDirectory creates a new GORM branch directory.
func NewGormBranchDirectory(db *gorm.DB) *GormBranchDirectory {
	return &GormBranchDirectory{db: db}
}

// GetBranch retrieves a branch entry by ID.
func (d *GormBranchDirectory) GetBranch(ctx context.Context, id kernel.UUID) (ports.Branch, error) {
	if err := id.Validate(); err != nil {
		return ports.Branch{}, err
	}

	var dto BranchDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Branch{}, errs.NewObjectNotFoundError("branch", id.String())
		}
		return ports.Branch{}, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Branch{}, err
	}

	return ports.Branch{
		ID:      branchID,
		Name:    dto.Name,
		Address: dto.Address,
		Phone:   dto.Phone,
	}, nil
}
