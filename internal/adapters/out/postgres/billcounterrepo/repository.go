// Package billcounterrepo provides the per (branch, day) bill sequence
// allocator. Allocation is a single atomic upsert so concurrent order
// creates for the same branch and day never observe the same sequence.
package billcounterrepo

import (
	"context"
	"time"

	"bakehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CounterDTO represents the database row of one branch-day counter.
type CounterDTO struct {
	BranchID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day       string    `gorm:"primaryKey"`
	Count     int
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "bill_counters".
func (CounterDTO) TableName() string {
	return "bill_counters"
}

// GormBillCounter implements BillCounter using GORM.
type GormBillCounter struct {
	db *gorm.DB
}

// NewGormBillCounter creates a new GORM bill counter.
func NewGormBillCounter(db *gorm.DB) *GormBillCounter {
	return &GormBillCounter{db: db}
}

// IncrementAndGet atomically increments the counter for the branch-day key
// and returns the new value. The first allocation for a key yields 1.
func (c *GormBillCounter) IncrementAndGet(
	ctx context.Context,
	branchID kernel.UUID,
	dayKey string,
) (int, error) {
	var count int
	err := c.db.WithContext(ctx).Raw(
		`INSERT INTO bill_counters (branch_id, day, count, updated_at)
		 VALUES (?, ?, 1, NOW())
		 ON CONFLICT (branch_id, day)
		 DO UPDATE SET count = bill_counters.count + 1, updated_at = NOW()
		 RETURNING count`,
		branchID.Bytes(), dayKey,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
