package inventory

import (
	"errors"
	"fmt"
	"time"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record instance was not
// created through NewRecord or RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// ErrInsufficientStock is returned by Debit when the record does not hold
// enough stock. It aborts the enclosing transaction.
var ErrInsufficientStock = errors.New("insufficient stock")

// DefaultLowStockThreshold is applied to lazily created records.
const DefaultLowStockThreshold = 5

// Movement is one append-only entry in a record's delta history.
type Movement struct {
	ID         kernel.UUID
	Delta      float64
	Reason     string
	OccurredAt time.Time
}

// Record is the per (product, location) stock ledger entry. A nil location
// denotes the central factory. The stock level is only ever mutated through
// delta application; it is never recomputed from the movement history.
type Record struct {
	id         kernel.UUID
	productID  kernel.UUID
	locationID *kernel.UUID
	stock      float64
	threshold  float64

	// movements appended since the record was loaded, awaiting persistence.
	uncommitted []Movement

	isConstructed bool
}

// NewRecord creates an empty ledger record for a product at a location
// (nil = factory) with the default low-stock threshold.
func NewRecord(id kernel.UUID, productID kernel.UUID, locationID *kernel.UUID) (*Record, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Record{
		id:            id,
		productID:     productID,
		locationID:    locationID,
		threshold:     DefaultLowStockThreshold,
		isConstructed: true,
	}, nil
}

// RestoreRecord reconstructs a ledger record from persistence.
func RestoreRecord(
	id kernel.UUID,
	productID kernel.UUID,
	locationID *kernel.UUID,
	stock float64,
	threshold float64,
) (*Record, error) {
	record, err := NewRecord(id, productID, locationID)
	if err != nil {
		return nil, err
	}
	record.stock = stock
	record.threshold = threshold
	return record, nil
}

// Validate ensures the Record instance was created through a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// ProductID returns the product the record tracks.
func (r *Record) ProductID() kernel.UUID {
	return r.productID
}

// LocationID returns the location the record tracks, nil for the factory.
func (r *Record) LocationID() *kernel.UUID {
	return r.locationID
}

// IsFactory reports whether the record tracks central factory stock.
func (r *Record) IsFactory() bool {
	return r.locationID == nil
}

// Stock returns the current stock level.
func (r *Record) Stock() float64 {
	return r.stock
}

// Threshold returns the low-stock boundary.
func (r *Record) Threshold() float64 {
	return r.threshold
}

// IsLow reports whether the stock level is at or below the threshold.
func (r *Record) IsLow() bool {
	return r.stock <= r.threshold
}

// Adjust applies a delta to the stock level and appends a history entry.
// Outbound results are floored at zero rather than permitted to go negative.
func (r *Record) Adjust(delta float64, reason string, now time.Time) {
	r.stock += delta
	if r.stock < 0 {
		r.stock = 0
	}
	r.appendMovement(delta, reason, now)
}

// Debit removes quantity from the stock level, failing with
// ErrInsufficientStock when the balance does not cover it. Used by
// transfers, where an insufficient source must abort the whole operation.
func (r *Record) Debit(quantity float64, reason string, now time.Time) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}
	if r.stock < quantity {
		return fmt.Errorf("%w: %v requested, %v available for product %s",
			ErrInsufficientStock, quantity, r.stock, r.productID)
	}
	r.stock -= quantity
	r.appendMovement(-quantity, reason, now)
	return nil
}

// Credit adds quantity to the stock level.
func (r *Record) Credit(quantity float64, reason string, now time.Time) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}
	r.stock += quantity
	r.appendMovement(quantity, reason, now)
	return nil
}

// SetThreshold updates the low-stock boundary. No further side effects.
func (r *Record) SetThreshold(value float64) error {
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"threshold", fmt.Errorf("%v is negative", value))
	}
	r.threshold = value
	return nil
}

// FlushMovements returns the history entries appended since the record was
// loaded and clears them. The repository persists them on update.
func (r *Record) FlushMovements() []Movement {
	movements := r.uncommitted
	r.uncommitted = nil
	return movements
}

func (r *Record) appendMovement(delta float64, reason string, now time.Time) {
	r.uncommitted = append(r.uncommitted, Movement{
		ID:         kernel.NewUUID(),
		Delta:      delta,
		Reason:     reason,
		OccurredAt: now,
	})
}
