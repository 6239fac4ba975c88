package queries

import (
	"errors"
	"time"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/guard"
)

var ErrGetStockQueryIsNotConstructed = errors.New(
	"GetStockQuery must be created via NewGetStockQuery constructor",
)

// GetStockMovementLimit caps how many recent ledger movements are returned
// per record.
const GetStockMovementLimit = 20

// GetStockQuery reads the stock ledger. A nil location selects the factory
// pool; a branch id selects that branch's shelf. A nil product id returns
// every record at the location.
type GetStockQuery struct {
	productID  *kernel.UUID
	locationID *kernel.UUID
	lowOnly    bool

	guard guard.ConstructorGuard
}

// NewGetStockQuery creates a stock ledger query.
func NewGetStockQuery(productID, locationID *kernel.UUID, lowOnly bool) (GetStockQuery, error) {
	if productID != nil {
		if err := productID.Validate(); err != nil {
			return GetStockQuery{}, err
		}
	}
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return GetStockQuery{}, err
		}
	}

	return GetStockQuery{
		productID:  productID,
		locationID: locationID,
		lowOnly:    lowOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStockQuery) Validate() error {
	return q.guard.Validate(ErrGetStockQueryIsNotConstructed)
}

// ProductID returns the product filter, if any.
func (q GetStockQuery) ProductID() *kernel.UUID {
	return q.productID
}

// LocationID returns the location filter; nil means the factory pool.
func (q GetStockQuery) LocationID() *kernel.UUID {
	return q.locationID
}

// LowOnly reports whether only records at or below their threshold are wanted.
func (q GetStockQuery) LowOnly() bool {
	return q.lowOnly
}

// GetStockMovementResponse is one ledger movement.
type GetStockMovementResponse struct {
	ID         kernel.UUID
	Delta      float64
	Reason     string
	OccurredAt time.Time
}

// GetStockQueryResponse is one ledger record with its recent movements.
type GetStockQueryResponse struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	// LocationID is nil for the factory pool.
	LocationID *kernel.UUID
	Quantity   float64
	Threshold  float64
	Low        bool
	Movements  []GetStockMovementResponse
}
