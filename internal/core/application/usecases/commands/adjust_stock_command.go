package commands

import (
	"errors"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/errs"
	"bakehouse/internal/pkg/guard"
)

var ErrAdjustStockCommandIsNotConstructed = errors.New(
	"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
)

// AdjustStockCommand represents a manual stock correction for a product at
// a location (nil = factory). Outbound adjustments floor at zero.
type AdjustStockCommand struct { //nolint:recvcheck //using for validation
	productID  kernel.UUID
	locationID *kernel.UUID
	delta      float64
	reason     string

	guard guard.ConstructorGuard
}

// NewAdjustStockCommand creates a command to apply a stock delta.
// The delta must be non-zero and the reason is required for the history.
func NewAdjustStockCommand(
	productID kernel.UUID,
	locationID *kernel.UUID,
	delta float64,
	reason string,
) (AdjustStockCommand, error) {
	if err := productID.Validate(); err != nil {
		return AdjustStockCommand{}, err
	}
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return AdjustStockCommand{}, err
		}
	}
	if delta == 0 {
		return AdjustStockCommand{}, errs.NewValueIsInvalidError("delta must be non-zero")
	}
	if reason == "" {
		return AdjustStockCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return AdjustStockCommand{
		productID:  productID,
		locationID: locationID,
		delta:      delta,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

// ProductID returns the product to adjust.
func (c AdjustStockCommand) ProductID() kernel.UUID {
	return c.productID
}

// LocationID returns the location to adjust, nil for the factory.
func (c AdjustStockCommand) LocationID() *kernel.UUID {
	return c.locationID
}

// Delta returns the stock delta to apply.
func (c AdjustStockCommand) Delta() float64 {
	return c.delta
}

// Reason returns the history entry label.
func (c AdjustStockCommand) Reason() string {
	return c.reason
}
