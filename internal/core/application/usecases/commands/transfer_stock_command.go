package commands

import (
	"errors"
	"fmt"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/errs"
	"bakehouse/internal/pkg/guard"
)

var ErrTransferStockCommandIsNotConstructed = errors.New(
	"TransferStockCommand must be created via NewTransferStockCommand constructor",
)

// TransferStockCommand represents a stock movement of one product between
// two locations (nil = factory). The debit side is strict: an insufficient
// source balance fails the whole transfer.
type TransferStockCommand struct { //nolint:recvcheck //using for validation
	productID      kernel.UUID
	fromLocationID *kernel.UUID
	toLocationID   *kernel.UUID
	quantity       float64
	reasonOut      string
	reasonIn       string

	guard guard.ConstructorGuard
}

// NewTransferStockCommand creates a command to move stock between two
// distinct locations.
func NewTransferStockCommand(
	productID kernel.UUID,
	fromLocationID *kernel.UUID,
	toLocationID *kernel.UUID,
	quantity float64,
	reasonOut string,
	reasonIn string,
) (TransferStockCommand, error) {
	if err := productID.Validate(); err != nil {
		return TransferStockCommand{}, err
	}
	for _, locationID := range []*kernel.UUID{fromLocationID, toLocationID} {
		if locationID != nil {
			if err := locationID.Validate(); err != nil {
				return TransferStockCommand{}, err
			}
		}
	}
	if sameLocation(fromLocationID, toLocationID) {
		return TransferStockCommand{}, errs.NewValueIsInvalidError("source and destination locations are the same")
	}
	if quantity <= 0 {
		return TransferStockCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}
	if reasonOut == "" || reasonIn == "" {
		return TransferStockCommand{}, errs.NewValueIsRequiredError("transfer reasons")
	}

	return TransferStockCommand{
		productID:      productID,
		fromLocationID: fromLocationID,
		toLocationID:   toLocationID,
		quantity:       quantity,
		reasonOut:      reasonOut,
		reasonIn:       reasonIn,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func sameLocation(a, b *kernel.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsEqual(*b)
}

// Validate ensures the command was created through the constructor.
func (c TransferStockCommand) Validate() error {
	return c.guard.Validate(ErrTransferStockCommandIsNotConstructed)
}

// ProductID returns the product to move.
func (c TransferStockCommand) ProductID() kernel.UUID {
	return c.productID
}

// FromLocationID returns the source location, nil for the factory.
func (c TransferStockCommand) FromLocationID() *kernel.UUID {
	return c.fromLocationID
}

// ToLocationID returns the destination location, nil for the factory.
func (c TransferStockCommand) ToLocationID() *kernel.UUID {
	return c.toLocationID
}

// Quantity returns the quantity to move.
func (c TransferStockCommand) Quantity() float64 {
	return c.quantity
}

// ReasonOut returns the history label for the debit entry.
func (c TransferStockCommand) ReasonOut() string {
	return c.reasonOut
}

// ReasonIn returns the history label for the credit entry.
func (c TransferStockCommand) ReasonIn() string {
	return c.reasonIn
}
