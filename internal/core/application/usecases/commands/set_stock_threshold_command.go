package commands

import (
	"errors"
	"fmt"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/errs"
	"bakehouse/internal/pkg/guard"
)

var ErrSetStockThresholdCommandIsNotConstructed = errors.New(
	"SetStockThresholdCommand must be created via NewSetStockThresholdCommand constructor",
)

// SetStockThresholdCommand represents an administrative update of a ledger
// record's low-stock boundary.
type SetStockThresholdCommand struct { //nolint:recvcheck //using for validation
	recordID  kernel.UUID
	threshold float64

	guard guard.ConstructorGuard
}

// NewSetStockThresholdCommand creates a command to update a threshold.
func NewSetStockThresholdCommand(recordID kernel.UUID, threshold float64) (SetStockThresholdCommand, error) {
	if err := recordID.Validate(); err != nil {
		return SetStockThresholdCommand{}, err
	}
	if threshold < 0 {
		return SetStockThresholdCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"threshold", fmt.Errorf("%v is negative", threshold))
	}

	return SetStockThresholdCommand{
		recordID:  recordID,
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetStockThresholdCommand) Validate() error {
	return c.guard.Validate(ErrSetStockThresholdCommandIsNotConstructed)
}

// RecordID returns the ledger record to update.
func (c SetStockThresholdCommand) RecordID() kernel.UUID {
	return c.recordID
}

// Threshold returns the new low-stock boundary.
func (c SetStockThresholdCommand) Threshold() float64 {
	return c.threshold
}
