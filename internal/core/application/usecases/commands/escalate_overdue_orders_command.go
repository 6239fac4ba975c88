package commands

import (
	"errors"
	"fmt"
	"time"

	"bakehouse/internal/pkg/errs"
	"bakehouse/internal/pkg/guard"
)

var ErrEscalateOverdueOrdersCommandIsNotConstructed = errors.New(
	"EscalateOverdueOrdersCommand must be created via NewEscalateOverdueOrdersCommand constructor",
)

// EscalateOverdueOrdersCommand represents one sweep over stalled orders:
// pre-orders whose scheduled delivery time has passed and live orders older
// than the staleness window are moved to Pending in bulk.
type EscalateOverdueOrdersCommand struct { //nolint:recvcheck //using for validation
	staleness time.Duration

	guard guard.ConstructorGuard
}

// NewEscalateOverdueOrdersCommand creates a sweep command with the given
// staleness window for live orders.
func NewEscalateOverdueOrdersCommand(staleness time.Duration) (EscalateOverdueOrdersCommand, error) {
	if staleness <= 0 {
		return EscalateOverdueOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"staleness", fmt.Errorf("%s is not greater than 0", staleness))
	}
	return EscalateOverdueOrdersCommand{
		staleness: staleness,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EscalateOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrEscalateOverdueOrdersCommandIsNotConstructed)
}

// Staleness returns the live-order staleness window.
func (c EscalateOverdueOrdersCommand) Staleness() time.Duration {
	return c.staleness
}
