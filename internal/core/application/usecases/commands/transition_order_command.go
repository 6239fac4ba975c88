package commands

import (
	"errors"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/core/domain/model/order"
	"bakehouse/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrEmptyTransition = errors.New("transition must update line items, a status, or the confirmation toggle")
)

// TransitionOrderCommand represents an incremental patch to an order:
// per-line sending/received quantities and confirmation flags, a target
// status, and/or the confirm-all / unconfirm toggle.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	linePatches []order.LinePatch
	newStatus   *order.Status
	confirmAll  *bool

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to patch an order. At least
// one of line patches, a new status, or the confirmation toggle must be
// supplied.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	linePatches []order.LinePatch,
	newStatus *order.Status,
	confirmAll *bool,
) (TransitionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderCommand{}, err
	}
	if len(linePatches) == 0 && newStatus == nil && confirmAll == nil {
		return TransitionOrderCommand{}, ErrEmptyTransition
	}
	if newStatus != nil {
		if err := newStatus.Validate(); err != nil {
			return TransitionOrderCommand{}, err
		}
	}
	for _, patch := range linePatches {
		if err := patch.ProductID.Validate(); err != nil {
			return TransitionOrderCommand{}, err
		}
	}

	return TransitionOrderCommand{
		orderID:     orderID,
		linePatches: linePatches,
		newStatus:   newStatus,
		confirmAll:  confirmAll,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to patch.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LinePatches returns the per-line updates.
func (c TransitionOrderCommand) LinePatches() []order.LinePatch {
	return c.linePatches
}

// NewStatus returns the target status, if any.
func (c TransitionOrderCommand) NewStatus() *order.Status {
	return c.newStatus
}

// ConfirmAll returns the confirmation toggle: true confirms every line,
// false unconfirms (reopening a completed order). Nil leaves it untouched.
func (c TransitionOrderCommand) ConfirmAll() *bool {
	return c.confirmAll
}
