package order

import (
	"fmt"

	"bakehouse/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the fulfilment workflow between the factory and the branches.
//
// State transitions:
//
//	Draft ──────────┐
//	                ├──> Pending ──> Completed ──> Delivered ──> Received
//	NewOrderStatus ─┘        ^            │
//	                         └────────────┘
//	                    (unconfirm reopens)
//
// Completed may also be entered directly from Draft, NewOrderStatus or Pending;
// it is only rejected once the order has been delivered or received.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Draft is the initial status of a table order still being composed.
	Draft

	// NewOrderStatus is the initial status of stock and live orders.
	NewOrderStatus

	// Pending marks an order picked up for preparation, either manually or
	// by the overdue sweep.
	Pending

	// Completed marks an order fully confirmed and ready for dispatch.
	Completed

	// Delivered marks an order whose sending quantities have been moved
	// from the factory to the branch.
	Delivered

	// Received marks an order whose goods the branch has confirmed, with
	// any shortfall adjusted out of branch stock. This is the final state.
	Received
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:  "unknown",
		Draft:          "draft",
		NewOrderStatus: "neworder",
		Pending:        "pending",
		Completed:      "completed",
		Delivered:      "delivered",
		Received:       "received",
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != UnknownStatus {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s == UnknownStatus {
		return errs.NewValueIsRequiredError("status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether an order in this status still occupies its
// table. Completed and later statuses free the table.
func (s Status) IsActive() bool {
	return s == Draft || s == NewOrderStatus || s == Pending
}

// AffectsStock reports whether entering this status moves inventory.
// An order created directly in a stock-affecting status deducts branch
// stock immediately.
func (s Status) AffectsStock() bool {
	return s == Delivered || s == Received
}

// Pend transitions the status to Pending.
//
// Valid transitions: Draft -> Pending, NewOrderStatus -> Pending.
func (s Status) Pend() (Status, error) {
	if s != Draft && s != NewOrderStatus {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to move to pending", s),
		)
	}
	return Pending, nil
}

// Complete transitions the status to Completed.
// Rejected once the order has been delivered or received.
func (s Status) Complete() (Status, error) {
	if s == Delivered || s == Received {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return Completed, nil
}

// Reopen transitions the status from Completed back to Pending.
// Used by the unconfirm toggle.
func (s Status) Reopen() (Status, error) {
	if s != Completed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to reopen", s),
		)
	}
	return Pending, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions: Completed -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Completed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver", s),
		)
	}
	return Delivered, nil
}

// Receive transitions the status to Received.
//
// Valid transitions: Delivered -> Received.
func (s Status) Receive() (Status, error) {
	if s != Delivered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to receive", s),
		)
	}
	return Received, nil
}
