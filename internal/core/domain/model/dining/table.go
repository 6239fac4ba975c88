package dining

import (
	"errors"
	"fmt"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/errs"
)

// ErrTableIsNotConstructed is returned when a Table instance was not created
// through NewTable or RestoreTable.
var ErrTableIsNotConstructed = errors.New("Table must be created via NewTable constructor")

// ErrTableOccupied is returned when a table is already occupied by a
// different active order. Callers must retry with another table.
var ErrTableOccupied = errors.New("table is already occupied by another order")

// TableStatus is the occupancy state of a physical table.
type TableStatus int

const (
	// UnknownTableStatus represents an invalid or undefined table status.
	UnknownTableStatus TableStatus = iota

	// Free means no active order holds the table.
	Free

	// Occupied means an active order holds the table.
	Occupied
)

// String returns the wire representation of the table status.
func (s TableStatus) String() string {
	switch s {
	case Free:
		return "Free"
	case Occupied:
		return "Occupied"
	default:
		return "Unknown"
	}
}

// Validate checks that the TableStatus value is one of the defined states.
func (s TableStatus) Validate() error {
	if s != Free && s != Occupied {
		return errs.NewValueIsInvalidErrorWithCause(
			"table status", fmt.Errorf("%d is not a valid table status", s))
	}
	return nil
}

// Table is a physical dining table at a branch. Its occupancy state and the
// back-reference to its active order are kept consistent only by the order
// lifecycle engine: status is Occupied exactly while an active order links
// to it.
type Table struct {
	id            kernel.UUID
	branchID      kernel.UUID
	categoryID    kernel.UUID
	label         string
	status        TableStatus
	activeOrderID *kernel.UUID

	isConstructed bool
}

// NewTable creates a free table.
func NewTable(id, branchID, categoryID kernel.UUID, label string) (*Table, error) {
	if err := errors.Join(
		id.Validate(),
		branchID.Validate(),
		categoryID.Validate(),
	); err != nil {
		return nil, err
	}
	if label == "" {
		return nil, errs.NewValueIsRequiredError("table label")
	}

	return &Table{
		id:            id,
		branchID:      branchID,
		categoryID:    categoryID,
		label:         label,
		status:        Free,
		isConstructed: true,
	}, nil
}

// RestoreTable reconstructs a table from persistence.
func RestoreTable(
	id, branchID, categoryID kernel.UUID,
	label string,
	status TableStatus,
	activeOrderID *kernel.UUID,
) (*Table, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	table, err := NewTable(id, branchID, categoryID, label)
	if err != nil {
		return nil, err
	}
	table.status = status
	table.activeOrderID = activeOrderID
	return table, nil
}

// Validate ensures the Table instance was created through a constructor.
func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

// ID returns the table's unique identifier.
func (t *Table) ID() kernel.UUID {
	return t.id
}

// BranchID returns the branch the table belongs to.
func (t *Table) BranchID() kernel.UUID {
	return t.branchID
}

// CategoryID returns the table's category reference.
func (t *Table) CategoryID() kernel.UUID {
	return t.categoryID
}

// Label returns the human-readable table identity.
func (t *Table) Label() string {
	return t.label
}

// Status returns the occupancy state.
func (t *Table) Status() TableStatus {
	return t.status
}

// ActiveOrderID returns the order holding the table, if any.
func (t *Table) ActiveOrderID() *kernel.UUID {
	return t.activeOrderID
}

// IsOccupiedBy reports whether the given order currently holds the table.
func (t *Table) IsOccupiedBy(orderID kernel.UUID) bool {
	return t.status == Occupied && t.activeOrderID != nil && t.activeOrderID.IsEqual(orderID)
}

// Occupy links the table to an order and marks it Occupied. Occupation by a
// different order while the table is held is rejected with ErrTableOccupied.
// Re-occupation by the holding order is a no-op.
func (t *Table) Occupy(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if t.status == Occupied && t.activeOrderID != nil && !t.activeOrderID.IsEqual(orderID) {
		return ErrTableOccupied
	}
	t.status = Occupied
	t.activeOrderID = &orderID
	return nil
}

// Free releases the table and clears the active-order link.
func (t *Table) Free() {
	t.status = Free
	t.activeOrderID = nil
}
