package queries

import (
	"errors"

	"bakehouse/internal/core/domain/model/kernel"
	"bakehouse/internal/pkg/guard"
)

var ErrGetTablesQueryIsNotConstructed = errors.New(
	"GetTablesQuery must be created via NewGetTablesQuery constructor",
)

// GetTablesQuery reads the table board of a branch, optionally narrowed to
// one seating category.
type GetTablesQuery struct {
	branchID   kernel.UUID
	categoryID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTablesQuery creates a table board query.
func NewGetTablesQuery(branchID kernel.UUID, categoryID *kernel.UUID) (GetTablesQuery, error) {
	if err := branchID.Validate(); err != nil {
		return GetTablesQuery{}, err
	}
	if categoryID != nil {
		if err := categoryID.Validate(); err != nil {
			return GetTablesQuery{}, err
		}
	}

	return GetTablesQuery{
		branchID:   branchID,
		categoryID: categoryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTablesQuery) Validate() error {
	return q.guard.Validate(ErrGetTablesQueryIsNotConstructed)
}

// BranchID returns the branch whose board is requested.
func (q GetTablesQuery) BranchID() kernel.UUID {
	return q.branchID
}

// CategoryID returns the seating category filter, if any.
func (q GetTablesQuery) CategoryID() *kernel.UUID {
	return q.categoryID
}

// GetTablesQueryResponse is one table on the board. ActiveOrderID and
// ActiveBillNumber are set only while the table is occupied.
type GetTablesQueryResponse struct {
	ID               kernel.UUID
	BranchID         kernel.UUID
	CategoryID       kernel.UUID
	Label            string
	Status           string
	ActiveOrderID    *kernel.UUID
	ActiveBillNumber *string
}
