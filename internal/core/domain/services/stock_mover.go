package services

import (
	"time"

	"bakehouse/internal/core/domain/model/inventory"
)

// StockMover is a domain service that moves stock between two ledger
// records as one logical operation: a strict debit on the source followed
// by a credit on the destination, each with its own history entry.
//
// Business rules:
//   - The debit fails with inventory.ErrInsufficientStock when the source
//     balance does not cover the quantity; nothing is credited in that case
//     and the caller must abort its unit of work.
//   - Both records must belong to the same product; the mover does not
//     re-check this, the application layer loads them by product.
//
// This is the primitive behind the delivered-status transition (factory to
// branch) and the exposed transfer operation.
type StockMover struct{}

// NewStockMover creates a new StockMover instance.
func NewStockMover() StockMover {
	return StockMover{}
}

// Transfer debits quantity from the source record and credits it to the
// destination record. reasonOut and reasonIn label the two history entries.
func (m StockMover) Transfer(
	from *inventory.Record,
	to *inventory.Record,
	quantity float64,
	reasonOut string,
	reasonIn string,
	now time.Time,
) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	if err := from.Debit(quantity, reasonOut, now); err != nil {
		return err
	}
	return to.Credit(quantity, reasonIn, now)
}
