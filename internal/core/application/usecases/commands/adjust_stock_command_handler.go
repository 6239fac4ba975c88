package commands

import (
	"context"
	"time"

	"bakehouse/internal/core/domain/model/inventory"
)

// AdjustStockCommandHandler applies a manual delta to a ledger record,
// lazily creating the record for a previously unseen (product, location)
// pair.
type AdjustStockCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewAdjustStockCommandHandler creates a handler for stock adjustments.
func NewAdjustStockCommandHandler(uowFactory InventoryUoWFactory) AdjustStockCommandHandler {
	return AdjustStockCommandHandler{uowFactory: uowFactory}
}

// Handle applies the delta and returns the updated record.
func (h *AdjustStockCommandHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (*inventory.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := uow.InventoryRepository().GetOrCreate(ctx, cmd.ProductID(), cmd.LocationID())
	if err != nil {
		return nil, err
	}

	record.Adjust(cmd.Delta(), cmd.Reason(), time.Now())

	if err = uow.InventoryRepository().Update(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
