package commands

import (
	"context"

	"bakehouse/internal/core/domain/model/inventory"
)

// SetStockThresholdCommandHandler updates the low-stock boundary of a
// ledger record. No further side effects.
type SetStockThresholdCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewSetStockThresholdCommandHandler creates a handler for threshold updates.
func NewSetStockThresholdCommandHandler(uowFactory InventoryUoWFactory) SetStockThresholdCommandHandler {
	return SetStockThresholdCommandHandler{uowFactory: uowFactory}
}

// Handle updates the threshold and returns the updated record.
func (h *SetStockThresholdCommandHandler) Handle(
	ctx context.Context,
	cmd SetStockThresholdCommand,
) (*inventory.Record, error) {
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

	record, err := uow.InventoryRepository().Get(ctx, cmd.RecordID())
	if err != nil {
		return nil, err
	}

	if err = record.SetThreshold(cmd.Threshold()); err != nil {
		return nil, err
	}

	if err = uow.InventoryRepository().Update(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
