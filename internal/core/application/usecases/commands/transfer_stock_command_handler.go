package commands

import (
	"context"
	"time"

	"bakehouse/internal/core/domain/model/inventory"
	"bakehouse/internal/core/domain/services"
)

// TransferStockCommandHandler moves stock between two ledger records inside
// one unit of work. When the source cannot cover the quantity the transfer
// fails and, under the transactional strategy, both levels stay unchanged.
type TransferStockCommandHandler struct {
	uowFactory InventoryUoWFactory
	stockMover services.StockMover
}

// NewTransferStockCommandHandler creates a handler for stock transfers.
func NewTransferStockCommandHandler(uowFactory InventoryUoWFactory) TransferStockCommandHandler {
	return TransferStockCommandHandler{
		uowFactory: uowFactory,
		stockMover: services.NewStockMover(),
	}
}

// Handle executes the transfer and returns the updated source and
// destination records.
func (h *TransferStockCommandHandler) Handle(
	ctx context.Context,
	cmd TransferStockCommand,
) (*inventory.Record, *inventory.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	from, err := uow.InventoryRepository().GetOrCreate(ctx, cmd.ProductID(), cmd.FromLocationID())
	if err != nil {
		return nil, nil, err
	}
	to, err := uow.InventoryRepository().GetOrCreate(ctx, cmd.ProductID(), cmd.ToLocationID())
	if err != nil {
		return nil, nil, err
	}

	if err = h.stockMover.Transfer(from, to, cmd.Quantity(), cmd.ReasonOut(), cmd.ReasonIn(), time.Now()); err != nil {
		return nil, nil, err
	}

	if err = uow.InventoryRepository().Update(ctx, from); err != nil {
		return nil, nil, err
	}
	if err = uow.InventoryRepository().Update(ctx, to); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return from, to, nil
}
