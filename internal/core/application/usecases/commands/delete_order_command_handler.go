package commands

import (
	"context"
)

// DeleteOrderCommandHandler removes an order, freeing its table if the
// order still holds one. Inventory movements already committed for the
// order are deliberately not reversed; deletion is bookkeeping-only.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory UoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the deletion command.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.TableID() != nil {
		table, tableErr := uow.TableRepository().Get(ctx, *aggregate.TableID())
		if tableErr != nil {
			return tableErr
		}
		if table.IsOccupiedBy(aggregate.ID()) {
			table.Free()
			if tableErr = uow.TableRepository().Update(ctx, table); tableErr != nil {
				return tableErr
			}
		}
	}

	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
