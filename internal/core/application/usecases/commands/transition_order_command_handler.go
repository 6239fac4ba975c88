package commands

import (
	"context"
	"fmt"
	"time"

	"bakehouse/internal/core/domain/model/order"
	"bakehouse/internal/core/domain/services"
	"bakehouse/internal/pkg/errs"
)

// TransitionOrderCommandHandler drives an order through its lifecycle.
// Line patches trigger a full totals recompute; the delivered transition
// moves sending quantities from the factory to the branch; the received
// transition adjusts shortfalls back out of branch stock; table occupancy
// is re-synced on every transition. All of it shares one unit of work, so
// insufficient factory stock at delivery rolls the whole transition back
// under the transactional strategy.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	stockMover services.StockMover
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(uowFactory UoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		stockMover: services.NewStockMover(),
	}
}

// Handle applies the patch and returns the updated order.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if len(cmd.LinePatches()) > 0 {
		if err = aggregate.ApplyLinePatches(cmd.LinePatches(), now); err != nil {
			return nil, err
		}
	}

	if cmd.ConfirmAll() != nil && *cmd.ConfirmAll() {
		aggregate.ConfirmAllLines(now)
	}

	if cmd.NewStatus() != nil {
		if err = h.applyStatus(ctx, uow, aggregate, *cmd.NewStatus(), cmd.ConfirmAll(), now); err != nil {
			return nil, err
		}
	} else if cmd.ConfirmAll() != nil && !*cmd.ConfirmAll() {
		// Unconfirm without an explicit target reopens a completed order.
		if err = aggregate.Reopen(); err != nil {
			return nil, err
		}
	}

	if err = h.syncTable(ctx, uow, aggregate); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h *TransitionOrderCommandHandler) applyStatus(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	target order.Status,
	confirmAll *bool,
	now time.Time,
) error {
	switch target {
	case order.Pending:
		if aggregate.Status() == order.Completed {
			return aggregate.Reopen()
		}
		return aggregate.Pend()

	case order.Completed:
		requireConfirmed := confirmAll != nil && *confirmAll
		return aggregate.Complete(requireConfirmed)

	case order.Delivered:
		return h.deliver(ctx, uow, aggregate, now)

	case order.Received:
		return h.receive(ctx, uow, aggregate, now)

	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid transition target", target))
	}
}

// deliver transfers every positive sending quantity from the factory to the
// order's branch. An insufficient factory balance fails the transfer and
// with it the whole transition.
func (h *TransitionOrderCommandHandler) deliver(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	now time.Time,
) error {
	demands, err := aggregate.Deliver(now)
	if err != nil {
		return err
	}

	branchID := aggregate.BranchID()
	reasonOut := fmt.Sprintf("dispatched for %s", aggregate.BillNumber())
	reasonIn := fmt.Sprintf("delivered for %s", aggregate.BillNumber())

	for _, demand := range demands {
		factory, err := uow.InventoryRepository().GetOrCreate(ctx, demand.ProductID, nil)
		if err != nil {
			return err
		}
		branch, err := uow.InventoryRepository().GetOrCreate(ctx, demand.ProductID, &branchID)
		if err != nil {
			return err
		}

		if err = h.stockMover.Transfer(factory, branch, demand.Quantity, reasonOut, reasonIn, now); err != nil {
			return err
		}

		if err = uow.InventoryRepository().Update(ctx, factory); err != nil {
			return err
		}
		if err = uow.InventoryRepository().Update(ctx, branch); err != nil {
			return err
		}
	}

	return nil
}

// receive defaults received quantities to sending quantities and adjusts
// any shortfall back out of the branch's stock.
func (h *TransitionOrderCommandHandler) receive(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	now time.Time,
) error {
	shortfalls, err := aggregate.Receive(now)
	if err != nil {
		return err
	}

	branchID := aggregate.BranchID()
	reason := fmt.Sprintf("short receipt on %s", aggregate.BillNumber())

	for _, shortfall := range shortfalls {
		record, err := uow.InventoryRepository().GetOrCreate(ctx, shortfall.ProductID, &branchID)
		if err != nil {
			return err
		}
		record.Adjust(-shortfall.Quantity, reason, now)
		if err = uow.InventoryRepository().Update(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

// syncTable keeps the table occupancy consistent with the order status:
// active statuses hold the table, completed and later statuses release it.
func (h *TransitionOrderCommandHandler) syncTable(ctx context.Context, uow UoW, aggregate *order.Order) error {
	if aggregate.TableID() == nil {
		return nil
	}

	table, err := uow.TableRepository().Get(ctx, *aggregate.TableID())
	if err != nil {
		return err
	}

	if aggregate.Status().IsActive() {
		if err = table.Occupy(aggregate.ID()); err != nil {
			return err
		}
	} else if table.IsOccupiedBy(aggregate.ID()) {
		table.Free()
	}

	return uow.TableRepository().Update(ctx, table)
}
