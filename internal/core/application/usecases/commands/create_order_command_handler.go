package commands

import (
	"context"
	"fmt"
	"time"

	"bakehouse/internal/core/domain/model/order"
	"bakehouse/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// server-side pricing, bill number allocation, table occupation and, for
// orders born in a stock-affecting status, the immediate branch stock
// deduction. All writes share one unit of work, so under the transactional
// strategy the counter increment, order insert, table update and inventory
// updates become visible together.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	branches   ports.BranchDirectory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, branches ports.BranchDirectory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		branches:   branches,
	}
}

// Handle processes the order creation command and returns the persisted
// order. Any validation failure aborts before the first write.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	branch, err := h.branches.GetBranch(ctx, cmd.BranchID())
	if err != nil {
		return nil, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sequence, err := uow.BillCounter().IncrementAndGet(ctx, cmd.BranchID(), order.DayKey(now))
	if err != nil {
		return nil, err
	}
	billNumber := order.FormatBillNumber(branch.Name, now, sequence)

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.BranchID(),
		cmd.Channel(),
		cmd.Lines(),
		cmd.PaymentMethod(),
		billNumber,
		cmd.TableID(),
		cmd.StaffID(),
		cmd.ScheduledFor(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = h.applyTableSideEffect(ctx, uow, newOrder); err != nil {
		return nil, err
	}

	if err = h.applyStockSideEffect(ctx, uow, newOrder, billNumber, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// applyTableSideEffect occupies the supplied table for table-bound orders.
// An order born directly in a stock-affecting terminal status frees the
// table instead.
func (h *CreateOrderCommandHandler) applyTableSideEffect(ctx context.Context, uow UoW, newOrder *order.Order) error {
	if !newOrder.Channel().UsesTable() || newOrder.TableID() == nil {
		return nil
	}

	table, err := uow.TableRepository().Get(ctx, *newOrder.TableID())
	if err != nil {
		return err
	}

	if newOrder.Status().IsActive() {
		if err = table.Occupy(newOrder.ID()); err != nil {
			return err
		}
	} else {
		table.Free()
	}

	return uow.TableRepository().Update(ctx, table)
}

// applyStockSideEffect deducts branch stock for orders created directly in
// a stock-affecting status (billing channel sales).
func (h *CreateOrderCommandHandler) applyStockSideEffect(
	ctx context.Context,
	uow UoW,
	newOrder *order.Order,
	billNumber string,
	now time.Time,
) error {
	if !newOrder.Status().AffectsStock() {
		return nil
	}

	branchID := newOrder.BranchID()
	reason := fmt.Sprintf("billed on %s", billNumber)

	for _, deduction := range newOrder.StockDeductions() {
		record, err := uow.InventoryRepository().GetOrCreate(ctx, deduction.ProductID, &branchID)
		if err != nil {
			return err
		}
		record.Adjust(-deduction.Quantity, reason, now)
		if err = uow.InventoryRepository().Update(ctx, record); err != nil {
			return err
		}
	}

	return nil
}
