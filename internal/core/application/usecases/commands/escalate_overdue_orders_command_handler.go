package commands

import (
	"context"
	"time"
)

// EscalateOverdueOrdersCommandHandler bulk-transitions stalled orders to
// Pending. Failures abort the sweep; the next tick re-evaluates, so nothing
// is retried within the same run.
type EscalateOverdueOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewEscalateOverdueOrdersCommandHandler creates a handler for the overdue sweep.
func NewEscalateOverdueOrdersCommandHandler(uowFactory OrderUoWFactory) EscalateOverdueOrdersCommandHandler {
	return EscalateOverdueOrdersCommandHandler{uowFactory: uowFactory}
}

// Handle escalates every overdue order and returns how many were moved.
func (h *EscalateOverdueOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd EscalateOverdueOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	overdue, err := uow.OrderRepository().GetAllOverdue(ctx, time.Now(), cmd.Staleness())
	if err != nil {
		return 0, err
	}

	for _, aggregate := range overdue {
		if err = aggregate.Pend(); err != nil {
			return 0, err
		}
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(overdue), nil
}
