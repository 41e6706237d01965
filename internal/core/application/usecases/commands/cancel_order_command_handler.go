package commands

import (
	"context"
)

// CancelOrderCommandHandler cancels orders. Cancellation is terminal; the
// order's baking task and trip membership are cleaned up by their own flows
// (aggregation reconciliation and trip removal).
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderCode())
	if err != nil {
		return err
	}

	event, err := aggregate.Cancel(cmd.Actor(), cmd.Note(), cmd.RequestedAt())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = orderRepo.AppendLog(ctx, aggregate.Code(), event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
