package commands

import (
	"context"

	"bakeflow/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler handles lifecycle and kitchen-substate
// moves. Every lifecycle move appends its status-change event to the order
// log through the repository's append-only contract.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for status moves.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status-change command.
// Loads the order, applies the requested moves against the transition table,
// and persists the updated aggregate plus the new log event atomically.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	var event *order.LogEvent
	if cmd.NewStatus() != order.StatusUnknown {
		e, err := aggregate.ChangeStatus(cmd.NewStatus(), cmd.Actor(), cmd.Note(), cmd.RequestedAt())
		if err != nil {
			return err
		}
		event = &e
	}

	if cmd.KitchenStatus() != order.KitchenStatusNone {
		if err = aggregate.ChangeKitchenStatus(cmd.KitchenStatus()); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if event != nil {
		if err = orderRepo.AppendLog(ctx, aggregate.Code(), *event); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
