package commands

import (
	"context"
)

// RequestRevisionCommandHandler sends an order back for rework and records
// the revision in the order's history.
type RequestRevisionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRequestRevisionCommandHandler creates a handler for revision requests.
func NewRequestRevisionCommandHandler(uowFactory OrderUoWFactory) RequestRevisionCommandHandler {
	return RequestRevisionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the revision request command.
func (h *RequestRevisionCommandHandler) Handle(ctx context.Context, cmd RequestRevisionCommand) error {
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

	event, err := aggregate.RequestRevision(cmd.Notes(), cmd.Photos(), cmd.RequestedBy(), cmd.RequestedAt())
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
