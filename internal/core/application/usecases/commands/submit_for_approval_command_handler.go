package commands

import (
	"context"
)

// SubmitForApprovalCommandHandler moves an order from waiting-photo or
// needs-revision to pending-approval with the submitted photos.
type SubmitForApprovalCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSubmitForApprovalCommandHandler creates a handler for photo submissions.
func NewSubmitForApprovalCommandHandler(uowFactory OrderUoWFactory) SubmitForApprovalCommandHandler {
	return SubmitForApprovalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the photo submission command.
func (h *SubmitForApprovalCommandHandler) Handle(ctx context.Context, cmd SubmitForApprovalCommand) error {
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

	event, err := aggregate.SubmitForApproval(cmd.Photos(), cmd.Actor(), cmd.RequestedAt())
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
