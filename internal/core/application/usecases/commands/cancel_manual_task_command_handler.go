package commands

import (
	"context"
)

// CancelManualTaskCommandHandler cancels baker-initiated tasks.
type CancelManualTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewCancelManualTaskCommandHandler creates a handler for manual task cancellation.
func NewCancelManualTaskCommandHandler(uowFactory TaskUoWFactory) CancelManualTaskCommandHandler {
	return CancelManualTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
// Fails with bakingtask.ErrTaskIsNotManual for aggregation-derived tasks.
func (h *CancelManualTaskCommandHandler) Handle(ctx context.Context, cmd CancelManualTaskCommand) error {
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

	taskRepo := uow.TaskRepository()
	task, err := taskRepo.Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = task.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
