package commands

import (
	"context"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/production"
)

// deletedTaskReason is the cancellation reason recorded when a still-active
// manual task is deleted outright.
const deletedTaskReason = "Task deleted"

// DeleteManualTaskCommandHandler deletes manual tasks, logging a cancellation
// entry in the production ledger first.
type DeleteManualTaskCommandHandler struct {
	uowFactory ProductionUoWFactory
}

// NewDeleteManualTaskCommandHandler creates a handler for manual task deletion.
func NewDeleteManualTaskCommandHandler(uowFactory ProductionUoWFactory) DeleteManualTaskCommandHandler {
	return DeleteManualTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command.
// The task must be manual; it need not be cancelled first. An active task is
// cancelled here so the ledger entry carries a reason, then the record is
// removed.
func (h *DeleteManualTaskCommandHandler) Handle(ctx context.Context, cmd DeleteManualTaskCommand) error {
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

	if !task.IsManual() {
		return bakingtask.ErrTaskIsNotManual
	}

	if task.IsActive() {
		if err = task.Cancel(deletedTaskReason); err != nil {
			return err
		}
	}

	id := task.ID()
	entry, err := production.NewCancellationEntry(
		kernel.NewUUID(),
		task.Key(),
		cmd.RequestedAt(),
		&id,
		task.CancellationReason(),
		"",
	)
	if err != nil {
		return err
	}

	if err = uow.ProductionLogRepository().Append(ctx, entry); err != nil {
		return err
	}

	if err = taskRepo.Delete(ctx, task.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
