package commands

import (
	"context"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/production"
)

// AcknowledgeCancelledTaskCommandHandler records baker acknowledgement of a
// task cancellation in the production ledger.
type AcknowledgeCancelledTaskCommandHandler struct {
	uowFactory ProductionUoWFactory
}

// NewAcknowledgeCancelledTaskCommandHandler creates a handler for cancellation acknowledgements.
func NewAcknowledgeCancelledTaskCommandHandler(uowFactory ProductionUoWFactory) AcknowledgeCancelledTaskCommandHandler {
	return AcknowledgeCancelledTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acknowledgement command.
// The task must already be cancelled; the ledger entry carries the task's
// cancellation reason and no quantity. Acknowledgement is how a baker clears
// a cancelled task from the queue, so the task record is deleted once the
// ledger entry is written.
func (h *AcknowledgeCancelledTaskCommandHandler) Handle(ctx context.Context, cmd AcknowledgeCancelledTaskCommand) error {
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

	if task.Status() != bakingtask.Cancelled {
		return ErrTaskIsNotCancelled
	}

	id := task.ID()
	entry, err := production.NewCancellationEntry(
		kernel.NewUUID(),
		task.Key(),
		cmd.AcknowledgedAt(),
		&id,
		task.CancellationReason(),
		cmd.Notes(),
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
