package commands

import (
	"context"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
)

// CreateManualTaskCommandHandler creates baker-initiated tasks and returns
// the new task id.
type CreateManualTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewCreateManualTaskCommandHandler creates a handler for manual task creation.
func NewCreateManualTaskCommandHandler(uowFactory TaskUoWFactory) CreateManualTaskCommandHandler {
	return CreateManualTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the manual task creation command.
func (h *CreateManualTaskCommandHandler) Handle(ctx context.Context, cmd CreateManualTaskCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	task, err := bakingtask.NewManualTask(
		kernel.NewUUID(),
		cmd.Key(),
		cmd.Quantity(),
		cmd.DueDate(),
		cmd.RequestedAt(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TaskRepository().Add(ctx, task); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return task.ID(), nil
}
