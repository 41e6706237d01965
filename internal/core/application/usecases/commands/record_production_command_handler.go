package commands

import (
	"context"
	"errors"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/production"
	"bakeflow/internal/pkg/errs"
)

// RecordProductionCommandHandler records completed baking runs: progresses
// the task (when given), appends the ledger entry, and grows the inventory,
// all in one transaction.
type RecordProductionCommandHandler struct {
	uowFactory ProductionUoWFactory
}

// NewRecordProductionCommandHandler creates a handler for production recording.
func NewRecordProductionCommandHandler(uowFactory ProductionUoWFactory) RecordProductionCommandHandler {
	return RecordProductionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the production recording command.
func (h *RecordProductionCommandHandler) Handle(ctx context.Context, cmd RecordProductionCommand) error {
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

	key := cmd.Key()
	var taskID *kernel.UUID

	if cmd.TaskID() != nil {
		taskRepo := uow.TaskRepository()
		task, err := taskRepo.Get(ctx, *cmd.TaskID())
		if err != nil {
			return err
		}

		if err = task.RecordProgress(cmd.Quantity()); err != nil {
			return err
		}
		if err = taskRepo.Update(ctx, task); err != nil {
			return err
		}

		key = task.Key()
		id := task.ID()
		taskID = &id
	}

	entry, err := production.NewCompletionEntry(
		kernel.NewUUID(),
		key,
		cmd.Quantity(),
		cmd.CompletedAt(),
		taskID,
		cmd.Baker(),
		cmd.Notes(),
		cmd.QualityChecks(),
	)
	if err != nil {
		return err
	}

	if err = uow.ProductionLogRepository().Append(ctx, entry); err != nil {
		return err
	}

	if err = h.growInventory(ctx, uow, key, cmd.Quantity()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *RecordProductionCommandHandler) growInventory(
	ctx context.Context,
	uow ProductionUoW,
	key order.SpecKey,
	quantity int,
) error {
	invRepo := uow.InventoryRepository()

	item, err := invRepo.Get(ctx, key)
	switch {
	case err == nil:
		if err = item.Add(quantity); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		if item, err = production.NewInventoryItem(key, quantity); err != nil {
			return err
		}
	default:
		return err
	}

	return invRepo.Upsert(ctx, item)
}
