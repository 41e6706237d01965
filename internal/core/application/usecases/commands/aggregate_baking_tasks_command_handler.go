package commands

import (
	"context"

	"bakeflow/internal/core/domain/services"
)

// AggregateBakingTasksCommandHandler runs the task aggregation algorithm over
// the current production-relevant orders and persists its changes in one
// transaction. Running it again without order changes is a no-op.
type AggregateBakingTasksCommandHandler struct {
	uowFactory AggregationUoWFactory
	aggregator services.TaskAggregator
}

// NewAggregateBakingTasksCommandHandler creates a handler for aggregation runs.
func NewAggregateBakingTasksCommandHandler(uowFactory AggregationUoWFactory) AggregateBakingTasksCommandHandler {
	return AggregateBakingTasksCommandHandler{
		uowFactory: uowFactory,
		aggregator: services.NewTaskAggregator(),
	}
}

// Handle processes the aggregation command.
// Reads the production-relevant orders and active tasks, applies the
// reconciliation and merge passes, and persists created and updated tasks.
func (h *AggregateBakingTasksCommandHandler) Handle(ctx context.Context, cmd AggregateBakingTasksCommand) error {
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

	orders, err := uow.OrderRepository().GetAllProductionRelevant(ctx)
	if err != nil {
		return err
	}

	taskRepo := uow.TaskRepository()
	activeTasks, err := taskRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	result, err := h.aggregator.Aggregate(orders, activeTasks, cmd.RequestedAt())
	if err != nil {
		return err
	}

	for _, task := range result.Updated {
		if err = taskRepo.Update(ctx, task); err != nil {
			return err
		}
	}
	for _, task := range result.Created {
		if err = taskRepo.Add(ctx, task); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
