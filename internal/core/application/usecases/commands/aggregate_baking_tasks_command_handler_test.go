package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bakeflow/internal/core/application/usecases/commands"
	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/order"
)

func TestAggregateBakingTasksCommandHandler_Handle_CreatesTasks(t *testing.T) {
	ctx := t.Context()
	aggregate := newIncompleteOrder(t)
	_, err := aggregate.ChangeStatus(order.InQueue, "admin", "", testRequestedAt)
	require.NoError(t, err)

	cmd, err := commands.NewAggregateBakingTasksCommand(testRequestedAt)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllProductionRelevant", mock.Anything).
			Return([]*order.Order{aggregate}, nil).Once(),
		uow.On("TaskRepository").Return(taskRepo).Once(),
		taskRepo.On("GetAllActive", mock.Anything).Return([]*bakingtask.Task{}, nil).Once(),
		taskRepo.On("Add", mock.Anything, mock.AnythingOfType("*bakingtask.Task")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAggregationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAggregateBakingTasksCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	taskRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAggregateBakingTasksCommandHandler_Handle_NoRelevantOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAggregateBakingTasksCommand(testRequestedAt)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllProductionRelevant", mock.Anything).
			Return([]*order.Order{}, nil).Once(),
		uow.On("TaskRepository").Return(taskRepo).Once(),
		taskRepo.On("GetAllActive", mock.Anything).Return([]*bakingtask.Task{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAggregationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAggregateBakingTasksCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	taskRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
