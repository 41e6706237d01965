package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bakeflow/internal/core/application/usecases/commands"
	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"
)

func newActiveTask(t *testing.T, quantity int) *bakingtask.Task {
	t.Helper()
	task, err := bakingtask.NewManualTask(
		kernel.NewUUID(),
		order.SpecKey{Shape: "round", Size: "20cm", Flavor: "vanilla"},
		quantity, testDeliveryDate, testRequestedAt,
	)
	require.NoError(t, err)
	return task
}

func TestRecordProductionCommandHandler_Handle_TaskRun(t *testing.T) {
	ctx := t.Context()
	task := newActiveTask(t, 3)
	taskID := task.ID()
	cmd, err := commands.NewRecordProductionCommand(
		&taskID, "", "", "", 2, "baker-1", "first batch", nil, testRequestedAt,
	)
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	logRepo := new(MockProductionLogRepository)
	invRepo := new(MockInventoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Get", mock.Anything, taskID).Return(task, nil).Once(),
		taskRepo.On("Update", mock.Anything, task).Return(nil).Once(),
		uow.On("ProductionLogRepository").Return(logRepo).Once(),
		logRepo.On("Append", mock.Anything, mock.AnythingOfType("*production.LogEntry")).
			Return(nil).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		invRepo.On("Get", mock.Anything, task.Key()).
			Return(nil, errs.NewObjectNotFoundError("inventory", task.Key().String())).Once(),
		invRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*production.InventoryItem")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordProductionCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, bakingtask.InProgress, task.Status())
	require.Equal(t, 2, task.QuantityCompleted())
	taskRepo.AssertExpectations(t)
	logRepo.AssertExpectations(t)
	invRepo.AssertExpectations(t)
}

func TestRecordProductionCommandHandler_Handle_StandaloneRunGrowsInventory(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRecordProductionCommand(
		nil, "square", "25cm", "chocolate", 4, "baker-2", "", nil, testRequestedAt,
	)
	require.NoError(t, err)

	logRepo := new(MockProductionLogRepository)
	invRepo := new(MockInventoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductionLogRepository").Return(logRepo).Once(),
		logRepo.On("Append", mock.Anything, mock.AnythingOfType("*production.LogEntry")).
			Return(nil).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		invRepo.On("Get", mock.Anything, order.SpecKey{Shape: "square", Size: "25cm", Flavor: "chocolate"}).
			Return(nil, errs.NewObjectNotFoundError("inventory", "square/25cm/chocolate")).Once(),
		invRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*production.InventoryItem")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordProductionCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	logRepo.AssertExpectations(t)
	invRepo.AssertExpectations(t)
}

func TestRecordProductionCommandHandler_Handle_CompletedTaskRejected(t *testing.T) {
	ctx := t.Context()
	task := newActiveTask(t, 1)
	require.NoError(t, task.RecordProgress(1))
	require.Equal(t, bakingtask.Completed, task.Status())

	taskID := task.ID()
	cmd, err := commands.NewRecordProductionCommand(
		&taskID, "", "", "", 1, "baker-1", "", nil, testRequestedAt,
	)
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Get", mock.Anything, taskID).Return(task, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordProductionCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, bakingtask.ErrTaskIsNotActive)
	uow.AssertNotCalled(t, "Commit", ctx)
}
