package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/services"
)

var today = time.Date(2025, 5, 16, 8, 0, 0, 0, time.UTC)

func mustCode(t *testing.T, s string) kernel.OrderCode {
	t.Helper()
	code, err := kernel.OrderCodeFromString(s)
	require.NoError(t, err)
	return code
}

func newQueuedOrder(t *testing.T, codeStr, shape, size, flavor string, due time.Time) *order.Order {
	t.Helper()
	spec, err := order.NewCakeSpec(shape, size, flavor, nil)
	require.NoError(t, err)
	o, err := order.NewOrder(mustCode(t, codeStr), "Dana", spec, due)
	require.NoError(t, err)
	_, err = o.ChangeStatus(order.InQueue, "admin", "", today)
	require.NoError(t, err)
	return o
}

func TestTaskAggregatorCreatesTaskPerSpecKey(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	dueSoon := today.AddDate(0, 0, 1)
	dueLater := today.AddDate(0, 0, 3)
	orders := []*order.Order{
		newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", dueLater),
		newQueuedOrder(t, "05-25-002", "round", "20cm", "vanilla", dueSoon),
		newQueuedOrder(t, "05-25-003", "square", "25cm", "chocolate", dueLater),
	}

	result, err := aggregator.Aggregate(orders, nil, today)

	require.NoError(t, err)
	assert.Empty(t, result.Updated)
	require.Len(t, result.Created, 2)

	var vanilla *bakingtask.Task
	for _, task := range result.Created {
		if task.Key().Flavor == "vanilla" {
			vanilla = task
		}
	}
	require.NotNil(t, vanilla)
	assert.Equal(t, 2, vanilla.Quantity())
	assert.Equal(t, dueSoon, vanilla.DueDate())
	assert.Equal(t, bakingtask.Pending, vanilla.Status())
	assert.Len(t, vanilla.OrderCodes(), 2)
}

func TestTaskAggregatorFlagsTasksDueToday(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	orders := []*order.Order{
		newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", today),
	}

	result, err := aggregator.Aggregate(orders, nil, today)

	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.True(t, result.Created[0].IsPriority())
}

func TestTaskAggregatorIgnoresIrrelevantOrders(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	due := today.AddDate(0, 0, 2)
	incomplete, err := order.NewOrder(
		mustCode(t, "05-25-004"), "Dana",
		mustSpec(t, "round", "20cm", "vanilla"), due,
	)
	require.NoError(t, err)

	decorating := newQueuedOrder(t, "05-25-005", "round", "20cm", "vanilla", due)
	_, err = decorating.ChangeStatus(order.InKitchen, "admin", "", today)
	require.NoError(t, err)
	require.NoError(t, decorating.ChangeKitchenStatus(order.Decorating))

	result, err := aggregator.Aggregate([]*order.Order{incomplete, decorating}, nil, today)

	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Empty(t, result.Updated)
}

func TestTaskAggregatorMergesIntoExistingTask(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	due := today.AddDate(0, 0, 2)
	first := newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", due)

	initial, err := aggregator.Aggregate([]*order.Order{first}, nil, today)
	require.NoError(t, err)
	require.Len(t, initial.Created, 1)
	existing := initial.Created[0]

	second := newQueuedOrder(t, "05-25-002", "round", "20cm", "vanilla", due.AddDate(0, 0, -1))
	result, err := aggregator.Aggregate(
		[]*order.Order{first, second},
		[]*bakingtask.Task{existing},
		today,
	)

	require.NoError(t, err)
	assert.Empty(t, result.Created)
	require.Len(t, result.Updated, 1)
	assert.True(t, result.Updated[0].IsEqual(existing))
	assert.Equal(t, 2, existing.Quantity())
	assert.Equal(t, due.AddDate(0, 0, -1), existing.DueDate())
}

func TestTaskAggregatorReportsDueDateAndPriorityChanges(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	first := newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", today.AddDate(0, 0, 2))

	initial, err := aggregator.Aggregate([]*order.Order{first}, nil, today)
	require.NoError(t, err)
	require.Len(t, initial.Created, 1)
	existing := initial.Created[0]

	// Same member, but its delivery date moved up to today. The member set
	// is unchanged, so only the due date and priority flag differ.
	moved := newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", today)
	result, err := aggregator.Aggregate(
		[]*order.Order{moved},
		[]*bakingtask.Task{existing},
		today,
	)

	require.NoError(t, err)
	assert.Empty(t, result.Created)
	require.Len(t, result.Updated, 1)
	assert.True(t, result.Updated[0].IsEqual(existing))
	assert.Equal(t, today, existing.DueDate())
	assert.True(t, existing.IsPriority())
}

func TestTaskAggregatorIsIdempotent(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	due := today.AddDate(0, 0, 2)
	orders := []*order.Order{
		newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", due),
		newQueuedOrder(t, "05-25-002", "round", "20cm", "vanilla", due),
	}

	first, err := aggregator.Aggregate(orders, nil, today)
	require.NoError(t, err)
	require.Len(t, first.Created, 1)

	second, err := aggregator.Aggregate(orders, first.Created, today)

	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Empty(t, second.Updated)
	assert.Equal(t, 2, first.Created[0].Quantity())
}

func TestTaskAggregatorShrinksTaskWhenOrderDeparts(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	due := today.AddDate(0, 0, 2)
	first := newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", due)
	second := newQueuedOrder(t, "05-25-002", "round", "20cm", "vanilla", due)

	initial, err := aggregator.Aggregate([]*order.Order{first, second}, nil, today)
	require.NoError(t, err)
	task := initial.Created[0]

	_, err = second.Cancel("admin", "customer cancelled", today)
	require.NoError(t, err)

	result, err := aggregator.Aggregate(
		[]*order.Order{first, second},
		[]*bakingtask.Task{task},
		today,
	)

	require.NoError(t, err)
	assert.Empty(t, result.Created)
	require.Len(t, result.Updated, 1)
	assert.Equal(t, 1, task.Quantity())
	assert.Len(t, task.OrderCodes(), 1)
	assert.True(t, task.OrderCodes()[0].IsEqual(first.Code()))
}

func TestTaskAggregatorCancelsTaskWhenAllOrdersDepart(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	due := today.AddDate(0, 0, 2)
	first := newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", due)
	second := newQueuedOrder(t, "05-25-002", "round", "20cm", "vanilla", due)

	initial, err := aggregator.Aggregate([]*order.Order{first, second}, nil, today)
	require.NoError(t, err)
	task := initial.Created[0]

	_, err = first.Cancel("admin", "", today)
	require.NoError(t, err)
	_, err = second.Cancel("admin", "", today)
	require.NoError(t, err)

	result, err := aggregator.Aggregate(
		[]*order.Order{first, second},
		[]*bakingtask.Task{task},
		today,
	)

	require.NoError(t, err)
	assert.Empty(t, result.Created)
	require.Len(t, result.Updated, 1)
	assert.Equal(t, bakingtask.Cancelled, task.Status())
	assert.Equal(t, "Order(s) 05-25-001, 05-25-002 modified", task.CancellationReason())
}

func TestTaskAggregatorMovesReSpeccedOrderBetweenTasks(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	due := today.AddDate(0, 0, 2)
	o := newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", due)

	initial, err := aggregator.Aggregate([]*order.Order{o}, nil, today)
	require.NoError(t, err)
	vanillaTask := initial.Created[0]

	// Same order, now carrying a chocolate spec.
	respecced, err := order.NewOrder(
		mustCode(t, "05-25-001"), "Dana",
		mustSpec(t, "round", "20cm", "chocolate"), due,
	)
	require.NoError(t, err)
	_, err = respecced.ChangeStatus(order.InQueue, "admin", "", today)
	require.NoError(t, err)

	result, err := aggregator.Aggregate(
		[]*order.Order{respecced},
		[]*bakingtask.Task{vanillaTask},
		today,
	)

	require.NoError(t, err)
	assert.Equal(t, bakingtask.Cancelled, vanillaTask.Status())
	require.Len(t, result.Created, 1)
	assert.Equal(t, "chocolate", result.Created[0].Key().Flavor)
}

func TestTaskAggregatorLeavesManualTasksAlone(t *testing.T) {
	aggregator := services.NewTaskAggregator()
	due := today.AddDate(0, 0, 2)
	manual, err := bakingtask.NewManualTask(
		kernel.NewUUID(),
		order.SpecKey{Shape: "round", Size: "20cm", Flavor: "vanilla"},
		5, due, today,
	)
	require.NoError(t, err)

	o := newQueuedOrder(t, "05-25-001", "round", "20cm", "vanilla", due)
	result, err := aggregator.Aggregate(
		[]*order.Order{o},
		[]*bakingtask.Task{manual},
		today,
	)

	require.NoError(t, err)
	assert.Empty(t, result.Updated)
	require.Len(t, result.Created, 1)
	assert.Equal(t, 5, manual.Quantity())
	assert.Empty(t, manual.OrderCodes())
}

func mustSpec(t *testing.T, shape, size, flavor string) order.CakeSpec {
	t.Helper()
	spec, err := order.NewCakeSpec(shape, size, flavor, nil)
	require.NoError(t, err)
	return spec
}
