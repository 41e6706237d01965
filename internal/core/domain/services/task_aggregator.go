package services

import (
	"sort"
	"time"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
)

// AggregationResult carries the outcome of one aggregation run: tasks that
// were created for new spec-key groups and existing tasks that were merged
// into, shrunk, or cancelled by reconciliation. The caller persists both
// slices; the aggregator itself never touches storage.
type AggregationResult struct {
	Created []*bakingtask.Task
	Updated []*bakingtask.Task
}

// TaskAggregator is a domain service that derives baking tasks from the
// current set of production-relevant orders.
//
// One run performs two passes over the active aggregation-derived tasks:
//
//  1. Reconciliation: orders that left a task's group (completed upstream,
//     cancelled, or re-specced) are dropped from the task. A task whose
//     orders all departed is cancelled with a reason naming them.
//  2. Merging: each spec-key group of production-relevant orders is folded
//     into the existing active task for that key, or a new pending task is
//     created when none exists.
//
// Manual tasks are invisible to both passes. Running the aggregator twice
// against the same inputs produces no further changes.
type TaskAggregator struct{}

// NewTaskAggregator creates a new TaskAggregator instance.
func NewTaskAggregator() TaskAggregator {
	return TaskAggregator{}
}

// specGroup is one spec-key bucket of production-relevant orders.
type specGroup struct {
	codes       []kernel.OrderCode
	earliestDue time.Time
}

// Aggregate runs reconciliation and merging over the given orders and active
// tasks. orders may contain any orders; only production-relevant ones
// contribute. activeTasks should hold every pending or in-progress task.
func (a TaskAggregator) Aggregate(
	orders []*order.Order,
	activeTasks []*bakingtask.Task,
	today time.Time,
) (AggregationResult, error) {
	groups := groupBySpecKey(orders)

	var result AggregationResult

	// Reconciliation pass. Manual tasks are left alone.
	for _, task := range activeTasks {
		if task.IsManual() || !task.IsActive() {
			continue
		}

		group, ok := groups[task.Key()]
		var current map[string]struct{}
		if ok {
			current = make(map[string]struct{}, len(group.codes))
			for _, c := range group.codes {
				current[c.String()] = struct{}{}
			}
		}

		var surviving, modified []kernel.OrderCode
		for _, c := range task.OrderCodes() {
			if _, stillHere := current[c.String()]; stillHere {
				surviving = append(surviving, c)
			} else {
				modified = append(modified, c)
			}
		}

		if len(modified) == 0 {
			continue
		}
		if err := task.ShrinkTo(surviving, modified); err != nil {
			return AggregationResult{}, err
		}
		result.Updated = append(result.Updated, task)
	}

	// Merge pass, in deterministic key order.
	keys := make([]order.SpecKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	for _, key := range keys {
		group := groups[key]

		existing := findActiveTask(activeTasks, key)
		if existing != nil {
			// A merge can change more than the member set: the due date can
			// move earlier and the priority flag can flip. Any of those must
			// reach storage.
			membersBefore := len(existing.OrderCodes())
			dueBefore := existing.DueDate()
			priorityBefore := existing.IsPriority()
			if err := existing.MergeGroup(group.codes, group.earliestDue, today); err != nil {
				return AggregationResult{}, err
			}
			changed := len(existing.OrderCodes()) != membersBefore ||
				!existing.DueDate().Equal(dueBefore) ||
				existing.IsPriority() != priorityBefore
			if changed && !containsTask(result.Updated, existing) {
				result.Updated = append(result.Updated, existing)
			}
			continue
		}

		task, err := bakingtask.NewTask(kernel.NewUUID(), key, group.codes, group.earliestDue, today)
		if err != nil {
			return AggregationResult{}, err
		}
		result.Created = append(result.Created, task)
	}

	return result, nil
}

func groupBySpecKey(orders []*order.Order) map[order.SpecKey]*specGroup {
	groups := make(map[order.SpecKey]*specGroup)
	for _, o := range orders {
		if o == nil || !o.IsProductionRelevant() {
			continue
		}

		key := o.Spec().Key()
		group, ok := groups[key]
		if !ok {
			group = &specGroup{}
			groups[key] = group
		}

		group.codes = append(group.codes, o.Code())
		if group.earliestDue.IsZero() || o.DeliveryDate().Before(group.earliestDue) {
			group.earliestDue = o.DeliveryDate()
		}
	}
	return groups
}

func findActiveTask(tasks []*bakingtask.Task, key order.SpecKey) *bakingtask.Task {
	for _, t := range tasks {
		if !t.IsManual() && t.IsActive() && t.Key() == key {
			return t
		}
	}
	return nil
}

func containsTask(tasks []*bakingtask.Task, task *bakingtask.Task) bool {
	for _, t := range tasks {
		if t.IsEqual(task) {
			return true
		}
	}
	return false
}
