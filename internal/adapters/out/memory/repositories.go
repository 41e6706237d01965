package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/production"
	"bakeflow/internal/core/domain/model/trip"
	"bakeflow/internal/pkg/errs"
)

// orderRepository implements ports.OrderRepository over the store.
type orderRepository struct {
	uow *unitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		key := aggregate.Code().String()
		if _, exists := st.orders[key]; exists {
			return fmt.Errorf("order %s already exists", key)
		}

		copied, err := cloneOrder(aggregate, st.orderLogs[key])
		if err != nil {
			return err
		}
		st.orders[key] = copied
		return nil
	})
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		key := aggregate.Code().String()
		if _, exists := st.orders[key]; !exists {
			return errs.NewObjectNotFoundError("order", key)
		}

		copied, err := cloneOrder(aggregate, st.orderLogs[key])
		if err != nil {
			return err
		}
		st.orders[key] = copied
		return nil
	})
}

func (r *orderRepository) Get(_ context.Context, code kernel.OrderCode) (*order.Order, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var result *order.Order
	err := r.uow.guarded(false, func(st *state) error {
		key := code.String()
		stored, exists := st.orders[key]
		if !exists {
			return errs.NewObjectNotFoundError("order", key)
		}

		copied, cloneErr := cloneOrder(stored, st.orderLogs[key])
		if cloneErr != nil {
			return cloneErr
		}
		result = copied
		return nil
	})
	return result, err
}

func (r *orderRepository) GetAll(_ context.Context, activeOnly bool) ([]*order.Order, error) {
	return r.collect(func(o *order.Order) bool {
		return !activeOnly || !o.Status().IsTerminal()
	})
}

func (r *orderRepository) GetAllProductionRelevant(_ context.Context) ([]*order.Order, error) {
	return r.collect(func(o *order.Order) bool {
		return o.IsProductionRelevant()
	})
}

func (r *orderRepository) GetAllByTrip(_ context.Context, tripID kernel.UUID) ([]*order.Order, error) {
	if err := tripID.Validate(); err != nil {
		return nil, err
	}

	return r.collect(func(o *order.Order) bool {
		return o.TripID() != nil && *o.TripID() == tripID
	})
}

func (r *orderRepository) AppendLog(_ context.Context, code kernel.OrderCode, event order.LogEvent) error {
	if err := code.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		key := code.String()
		st.orderLogs[key] = append(st.orderLogs[key], event)
		return nil
	})
}

func (r *orderRepository) NextCode(_ context.Context, month, year int) (kernel.OrderCode, error) {
	var next kernel.OrderCode
	err := r.uow.guarded(false, func(st *state) error {
		highest := 0
		for _, o := range st.orders {
			code := o.Code()
			if code.Month() == month && code.Year() == year && code.Sequence() > highest {
				highest = code.Sequence()
			}
		}

		code, codeErr := kernel.NewOrderCode(month, year, highest+1)
		if codeErr != nil {
			return codeErr
		}
		next = code
		return nil
	})
	return next, err
}

func (r *orderRepository) collect(keep func(*order.Order) bool) ([]*order.Order, error) {
	var result []*order.Order
	err := r.uow.guarded(false, func(st *state) error {
		keys := make([]string, 0, len(st.orders))
		for k := range st.orders {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		result = make([]*order.Order, 0, len(keys))
		for _, k := range keys {
			stored := st.orders[k]
			if !keep(stored) {
				continue
			}
			copied, cloneErr := cloneOrder(stored, st.orderLogs[k])
			if cloneErr != nil {
				return cloneErr
			}
			result = append(result, copied)
		}
		return nil
	})
	return result, err
}

// taskRepository implements ports.TaskRepository over the store.
type taskRepository struct {
	uow *unitOfWork
}

func (r *taskRepository) Add(_ context.Context, aggregate *bakingtask.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		key := aggregate.ID().String()
		if _, exists := st.tasks[key]; exists {
			return fmt.Errorf("task %s already exists", key)
		}

		copied, err := cloneTask(aggregate)
		if err != nil {
			return err
		}
		st.tasks[key] = copied
		return nil
	})
}

func (r *taskRepository) Update(_ context.Context, aggregate *bakingtask.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		key := aggregate.ID().String()
		if _, exists := st.tasks[key]; !exists {
			return errs.NewObjectNotFoundError("task", key)
		}

		copied, err := cloneTask(aggregate)
		if err != nil {
			return err
		}
		st.tasks[key] = copied
		return nil
	})
}

func (r *taskRepository) Get(_ context.Context, id kernel.UUID) (*bakingtask.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var result *bakingtask.Task
	err := r.uow.guarded(false, func(st *state) error {
		stored, exists := st.tasks[id.String()]
		if !exists {
			return errs.NewObjectNotFoundError("task", id.String())
		}

		copied, cloneErr := cloneTask(stored)
		if cloneErr != nil {
			return cloneErr
		}
		result = copied
		return nil
	})
	return result, err
}

func (r *taskRepository) GetAllActive(_ context.Context) ([]*bakingtask.Task, error) {
	return r.collect(func(t *bakingtask.Task) bool { return t.IsActive() })
}

func (r *taskRepository) GetAll(_ context.Context) ([]*bakingtask.Task, error) {
	return r.collect(func(*bakingtask.Task) bool { return true })
}

func (r *taskRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		if _, exists := st.tasks[id.String()]; !exists {
			return errs.NewObjectNotFoundError("task", id.String())
		}
		delete(st.tasks, id.String())
		return nil
	})
}

func (r *taskRepository) collect(keep func(*bakingtask.Task) bool) ([]*bakingtask.Task, error) {
	var result []*bakingtask.Task
	err := r.uow.guarded(false, func(st *state) error {
		result = make([]*bakingtask.Task, 0, len(st.tasks))
		for _, stored := range st.tasks {
			if !keep(stored) {
				continue
			}
			copied, cloneErr := cloneTask(stored)
			if cloneErr != nil {
				return cloneErr
			}
			result = append(result, copied)
		}

		sort.Slice(result, func(i, j int) bool {
			return result[i].DueDate().Before(result[j].DueDate())
		})
		return nil
	})
	return result, err
}

// productionLogRepository implements ports.ProductionLogRepository over the store.
type productionLogRepository struct {
	uow *unitOfWork
}

func (r *productionLogRepository) Append(_ context.Context, entry *production.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		copied, err := cloneLogEntry(entry)
		if err != nil {
			return err
		}
		st.ledger = append(st.ledger, copied)
		return nil
	})
}

func (r *productionLogRepository) GetAll(_ context.Context, from, to time.Time) ([]*production.LogEntry, error) {
	var result []*production.LogEntry
	err := r.uow.guarded(false, func(st *state) error {
		result = make([]*production.LogEntry, 0, len(st.ledger))
		for _, stored := range st.ledger {
			if !from.IsZero() && stored.CompletedAt().Before(from) {
				continue
			}
			if !to.IsZero() && stored.CompletedAt().After(to) {
				continue
			}
			copied, cloneErr := cloneLogEntry(stored)
			if cloneErr != nil {
				return cloneErr
			}
			result = append(result, copied)
		}

		sort.Slice(result, func(i, j int) bool {
			return result[i].CompletedAt().After(result[j].CompletedAt())
		})
		return nil
	})
	return result, err
}

// inventoryRepository implements ports.InventoryRepository over the store.
type inventoryRepository struct {
	uow *unitOfWork
}

func (r *inventoryRepository) Upsert(_ context.Context, item *production.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		copied, err := cloneInventoryItem(item)
		if err != nil {
			return err
		}
		st.inventory[item.Key()] = copied
		return nil
	})
}

func (r *inventoryRepository) Get(_ context.Context, key order.SpecKey) (*production.InventoryItem, error) {
	var result *production.InventoryItem
	err := r.uow.guarded(false, func(st *state) error {
		stored, exists := st.inventory[key]
		if !exists {
			return errs.NewObjectNotFoundError("inventory item", key.String())
		}

		copied, cloneErr := cloneInventoryItem(stored)
		if cloneErr != nil {
			return cloneErr
		}
		result = copied
		return nil
	})
	return result, err
}

func (r *inventoryRepository) GetAll(_ context.Context) ([]*production.InventoryItem, error) {
	var result []*production.InventoryItem
	err := r.uow.guarded(false, func(st *state) error {
		result = make([]*production.InventoryItem, 0, len(st.inventory))
		for _, stored := range st.inventory {
			copied, cloneErr := cloneInventoryItem(stored)
			if cloneErr != nil {
				return cloneErr
			}
			result = append(result, copied)
		}

		sort.Slice(result, func(i, j int) bool {
			return result[i].Key().String() < result[j].Key().String()
		})
		return nil
	})
	return result, err
}

// tripRepository implements ports.TripRepository over the store.
type tripRepository struct {
	uow *unitOfWork
}

func (r *tripRepository) Add(_ context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		key := aggregate.ID().String()
		if _, exists := st.trips[key]; exists {
			return fmt.Errorf("trip %s already exists", key)
		}

		copied, err := cloneTrip(aggregate)
		if err != nil {
			return err
		}
		st.trips[key] = copied
		return nil
	})
}

func (r *tripRepository) Update(_ context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		key := aggregate.ID().String()
		if _, exists := st.trips[key]; !exists {
			return errs.NewObjectNotFoundError("trip", key)
		}

		copied, err := cloneTrip(aggregate)
		if err != nil {
			return err
		}
		st.trips[key] = copied
		return nil
	})
}

func (r *tripRepository) Get(_ context.Context, id kernel.UUID) (*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var result *trip.Trip
	err := r.uow.guarded(false, func(st *state) error {
		stored, exists := st.trips[id.String()]
		if !exists {
			return errs.NewObjectNotFoundError("trip", id.String())
		}

		copied, cloneErr := cloneTrip(stored)
		if cloneErr != nil {
			return cloneErr
		}
		result = copied
		return nil
	})
	return result, err
}

func (r *tripRepository) GetAll(_ context.Context, date time.Time) ([]*trip.Trip, error) {
	var result []*trip.Trip
	err := r.uow.guarded(false, func(st *state) error {
		result = make([]*trip.Trip, 0, len(st.trips))
		for _, stored := range st.trips {
			if !date.IsZero() && !sameDay(stored.Date(), date) {
				continue
			}
			copied, cloneErr := cloneTrip(stored)
			if cloneErr != nil {
				return cloneErr
			}
			result = append(result, copied)
		}

		sort.Slice(result, func(i, j int) bool {
			if !result[i].Date().Equal(result[j].Date()) {
				return result[i].Date().Before(result[j].Date())
			}
			return result[i].Name() < result[j].Name()
		})
		return nil
	})
	return result, err
}

func (r *tripRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.uow.guarded(true, func(st *state) error {
		if _, exists := st.trips[id.String()]; !exists {
			return errs.NewObjectNotFoundError("trip", id.String())
		}
		delete(st.trips, id.String())
		return nil
	})
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
