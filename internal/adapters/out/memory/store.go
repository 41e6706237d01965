// Package memory provides an in-memory implementation of the persistence
// ports. It is interchangeable with the postgres adapter: the same unit of
// work contract, backed by mutex-guarded maps instead of a database. Useful
// for tests and for running the engine without external infrastructure.
//
// Transactions are copy-on-begin: Begin clones the shared state, repository
// operations mutate the clone, and Commit swaps the clone back in under the
// write lock. Concurrent committers are serialized; the last commit wins.
package memory

import (
	"context"
	"errors"
	"sync"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/production"
	"bakeflow/internal/core/domain/model/trip"
	"bakeflow/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when Begin was
// never called.
var ErrNoActiveTransaction = errors.New("no active transaction")

// state holds every stored aggregate. Orders and their logs are kept apart,
// matching the persistence contract: Update never rewrites the log, only
// AppendLog grows it.
type state struct {
	orders    map[string]*order.Order
	orderLogs map[string][]order.LogEvent
	tasks     map[string]*bakingtask.Task
	ledger    []*production.LogEntry
	inventory map[order.SpecKey]*production.InventoryItem
	trips     map[string]*trip.Trip
}

func newState() *state {
	return &state{
		orders:    map[string]*order.Order{},
		orderLogs: map[string][]order.LogEvent{},
		tasks:     map[string]*bakingtask.Task{},
		ledger:    []*production.LogEntry{},
		inventory: map[order.SpecKey]*production.InventoryItem{},
		trips:     map[string]*trip.Trip{},
	}
}

// clone deep-copies the state. Aggregates are rebuilt through their restore
// constructors so a transaction can never alias an aggregate held by a
// concurrent reader.
func (s *state) clone() (*state, error) {
	copied := newState()

	for k, v := range s.orders {
		o, err := cloneOrder(v, s.orderLogs[k])
		if err != nil {
			return nil, err
		}
		copied.orders[k] = o
	}
	for k, v := range s.orderLogs {
		copied.orderLogs[k] = append([]order.LogEvent(nil), v...)
	}
	for k, v := range s.tasks {
		t, err := cloneTask(v)
		if err != nil {
			return nil, err
		}
		copied.tasks[k] = t
	}
	for _, v := range s.ledger {
		e, err := cloneLogEntry(v)
		if err != nil {
			return nil, err
		}
		copied.ledger = append(copied.ledger, e)
	}
	for k, v := range s.inventory {
		item, err := cloneInventoryItem(v)
		if err != nil {
			return nil, err
		}
		copied.inventory[k] = item
	}
	for k, v := range s.trips {
		t, err := cloneTrip(v)
		if err != nil {
			return nil, err
		}
		copied.trips[k] = t
	}

	return copied, nil
}

// Store is the shared in-memory gateway. It implements ports.UnitOfWorkFactory
// so the composition root can swap it in wherever the postgres factory goes.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Create produces a new UnitOfWork bound to this store.
func (s *Store) Create() ports.UnitOfWork {
	return &unitOfWork{store: s}
}

// unitOfWork implements ports.UnitOfWork over a staged copy of the store.
type unitOfWork struct {
	store  *Store
	staged *state
}

// Begin clones the shared state. Repository operations then run against the
// clone. Calling Begin twice is a no-op, mirroring the postgres adapter.
func (uow *unitOfWork) Begin(_ context.Context) error {
	if uow.staged != nil {
		return nil
	}

	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()

	staged, err := uow.store.state.clone()
	if err != nil {
		return err
	}
	uow.staged = staged
	return nil
}

// Commit swaps the staged state into the store.
func (uow *unitOfWork) Commit(_ context.Context) error {
	if uow.staged == nil {
		return ErrNoActiveTransaction
	}

	uow.store.mu.Lock()
	uow.store.state = uow.staged
	uow.store.mu.Unlock()

	uow.staged = nil
	return nil
}

// Rollback discards the staged state.
func (uow *unitOfWork) Rollback(_ context.Context) error {
	if uow.staged == nil {
		return ErrNoActiveTransaction
	}

	uow.staged = nil
	return nil
}

// guarded runs fn over the right state with the right locking. Outside a
// transaction the store lock covers the single operation; inside one the
// staged clone is private and needs no lock.
func (uow *unitOfWork) guarded(write bool, fn func(st *state) error) error {
	if uow.staged != nil {
		return fn(uow.staged)
	}

	if write {
		uow.store.mu.Lock()
		defer uow.store.mu.Unlock()
	} else {
		uow.store.mu.RLock()
		defer uow.store.mu.RUnlock()
	}
	return fn(uow.store.state)
}

// OrderRepository returns the order repository view of this unit of work.
func (uow *unitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

// TaskRepository returns the baking task repository view of this unit of work.
func (uow *unitOfWork) TaskRepository() ports.TaskRepository {
	return &taskRepository{uow: uow}
}

// ProductionLogRepository returns the ledger view of this unit of work.
func (uow *unitOfWork) ProductionLogRepository() ports.ProductionLogRepository {
	return &productionLogRepository{uow: uow}
}

// InventoryRepository returns the stock view of this unit of work.
func (uow *unitOfWork) InventoryRepository() ports.InventoryRepository {
	return &inventoryRepository{uow: uow}
}

// TripRepository returns the trip repository view of this unit of work.
func (uow *unitOfWork) TripRepository() ports.TripRepository {
	return &tripRepository{uow: uow}
}
