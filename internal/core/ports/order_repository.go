package ports

import (
	"context"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by their
// lifecycle state, plus the append-only order log.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its shop-assigned code.
	// Returns the complete order with its log, revisions, and assignments.
	Get(ctx context.Context, code kernel.OrderCode) (*order.Order, error)

	// GetAll retrieves every order, optionally filtered to non-terminal ones.
	GetAll(ctx context.Context, activeOnly bool) ([]*order.Order, error)

	// GetAllProductionRelevant retrieves the orders that currently contribute
	// to baking-task aggregation: in-queue orders plus in-kitchen orders
	// still waiting for the baker.
	GetAllProductionRelevant(ctx context.Context) ([]*order.Order, error)

	// GetAllByTrip retrieves the orders whose trip mirror points at the trip.
	GetAllByTrip(ctx context.Context, tripID kernel.UUID) ([]*order.Order, error)

	// AppendLog appends an event to the order's append-only log without
	// rewriting the rest of the aggregate. Existing entries are never
	// modified or removed.
	AppendLog(ctx context.Context, code kernel.OrderCode, event order.LogEvent) error

	// NextCode returns the next free order code for the given month and
	// year, starting a fresh sequence when the month has no orders yet.
	NextCode(ctx context.Context, month, year int) (kernel.OrderCode, error)
}
