// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/guard"
)

var (
	ErrGetActiveTasksQueryIsNotConstructed = errors.New(
		"GetActiveTasksQuery must be created via NewGetActiveTasksQuery constructor",
	)
)

// GetActiveTasksQuery retrieves the current kitchen workload: every baking
// task that is still pending or in progress. This is the read model behind
// the kitchen dashboard.
//
// Example:
//
//	query := NewGetActiveTasksQuery()
//	handler := NewGetActiveTasksQueryHandler(db)
//
//	tasks, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve active tasks: %w", err)
//	}
//
//	for _, task := range tasks {
//	    fmt.Printf("%s: %d of %d done\n", task.Key, task.QuantityCompleted, task.Quantity)
//	}
type GetActiveTasksQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveTasksQuery creates a query to retrieve active baking tasks.
// This is a parameterless query that fetches every pending and in-progress task.
func NewGetActiveTasksQuery() GetActiveTasksQuery {
	return GetActiveTasksQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveTasksQueryIsNotConstructed if validation fails.
func (q GetActiveTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveTasksQueryIsNotConstructed)
}

// GetActiveTasksQueryResponse represents one active baking task in the read
// model. OrderCodes is empty for manual tasks.
type GetActiveTasksQueryResponse struct {
	ID                kernel.UUID
	Key               order.SpecKey
	Quantity          int
	QuantityCompleted int
	Status            bakingtask.Status
	DueDate           time.Time
	OrderCodes        []kernel.OrderCode
	IsManual          bool
	IsPriority        bool
}
