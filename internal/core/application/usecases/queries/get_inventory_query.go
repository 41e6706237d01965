package queries

import (
	"errors"

	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/guard"
)

var (
	ErrGetInventoryQueryIsNotConstructed = errors.New(
		"GetInventoryQuery must be created via NewGetInventoryQuery constructor",
	)
)

// GetInventoryQuery retrieves the current stock of finished cakes per
// (shape, size, flavor) combination. Counts only grow as production runs are
// recorded; consumption tracking is out of scope.
//
// Example:
//
//	query := NewGetInventoryQuery()
//	handler := NewGetInventoryQueryHandler(db)
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve inventory: %w", err)
//	}
type GetInventoryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetInventoryQuery creates a query to retrieve the full inventory.
// This is a parameterless query that fetches every stocked combination.
func NewGetInventoryQuery() GetInventoryQuery {
	return GetInventoryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetInventoryQueryIsNotConstructed if validation fails.
func (q GetInventoryQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryQueryIsNotConstructed)
}

// GetInventoryQueryResponse represents one stocked cake combination.
type GetInventoryQueryResponse struct {
	Key      order.SpecKey
	Quantity int
}
