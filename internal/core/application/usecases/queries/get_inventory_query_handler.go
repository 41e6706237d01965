package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetInventoryQueryHandler retrieves finished-cake stock counts from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetInventoryQueryHandler struct {
	db *gorm.DB
}

// NewGetInventoryQueryHandler creates a handler for inventory queries.
// Requires a GORM database connection for query execution.
func NewGetInventoryQueryHandler(db *gorm.DB) GetInventoryQueryHandler {
	return GetInventoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the full inventory.
// Returns one entry per stocked (shape, size, flavor) combination, sorted
// by shape, then size, then flavor.
func (h GetInventoryQueryHandler) Handle(
	ctx context.Context,
	query GetInventoryQuery,
) ([]GetInventoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items := make([]GetInventoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			shape,
			size,
			flavor,
			quantity
		FROM inventory_items
		ORDER BY shape, size, flavor
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetInventoryQueryResponse

		err = rows.Scan(
			&item.Key.Shape,
			&item.Key.Size,
			&item.Key.Flavor,
			&item.Quantity,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
