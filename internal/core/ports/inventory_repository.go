package ports

import (
	"context"

	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/production"
)

// InventoryRepository defines the persistence contract for the running cake
// inventory, keyed by spec triple.
type InventoryRepository interface {
	// Upsert persists the stock record, inserting it on first write.
	Upsert(ctx context.Context, item *production.InventoryItem) error

	// Get retrieves the stock record for one spec triple.
	Get(ctx context.Context, key order.SpecKey) (*production.InventoryItem, error)

	// GetAll retrieves every stock record with a non-zero history.
	GetAll(ctx context.Context) ([]*production.InventoryItem, error)
}
