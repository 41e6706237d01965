package ports

import (
	"context"
	"time"

	"bakeflow/internal/core/domain/model/production"
)

// ProductionLogRepository defines the persistence contract for the immutable
// production ledger. Entries are append-only; there is no update or delete.
type ProductionLogRepository interface {
	// Append persists a new ledger entry.
	Append(ctx context.Context, entry *production.LogEntry) error

	// GetAll retrieves ledger entries, newest first. A non-zero from/to pair
	// restricts the result to runs completed inside the window.
	GetAll(ctx context.Context, from, to time.Time) ([]*production.LogEntry, error)
}
