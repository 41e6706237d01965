package ports

import (
	"context"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
)

// TaskRepository defines the persistence contract for baking-task aggregates.
type TaskRepository interface {
	// Add persists a new task aggregate to storage.
	Add(ctx context.Context, aggregate *bakingtask.Task) error

	// Update persists changes to an existing task aggregate.
	Update(ctx context.Context, aggregate *bakingtask.Task) error

	// Get retrieves a task aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*bakingtask.Task, error)

	// GetAllActive retrieves every pending or in-progress task.
	// This is the working set for both the kitchen board and aggregation.
	GetAllActive(ctx context.Context) ([]*bakingtask.Task, error)

	// GetAll retrieves every task regardless of status.
	GetAll(ctx context.Context) ([]*bakingtask.Task, error)

	// Delete removes a task from storage: manual tasks deleted outright, and
	// cancelled tasks once a baker acknowledges the cancellation. The
	// production ledger keeps the history.
	Delete(ctx context.Context, id kernel.UUID) error
}
