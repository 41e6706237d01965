package ports

import (
	"context"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/trip"
)

// TripRepository defines the persistence contract for trip aggregates.
type TripRepository interface {
	// Add persists a new trip aggregate to storage.
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update persists changes to an existing trip aggregate, including its
	// membership and sequence map.
	Update(ctx context.Context, aggregate *trip.Trip) error

	// Get retrieves a trip aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// GetAll retrieves trips, optionally restricted to one calendar date.
	// A zero date means no filter.
	GetAll(ctx context.Context, date time.Time) ([]*trip.Trip, error)

	// Delete removes a trip from storage. The application layer guarantees
	// the trip is empty before deletion.
	Delete(ctx context.Context, id kernel.UUID) error
}
