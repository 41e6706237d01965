package commands

import (
	"context"

	"bakeflow/internal/core/domain/model/trip"
)

// DeleteTripCommandHandler deletes empty trips.
type DeleteTripCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewDeleteTripCommandHandler creates a handler for trip deletion.
func NewDeleteTripCommandHandler(uowFactory TripUoWFactory) DeleteTripCommandHandler {
	return DeleteTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the trip deletion command.
// Returns trip.ErrTripNotEmpty when member orders are still assigned.
func (h *DeleteTripCommandHandler) Handle(ctx context.Context, cmd DeleteTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tripRepo := uow.TripRepository()
	aggregate, err := tripRepo.Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	if !aggregate.IsEmpty() {
		return trip.ErrTripNotEmpty
	}

	if err = tripRepo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
