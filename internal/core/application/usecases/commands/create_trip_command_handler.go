package commands

import (
	"context"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/trip"
)

// CreateTripCommandHandler creates trips and returns the new trip id.
type CreateTripCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewCreateTripCommandHandler creates a handler for trip creation.
func NewCreateTripCommandHandler(uowFactory TripUoWFactory) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the trip creation command.
func (h *CreateTripCommandHandler) Handle(ctx context.Context, cmd CreateTripCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	aggregate, err := trip.NewTrip(
		kernel.NewUUID(),
		cmd.Name(),
		cmd.DriverType(),
		cmd.DriverName(),
		cmd.VehicleInfo(),
		cmd.Date(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TripRepository().Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return aggregate.ID(), nil
}
