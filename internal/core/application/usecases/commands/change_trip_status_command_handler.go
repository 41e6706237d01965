package commands

import (
	"context"
)

// ChangeTripStatusCommandHandler moves trips along their lifecycle. Trip
// status changes never touch the member orders; their delivery statuses are
// driven separately through the order state machine.
type ChangeTripStatusCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewChangeTripStatusCommandHandler creates a handler for trip status moves.
func NewChangeTripStatusCommandHandler(uowFactory TripUoWFactory) ChangeTripStatusCommandHandler {
	return ChangeTripStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the trip status-change command.
func (h *ChangeTripStatusCommandHandler) Handle(ctx context.Context, cmd ChangeTripStatusCommand) error {
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

	if err = aggregate.ChangeStatus(cmd.NewStatus()); err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
