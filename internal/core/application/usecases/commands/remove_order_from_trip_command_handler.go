package commands

import (
	"context"
	"errors"

	"bakeflow/internal/core/domain/model/order"
)

// RemoveOrderFromTripCommandHandler removes orders from trips. The trip side
// is written first, then the order mirror is cleared.
type RemoveOrderFromTripCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewRemoveOrderFromTripCommandHandler creates a handler for trip membership removals.
func NewRemoveOrderFromTripCommandHandler(uowFactory TripUoWFactory) RemoveOrderFromTripCommandHandler {
	return RemoveOrderFromTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the remove-from-trip command.
// A torn mirror (order already detached) does not fail the removal.
func (h *RemoveOrderFromTripCommandHandler) Handle(ctx context.Context, cmd RemoveOrderFromTripCommand) error {
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

	if err = aggregate.RemoveOrder(cmd.OrderCode()); err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	member, err := orderRepo.Get(ctx, cmd.OrderCode())
	if err != nil {
		return err
	}

	if err = member.RemoveFromTrip(); err != nil && !errors.Is(err, order.ErrNotAssignedToTrip) {
		return err
	}
	if err = orderRepo.Update(ctx, member); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
