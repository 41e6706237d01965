package commands

import (
	"context"
)

// AddOrderToTripCommandHandler adds orders to trips and keeps the order-side
// mirror in sync. The trip side is written first; both writes share one
// transaction where the gateway supports it, and repair_trip_links covers the
// torn case where it does not.
type AddOrderToTripCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewAddOrderToTripCommandHandler creates a handler for trip membership additions.
func NewAddOrderToTripCommandHandler(uowFactory TripUoWFactory) AddOrderToTripCommandHandler {
	return AddOrderToTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add-to-trip command.
func (h *AddOrderToTripCommandHandler) Handle(ctx context.Context, cmd AddOrderToTripCommand) error {
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

	if err = aggregate.AddOrder(cmd.OrderCode(), cmd.Sequence()); err != nil {
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

	seq, _ := aggregate.SequenceOf(cmd.OrderCode())
	if err = member.AssignToTrip(aggregate.ID(), seq); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, member); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
