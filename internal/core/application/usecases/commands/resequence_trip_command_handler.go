package commands

import (
	"context"
)

// ResequenceTripCommandHandler replaces a trip's visit sequence and rewrites
// every member's mirror to the new positions.
type ResequenceTripCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewResequenceTripCommandHandler creates a handler for trip resequencing.
func NewResequenceTripCommandHandler(uowFactory TripUoWFactory) ResequenceTripCommandHandler {
	return ResequenceTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resequence command.
func (h *ResequenceTripCommandHandler) Handle(ctx context.Context, cmd ResequenceTripCommand) error {
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

	if err = aggregate.Resequence(cmd.Sequence()); err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, code := range aggregate.Members() {
		member, err := orderRepo.Get(ctx, code)
		if err != nil {
			return err
		}

		seq, _ := aggregate.SequenceOf(code)
		if err = member.AssignToTrip(aggregate.ID(), seq); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, member); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
