package commands

import (
	"errors"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/guard"
)

var ErrRepairTripLinksCommandIsNotConstructed = errors.New(
	"RepairTripLinksCommand must be created via NewRepairTripLinksCommand constructor",
)

// RepairTripLinksCommand repairs drift between one trip's membership and the
// order-side mirrors. Used after a torn write on a gateway without
// transactions, or whenever an operator suspects inconsistency.
type RepairTripLinksCommand struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRepairTripLinksCommand creates a link repair command.
func NewRepairTripLinksCommand(tripID kernel.UUID) (RepairTripLinksCommand, error) {
	if err := tripID.Validate(); err != nil {
		return RepairTripLinksCommand{}, err
	}

	return RepairTripLinksCommand{
		tripID: tripID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RepairTripLinksCommand) Validate() error {
	return c.guard.Validate(ErrRepairTripLinksCommandIsNotConstructed)
}

// TripID returns the trip to reconcile.
func (c RepairTripLinksCommand) TripID() kernel.UUID {
	return c.tripID
}
