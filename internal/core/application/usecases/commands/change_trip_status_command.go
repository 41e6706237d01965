package commands

import (
	"errors"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/trip"
	"bakeflow/internal/pkg/guard"
)

var ErrChangeTripStatusCommandIsNotConstructed = errors.New(
	"ChangeTripStatusCommand must be created via NewChangeTripStatusCommand constructor",
)

// ChangeTripStatusCommand moves a trip along its lifecycle.
type ChangeTripStatusCommand struct { //nolint:recvcheck //using for validation
	tripID    kernel.UUID
	newStatus trip.Status

	guard guard.ConstructorGuard
}

// NewChangeTripStatusCommand creates a trip status-change command.
func NewChangeTripStatusCommand(tripID kernel.UUID, newStatus trip.Status) (ChangeTripStatusCommand, error) {
	cmd := ChangeTripStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return ChangeTripStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeTripStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeTripStatusCommandIsNotConstructed)
}

// TripID returns the trip to move.
func (c ChangeTripStatusCommand) TripID() kernel.UUID {
	return c.tripID
}

// NewStatus returns the target status.
func (c ChangeTripStatusCommand) NewStatus() trip.Status {
	return c.newStatus
}

func (c *ChangeTripStatusCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *ChangeTripStatusCommand) setNewStatus(newStatus trip.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}
