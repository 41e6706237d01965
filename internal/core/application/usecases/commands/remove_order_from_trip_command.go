package commands

import (
	"errors"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/guard"
)

var ErrRemoveOrderFromTripCommandIsNotConstructed = errors.New(
	"RemoveOrderFromTripCommand must be created via NewRemoveOrderFromTripCommand constructor",
)

// RemoveOrderFromTripCommand removes an order from a trip and clears the
// order's mirror.
type RemoveOrderFromTripCommand struct { //nolint:recvcheck //using for validation
	tripID    kernel.UUID
	orderCode kernel.OrderCode

	guard guard.ConstructorGuard
}

// NewRemoveOrderFromTripCommand creates a remove-from-trip command.
func NewRemoveOrderFromTripCommand(
	tripID kernel.UUID,
	orderCode kernel.OrderCode,
) (RemoveOrderFromTripCommand, error) {
	cmd := RemoveOrderFromTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setOrderCode(orderCode),
	); err != nil {
		return RemoveOrderFromTripCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveOrderFromTripCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderFromTripCommandIsNotConstructed)
}

// TripID returns the trip to shrink.
func (c RemoveOrderFromTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// OrderCode returns the order to remove.
func (c RemoveOrderFromTripCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

func (c *RemoveOrderFromTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *RemoveOrderFromTripCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}
