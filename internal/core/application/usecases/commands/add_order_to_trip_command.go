package commands

import (
	"errors"
	"fmt"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrAddOrderToTripCommandIsNotConstructed = errors.New(
	"AddOrderToTripCommand must be created via NewAddOrderToTripCommand constructor",
)

// AddOrderToTripCommand adds an order to a trip, optionally at an explicit
// visit position. Without a position the order is appended.
type AddOrderToTripCommand struct { //nolint:recvcheck //using for validation
	tripID    kernel.UUID
	orderCode kernel.OrderCode
	sequence  *int

	guard guard.ConstructorGuard
}

// NewAddOrderToTripCommand creates an add-to-trip command.
// sequence may be nil; when given it must be positive.
func NewAddOrderToTripCommand(
	tripID kernel.UUID,
	orderCode kernel.OrderCode,
	sequence *int,
) (AddOrderToTripCommand, error) {
	cmd := AddOrderToTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setOrderCode(orderCode),
		cmd.setSequence(sequence),
	); err != nil {
		return AddOrderToTripCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderToTripCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderToTripCommandIsNotConstructed)
}

// TripID returns the trip to extend.
func (c AddOrderToTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// OrderCode returns the order to add.
func (c AddOrderToTripCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

// Sequence returns the requested visit position, or nil to append.
func (c AddOrderToTripCommand) Sequence() *int {
	return c.sequence
}

func (c *AddOrderToTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *AddOrderToTripCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}

func (c *AddOrderToTripCommand) setSequence(sequence *int) error {
	if sequence != nil && *sequence <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sequence",
			fmt.Errorf("%d is not greater than 0", *sequence),
		)
	}

	c.sequence = sequence
	return nil
}
