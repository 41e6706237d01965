package commands

import (
	"errors"
	"fmt"
	"time"

	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrCreateManualTaskCommandIsNotConstructed = errors.New(
	"CreateManualTaskCommand must be created via NewCreateManualTaskCommand constructor",
)

// CreateManualTaskCommand creates a baker-initiated baking task outside the
// aggregation flow, e.g. stock baking or a walk-in request.
type CreateManualTaskCommand struct { //nolint:recvcheck //using for validation
	key         order.SpecKey
	quantity    int
	dueDate     time.Time
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewCreateManualTaskCommand creates a manual task command.
func NewCreateManualTaskCommand(
	shape, size, flavor string,
	quantity int,
	dueDate, requestedAt time.Time,
) (CreateManualTaskCommand, error) {
	cmd := CreateManualTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKey(shape, size, flavor),
		cmd.setQuantity(quantity),
		cmd.setDates(dueDate, requestedAt),
	); err != nil {
		return CreateManualTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateManualTaskCommand) Validate() error {
	return c.guard.Validate(ErrCreateManualTaskCommandIsNotConstructed)
}

// Key returns the spec triple to bake.
func (c CreateManualTaskCommand) Key() order.SpecKey {
	return c.key
}

// Quantity returns the target cake count.
func (c CreateManualTaskCommand) Quantity() int {
	return c.quantity
}

// DueDate returns when the cakes are needed.
func (c CreateManualTaskCommand) DueDate() time.Time {
	return c.dueDate
}

// RequestedAt returns the creation instant; it supplies "today" for the
// priority flag.
func (c CreateManualTaskCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *CreateManualTaskCommand) setKey(shape, size, flavor string) error {
	if shape == "" || size == "" || flavor == "" {
		return errs.NewValueIsRequiredError("spec key")
	}

	c.key = order.SpecKey{Shape: shape, Size: size, Flavor: flavor}
	return nil
}

func (c *CreateManualTaskCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	c.quantity = quantity
	return nil
}

func (c *CreateManualTaskCommand) setDates(dueDate, requestedAt time.Time) error {
	if dueDate.IsZero() {
		return errs.NewValueIsRequiredError("due date")
	}
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.dueDate = dueDate
	c.requestedAt = requestedAt
	return nil
}
