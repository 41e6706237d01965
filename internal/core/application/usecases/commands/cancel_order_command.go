package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order from any non-terminal status.
// The following aggregation run will shrink or cancel the baking task the
// order contributed to.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderCode   kernel.OrderCode
	actor       string
	note        string
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation command.
func NewCancelOrderCommand(
	orderCode kernel.OrderCode,
	actor, note string,
	requestedAt time.Time,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setActor(actor),
		cmd.setRequestedAt(requestedAt),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderCode returns the shop-assigned code of the order.
func (c CancelOrderCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

// Actor returns who cancelled the order.
func (c CancelOrderCommand) Actor() string {
	return c.actor
}

// Note returns the optional cancellation note.
func (c CancelOrderCommand) Note() string {
	return c.note
}

// RequestedAt returns when the order was cancelled.
func (c CancelOrderCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *CancelOrderCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}

func (c *CancelOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *CancelOrderCommand) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.requestedAt = requestedAt
	return nil
}
