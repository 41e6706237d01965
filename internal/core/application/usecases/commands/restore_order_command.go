package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrRestoreOrderCommandIsNotConstructed = errors.New(
	"RestoreOrderCommand must be created via NewRestoreOrderCommand constructor",
)

// RestoreOrderCommand brings an archived order back to the status it was
// archived from. The target status is read from the order's own log; when the
// log does not record the archiving transition the order returns to finished.
type RestoreOrderCommand struct { //nolint:recvcheck //using for validation
	orderCode   kernel.OrderCode
	actor       string
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewRestoreOrderCommand creates a restore-from-archive command.
func NewRestoreOrderCommand(
	orderCode kernel.OrderCode,
	actor string,
	requestedAt time.Time,
) (RestoreOrderCommand, error) {
	cmd := RestoreOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setActor(actor),
		cmd.setRequestedAt(requestedAt),
	); err != nil {
		return RestoreOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RestoreOrderCommand) Validate() error {
	return c.guard.Validate(ErrRestoreOrderCommandIsNotConstructed)
}

// OrderCode returns the shop-assigned code of the order.
func (c RestoreOrderCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

// Actor returns who restored the order.
func (c RestoreOrderCommand) Actor() string {
	return c.actor
}

// RequestedAt returns when the order was restored.
func (c RestoreOrderCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *RestoreOrderCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}

func (c *RestoreOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *RestoreOrderCommand) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.requestedAt = requestedAt
	return nil
}
