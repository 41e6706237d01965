package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrArchiveOrderCommandIsNotConstructed = errors.New(
	"ArchiveOrderCommand must be created via NewArchiveOrderCommand constructor",
)

// ArchiveOrderCommand moves a finished order into the archive.
type ArchiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderCode   kernel.OrderCode
	actor       string
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewArchiveOrderCommand creates an archive command.
func NewArchiveOrderCommand(
	orderCode kernel.OrderCode,
	actor string,
	requestedAt time.Time,
) (ArchiveOrderCommand, error) {
	cmd := ArchiveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setActor(actor),
		cmd.setRequestedAt(requestedAt),
	); err != nil {
		return ArchiveOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrArchiveOrderCommandIsNotConstructed)
}

// OrderCode returns the shop-assigned code of the order.
func (c ArchiveOrderCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

// Actor returns who archived the order.
func (c ArchiveOrderCommand) Actor() string {
	return c.actor
}

// RequestedAt returns when the order was archived.
func (c ArchiveOrderCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *ArchiveOrderCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}

func (c *ArchiveOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *ArchiveOrderCommand) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.requestedAt = requestedAt
	return nil
}
