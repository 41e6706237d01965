package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrNoStatusChangeRequested = errors.New("either a status or a kitchen status must be requested")
)

// ChangeOrderStatusCommand requests a lifecycle status move and/or a kitchen
// substate move for one order. Either part may be omitted but not both.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(code, order.InQueue,
//	    order.KitchenStatusNone, "admin", "confirmed by phone", time.Now())
//	if err != nil {
//	    return err
//	}
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderCode     kernel.OrderCode
	newStatus     order.Status
	kitchenStatus order.KitchenStatus
	actor         string
	note          string
	requestedAt   time.Time

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a status-change command.
// newStatus may be StatusUnknown (no lifecycle move) and kitchenStatus may be
// KitchenStatusNone (no substate move), but not both at once.
func NewChangeOrderStatusCommand(
	orderCode kernel.OrderCode,
	newStatus order.Status,
	kitchenStatus order.KitchenStatus,
	actor, note string,
	requestedAt time.Time,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setTargets(newStatus, kitchenStatus),
		cmd.setActor(actor),
		cmd.setRequestedAt(requestedAt),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderCode returns the shop-assigned code of the order to move.
func (c ChangeOrderStatusCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

// NewStatus returns the target lifecycle status, or StatusUnknown when only
// the kitchen substate moves.
func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// KitchenStatus returns the target kitchen substate, or KitchenStatusNone.
func (c ChangeOrderStatusCommand) KitchenStatus() order.KitchenStatus {
	return c.kitchenStatus
}

// Actor returns who requested the move.
func (c ChangeOrderStatusCommand) Actor() string {
	return c.actor
}

// Note returns the optional free-form note recorded with the move.
func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}

// RequestedAt returns when the move was requested.
func (c ChangeOrderStatusCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *ChangeOrderStatusCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}

func (c *ChangeOrderStatusCommand) setTargets(newStatus order.Status, kitchenStatus order.KitchenStatus) error {
	if newStatus == order.StatusUnknown && kitchenStatus == order.KitchenStatusNone {
		return ErrNoStatusChangeRequested
	}
	if newStatus != order.StatusUnknown {
		if err := newStatus.Validate(); err != nil {
			return err
		}
	}
	if kitchenStatus != order.KitchenStatusNone {
		if err := kitchenStatus.Validate(); err != nil {
			return err
		}
	}

	c.newStatus = newStatus
	c.kitchenStatus = kitchenStatus
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *ChangeOrderStatusCommand) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.requestedAt = requestedAt
	return nil
}
