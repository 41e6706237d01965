package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrRequestRevisionCommandIsNotConstructed = errors.New(
	"RequestRevisionCommand must be created via NewRequestRevisionCommand constructor",
)

// RequestRevisionCommand sends an order back to the kitchen for rework,
// moving it from pending-approval to needs-revision with the customer's
// notes. Revisions are unlimited; each request grows the revision history.
type RequestRevisionCommand struct { //nolint:recvcheck //using for validation
	orderCode   kernel.OrderCode
	notes       string
	photos      []string
	requestedBy string
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewRequestRevisionCommand creates a revision request command.
// Notes describing the rework are required; photos are optional context.
func NewRequestRevisionCommand(
	orderCode kernel.OrderCode,
	notes string,
	photos []string,
	requestedBy string,
	requestedAt time.Time,
) (RequestRevisionCommand, error) {
	cmd := RequestRevisionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setNotes(notes),
		cmd.setRequestedBy(requestedBy),
		cmd.setRequestedAt(requestedAt),
	); err != nil {
		return RequestRevisionCommand{}, err
	}

	cmd.photos = photos
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestRevisionCommand) Validate() error {
	return c.guard.Validate(ErrRequestRevisionCommandIsNotConstructed)
}

// OrderCode returns the shop-assigned code of the order.
func (c RequestRevisionCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

// Notes returns the rework description.
func (c RequestRevisionCommand) Notes() string {
	return c.notes
}

// Photos returns optional photo references attached to the request.
func (c RequestRevisionCommand) Photos() []string {
	return c.photos
}

// RequestedBy returns who asked for the revision.
func (c RequestRevisionCommand) RequestedBy() string {
	return c.requestedBy
}

// RequestedAt returns when the revision was requested.
func (c RequestRevisionCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *RequestRevisionCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}

func (c *RequestRevisionCommand) setNotes(notes string) error {
	if notes == "" {
		return errs.NewValueIsRequiredError("revision notes")
	}

	c.notes = notes
	return nil
}

func (c *RequestRevisionCommand) setRequestedBy(requestedBy string) error {
	if requestedBy == "" {
		return errs.NewValueIsRequiredError("requested by")
	}

	c.requestedBy = requestedBy
	return nil
}

func (c *RequestRevisionCommand) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.requestedAt = requestedAt
	return nil
}
