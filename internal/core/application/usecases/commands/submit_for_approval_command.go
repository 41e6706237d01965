package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrSubmitForApprovalCommandIsNotConstructed = errors.New(
	"SubmitForApprovalCommand must be created via NewSubmitForApprovalCommand constructor",
)

// SubmitForApprovalCommand submits finished-cake photos for customer
// approval, moving the order to pending-approval.
type SubmitForApprovalCommand struct { //nolint:recvcheck //using for validation
	orderCode   kernel.OrderCode
	photos      []string
	actor       string
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewSubmitForApprovalCommand creates a photo submission command.
// At least one photo reference is required.
func NewSubmitForApprovalCommand(
	orderCode kernel.OrderCode,
	photos []string,
	actor string,
	requestedAt time.Time,
) (SubmitForApprovalCommand, error) {
	cmd := SubmitForApprovalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setPhotos(photos),
		cmd.setActor(actor),
		cmd.setRequestedAt(requestedAt),
	); err != nil {
		return SubmitForApprovalCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitForApprovalCommand) Validate() error {
	return c.guard.Validate(ErrSubmitForApprovalCommandIsNotConstructed)
}

// OrderCode returns the shop-assigned code of the order.
func (c SubmitForApprovalCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

// Photos returns the submitted photo references.
func (c SubmitForApprovalCommand) Photos() []string {
	return c.photos
}

// Actor returns who submitted the photos.
func (c SubmitForApprovalCommand) Actor() string {
	return c.actor
}

// RequestedAt returns when the submission happened.
func (c SubmitForApprovalCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *SubmitForApprovalCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}

func (c *SubmitForApprovalCommand) setPhotos(photos []string) error {
	if len(photos) == 0 {
		return errs.NewValueIsRequiredError("photos")
	}

	c.photos = photos
	return nil
}

func (c *SubmitForApprovalCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *SubmitForApprovalCommand) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.requestedAt = requestedAt
	return nil
}
