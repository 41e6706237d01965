package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApproveOrderCommand records the customer's approval decision, moving the
// order from pending-approval to ready-to-deliver.
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderCode   kernel.OrderCode
	approver    string
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewApproveOrderCommand creates an approval command.
func NewApproveOrderCommand(
	orderCode kernel.OrderCode,
	approver string,
	requestedAt time.Time,
) (ApproveOrderCommand, error) {
	cmd := ApproveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setApprover(approver),
		cmd.setRequestedAt(requestedAt),
	); err != nil {
		return ApproveOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

// OrderCode returns the shop-assigned code of the order.
func (c ApproveOrderCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

// Approver returns who recorded the approval.
func (c ApproveOrderCommand) Approver() string {
	return c.approver
}

// RequestedAt returns when the approval was recorded.
func (c ApproveOrderCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *ApproveOrderCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}

func (c *ApproveOrderCommand) setApprover(approver string) error {
	if approver == "" {
		return errs.NewValueIsRequiredError("approver")
	}

	c.approver = approver
	return nil
}

func (c *ApproveOrderCommand) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.requestedAt = requestedAt
	return nil
}
