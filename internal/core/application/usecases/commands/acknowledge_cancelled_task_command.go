package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrAcknowledgeCancelledTaskCommandIsNotConstructed = errors.New(
	"AcknowledgeCancelledTaskCommand must be created via NewAcknowledgeCancelledTaskCommand constructor",
)

// AcknowledgeCancelledTaskCommand lets a baker confirm they have seen a task
// cancellation. Acknowledging writes a zero-quantity cancellation entry to
// the production ledger so the kitchen's audit trail records that the work
// was called off, not just silently dropped.
type AcknowledgeCancelledTaskCommand struct { //nolint:recvcheck //using for validation
	taskID         kernel.UUID
	notes          string
	acknowledgedAt time.Time

	guard guard.ConstructorGuard
}

// NewAcknowledgeCancelledTaskCommand creates an acknowledgement command.
func NewAcknowledgeCancelledTaskCommand(
	taskID kernel.UUID,
	notes string,
	acknowledgedAt time.Time,
) (AcknowledgeCancelledTaskCommand, error) {
	cmd := AcknowledgeCancelledTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setAcknowledgedAt(acknowledgedAt),
	); err != nil {
		return AcknowledgeCancelledTaskCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcknowledgeCancelledTaskCommand) Validate() error {
	return c.guard.Validate(ErrAcknowledgeCancelledTaskCommandIsNotConstructed)
}

// TaskID returns the id of the cancelled task.
func (c AcknowledgeCancelledTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Notes returns optional baker notes on the acknowledgement.
func (c AcknowledgeCancelledTaskCommand) Notes() string {
	return c.notes
}

// AcknowledgedAt returns when the cancellation was acknowledged.
func (c AcknowledgeCancelledTaskCommand) AcknowledgedAt() time.Time {
	return c.acknowledgedAt
}

func (c *AcknowledgeCancelledTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *AcknowledgeCancelledTaskCommand) setAcknowledgedAt(acknowledgedAt time.Time) error {
	if acknowledgedAt.IsZero() {
		return errs.NewValueIsRequiredError("acknowledged at")
	}

	c.acknowledgedAt = acknowledgedAt
	return nil
}
