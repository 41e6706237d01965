package commands

import (
	"errors"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrCancelManualTaskCommandIsNotConstructed = errors.New(
	"CancelManualTaskCommand must be created via NewCancelManualTaskCommand constructor",
)

// CancelManualTaskCommand cancels a baker-initiated task with a reason.
// Aggregation-derived tasks cannot be cancelled this way; reconciliation
// owns their lifecycle.
type CancelManualTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID
	reason string

	guard guard.ConstructorGuard
}

// NewCancelManualTaskCommand creates a manual task cancellation command.
func NewCancelManualTaskCommand(taskID kernel.UUID, reason string) (CancelManualTaskCommand, error) {
	cmd := CancelManualTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setReason(reason),
	); err != nil {
		return CancelManualTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelManualTaskCommand) Validate() error {
	return c.guard.Validate(ErrCancelManualTaskCommandIsNotConstructed)
}

// TaskID returns the id of the task to cancel.
func (c CancelManualTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Reason returns why the task is cancelled.
func (c CancelManualTaskCommand) Reason() string {
	return c.reason
}

func (c *CancelManualTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *CancelManualTaskCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	c.reason = reason
	return nil
}
