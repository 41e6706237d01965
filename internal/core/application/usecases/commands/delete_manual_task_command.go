package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var (
	ErrDeleteManualTaskCommandIsNotConstructed = errors.New(
		"DeleteManualTaskCommand must be created via NewDeleteManualTaskCommand constructor",
	)

	// ErrTaskIsNotCancelled is returned when acknowledging a task that has
	// not been cancelled.
	ErrTaskIsNotCancelled = errors.New("task is not cancelled")
)

// DeleteManualTaskCommand removes a manual task from storage outright. An
// active task is cancelled on the way out, and a cancellation entry lands in
// the production ledger before the record is deleted. Aggregation-derived
// tasks cannot be deleted this way; they leave through acknowledgement.
type DeleteManualTaskCommand struct { //nolint:recvcheck //using for validation
	taskID      kernel.UUID
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewDeleteManualTaskCommand creates a manual task deletion command.
func NewDeleteManualTaskCommand(taskID kernel.UUID, requestedAt time.Time) (DeleteManualTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return DeleteManualTaskCommand{}, err
	}
	if requestedAt.IsZero() {
		return DeleteManualTaskCommand{}, errs.NewValueIsRequiredError("requestedAt")
	}

	return DeleteManualTaskCommand{
		taskID:      taskID,
		requestedAt: requestedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteManualTaskCommand) Validate() error {
	return c.guard.Validate(ErrDeleteManualTaskCommandIsNotConstructed)
}

// TaskID returns the id of the task to delete.
func (c DeleteManualTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// RequestedAt returns when deletion was requested; it timestamps the ledger
// entry.
func (c DeleteManualTaskCommand) RequestedAt() time.Time {
	return c.requestedAt
}
