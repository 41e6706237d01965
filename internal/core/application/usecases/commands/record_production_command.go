package commands

import (
	"errors"
	"fmt"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/production"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrRecordProductionCommandIsNotConstructed = errors.New(
	"RecordProductionCommand must be created via NewRecordProductionCommand constructor",
)

// RecordProductionCommand records a completed baking run. The run may be
// attached to a baking task (progressing and possibly completing it) or
// stand alone with its own spec triple. Either way, a ledger entry is
// appended and the inventory for the triple grows.
type RecordProductionCommand struct { //nolint:recvcheck //using for validation
	taskID        *kernel.UUID
	key           order.SpecKey
	quantity      int
	baker         string
	notes         string
	qualityChecks []production.QualityCheck
	completedAt   time.Time

	guard guard.ConstructorGuard
}

// NewRecordProductionCommand creates a production recording command.
// taskID may be nil for a standalone run; the spec triple is then required.
// When taskID is set, the triple is taken from the task and the fields here
// are ignored.
func NewRecordProductionCommand(
	taskID *kernel.UUID,
	shape, size, flavor string,
	quantity int,
	baker, notes string,
	qualityChecks []production.QualityCheck,
	completedAt time.Time,
) (RecordProductionCommand, error) {
	cmd := RecordProductionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTarget(taskID, shape, size, flavor),
		cmd.setQuantity(quantity),
		cmd.setBaker(baker),
		cmd.setCompletedAt(completedAt),
	); err != nil {
		return RecordProductionCommand{}, err
	}

	cmd.notes = notes
	cmd.qualityChecks = qualityChecks
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordProductionCommand) Validate() error {
	return c.guard.Validate(ErrRecordProductionCommandIsNotConstructed)
}

// TaskID returns the task the run progresses, or nil for a standalone run.
func (c RecordProductionCommand) TaskID() *kernel.UUID {
	return c.taskID
}

// Key returns the spec triple for a standalone run.
func (c RecordProductionCommand) Key() order.SpecKey {
	return c.key
}

// Quantity returns the produced cake count.
func (c RecordProductionCommand) Quantity() int {
	return c.quantity
}

// Baker returns who produced the run.
func (c RecordProductionCommand) Baker() string {
	return c.baker
}

// Notes returns free-form run notes.
func (c RecordProductionCommand) Notes() string {
	return c.notes
}

// QualityChecks returns the quality gate results captured with the run.
func (c RecordProductionCommand) QualityChecks() []production.QualityCheck {
	return c.qualityChecks
}

// CompletedAt returns when the run finished.
func (c RecordProductionCommand) CompletedAt() time.Time {
	return c.completedAt
}

func (c *RecordProductionCommand) setTarget(taskID *kernel.UUID, shape, size, flavor string) error {
	if taskID != nil {
		if err := taskID.Validate(); err != nil {
			return err
		}
		c.taskID = taskID
		return nil
	}

	if shape == "" || size == "" || flavor == "" {
		return errs.NewValueIsRequiredError("spec key for a standalone run")
	}

	c.key = order.SpecKey{Shape: shape, Size: size, Flavor: flavor}
	return nil
}

func (c *RecordProductionCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	c.quantity = quantity
	return nil
}

func (c *RecordProductionCommand) setBaker(baker string) error {
	if baker == "" {
		return errs.NewValueIsRequiredError("baker")
	}

	c.baker = baker
	return nil
}

func (c *RecordProductionCommand) setCompletedAt(completedAt time.Time) error {
	if completedAt.IsZero() {
		return errs.NewValueIsRequiredError("completed at")
	}

	c.completedAt = completedAt
	return nil
}
