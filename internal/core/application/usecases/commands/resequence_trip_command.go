package commands

import (
	"errors"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrResequenceTripCommandIsNotConstructed = errors.New(
	"ResequenceTripCommand must be created via NewResequenceTripCommand constructor",
)

// ResequenceTripCommand replaces a trip's visit sequence wholesale. The map
// is keyed by order code string and must cover exactly the trip's current
// membership.
type ResequenceTripCommand struct { //nolint:recvcheck //using for validation
	tripID   kernel.UUID
	sequence map[string]int

	guard guard.ConstructorGuard
}

// NewResequenceTripCommand creates a resequence command.
func NewResequenceTripCommand(tripID kernel.UUID, sequence map[string]int) (ResequenceTripCommand, error) {
	cmd := ResequenceTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setSequence(sequence),
	); err != nil {
		return ResequenceTripCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResequenceTripCommand) Validate() error {
	return c.guard.Validate(ErrResequenceTripCommandIsNotConstructed)
}

// TripID returns the trip to resequence.
func (c ResequenceTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// Sequence returns the replacement visit sequence.
func (c ResequenceTripCommand) Sequence() map[string]int {
	return c.sequence
}

func (c *ResequenceTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *ResequenceTripCommand) setSequence(sequence map[string]int) error {
	if len(sequence) == 0 {
		return errs.NewValueIsRequiredError("sequence")
	}

	c.sequence = sequence
	return nil
}
