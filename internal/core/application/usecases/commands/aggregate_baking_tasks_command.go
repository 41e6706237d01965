package commands

import (
	"errors"
	"time"

	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrAggregateBakingTasksCommandIsNotConstructed = errors.New(
	"AggregateBakingTasksCommand must be created via NewAggregateBakingTasksCommand constructor",
)

// AggregateBakingTasksCommand triggers one aggregation run: production-relevant
// orders are grouped by spec key and folded into the active baking tasks.
// Runs happen on explicit request; there is no background scheduler.
type AggregateBakingTasksCommand struct { //nolint:recvcheck //using for validation
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewAggregateBakingTasksCommand creates an aggregation run command.
// requestedAt supplies "today" for due-date priority flagging.
func NewAggregateBakingTasksCommand(requestedAt time.Time) (AggregateBakingTasksCommand, error) {
	if requestedAt.IsZero() {
		return AggregateBakingTasksCommand{}, errs.NewValueIsRequiredError("requested at")
	}

	return AggregateBakingTasksCommand{
		requestedAt: requestedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AggregateBakingTasksCommand) Validate() error {
	return c.guard.Validate(ErrAggregateBakingTasksCommandIsNotConstructed)
}

// RequestedAt returns the instant of the run.
func (c AggregateBakingTasksCommand) RequestedAt() time.Time {
	return c.requestedAt
}
