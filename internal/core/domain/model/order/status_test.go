package order_test

import (
	"fmt"
	"testing"

	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Incomplete,
		order.InQueue,
		order.InKitchen,
		order.WaitingPhoto,
		order.PendingApproval,
		order.NeedsRevision,
		order.ReadyToDeliver,
		order.InDelivery,
		order.WaitingFeedback,
		order.Finished,
		order.Archived,
		order.Cancelled,
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate every defined status", func(t *testing.T) {
		for _, status := range allStatuses() {
			t.Run(fmt.Sprintf("should validate %s", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		err := order.StatusUnknown.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out-of-range status", func(t *testing.T) {
		err := order.Status(99).Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_String(t *testing.T) {
	tests := map[order.Status]string{
		order.StatusUnknown:   "unknown",
		order.Incomplete:      "incomplete",
		order.InQueue:         "in-queue",
		order.InKitchen:       "in-kitchen",
		order.WaitingPhoto:    "waiting-photo",
		order.PendingApproval: "pending-approval",
		order.NeedsRevision:   "needs-revision",
		order.ReadyToDeliver:  "ready-to-deliver",
		order.InDelivery:      "in-delivery",
		order.WaitingFeedback: "waiting-feedback",
		order.Finished:        "finished",
		order.Archived:        "archived",
		order.Cancelled:       "cancelled",
	}

	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}

	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round-trips every defined status", func(t *testing.T) {
		for _, status := range allStatuses() {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("baking")
		require.Error(t, err)

		_, err = order.StatusFromString("unknown")
		require.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("happy path follows the workflow", func(t *testing.T) {
		path := []order.Status{
			order.Incomplete,
			order.InQueue,
			order.InKitchen,
			order.WaitingPhoto,
			order.PendingApproval,
			order.ReadyToDeliver,
			order.InDelivery,
			order.WaitingFeedback,
			order.Finished,
			order.Archived,
		}
		for i := 0; i < len(path)-1; i++ {
			assert.True(t, path[i].CanTransitionTo(path[i+1]),
				"%s -> %s should be allowed", path[i], path[i+1])
		}
	})

	t.Run("approval loop", func(t *testing.T) {
		assert.True(t, order.PendingApproval.CanTransitionTo(order.NeedsRevision))
		assert.True(t, order.PendingApproval.CanTransitionTo(order.ReadyToDeliver))
		assert.True(t, order.NeedsRevision.CanTransitionTo(order.PendingApproval))
	})

	t.Run("no other transition is reachable from pending-approval", func(t *testing.T) {
		for _, target := range allStatuses() {
			if target == order.NeedsRevision || target == order.ReadyToDeliver || target == order.Cancelled {
				continue
			}
			assert.False(t, order.PendingApproval.CanTransitionTo(target),
				"pending-approval -> %s should not be allowed", target)
		}
	})

	t.Run("cancel is reachable from any non-terminal status", func(t *testing.T) {
		for _, status := range allStatuses() {
			if status.IsTerminal() {
				assert.False(t, status.CanTransitionTo(order.Cancelled), "%s should not cancel", status)
			} else {
				assert.True(t, status.CanTransitionTo(order.Cancelled), "%s should cancel", status)
			}
		}
	})

	t.Run("skipping workflow stages is rejected", func(t *testing.T) {
		assert.False(t, order.Incomplete.CanTransitionTo(order.InKitchen))
		assert.False(t, order.InQueue.CanTransitionTo(order.ReadyToDeliver))
		assert.False(t, order.WaitingPhoto.CanTransitionTo(order.ReadyToDeliver))
		assert.False(t, order.Cancelled.CanTransitionTo(order.InQueue))
		assert.False(t, order.Archived.CanTransitionTo(order.Finished))
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("valid transition returns new status", func(t *testing.T) {
		next, err := order.InQueue.TransitionTo(order.InKitchen)

		require.NoError(t, err)
		assert.Equal(t, order.InKitchen, next)
	})

	t.Run("invalid transition returns ErrInvalidTransition", func(t *testing.T) {
		_, err := order.InQueue.TransitionTo(order.Finished)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("unknown target is rejected", func(t *testing.T) {
		_, err := order.InQueue.TransitionTo(order.StatusUnknown)

		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Archived.IsTerminal())
	assert.False(t, order.Finished.IsTerminal())
	assert.False(t, order.Incomplete.IsTerminal())
}
