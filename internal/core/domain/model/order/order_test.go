package order_test

import (
	"testing"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCode(t *testing.T, s string) kernel.OrderCode {
	t.Helper()
	code, err := kernel.OrderCodeFromString(s)
	require.NoError(t, err)
	return code
}

func mustSpec(t *testing.T) order.CakeSpec {
	t.Helper()
	spec, err := order.NewCakeSpec("Round", "16CM", "Vanilla", nil)
	require.NoError(t, err)
	return spec
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		mustCode(t, "05-25-001"),
		"Alice",
		mustSpec(t),
		time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

// advanceTo walks the order along the happy path until it reaches target.
func advanceTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	now := time.Now()
	path := []order.Status{
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
	for _, next := range path {
		if o.Status() == target {
			return
		}
		switch next {
		case order.PendingApproval:
			_, err := o.SubmitForApproval([]string{"cake.jpg"}, "staff", now)
			require.NoError(t, err)
		case order.ReadyToDeliver:
			_, err := o.Approve("mgr1", now)
			require.NoError(t, err)
		case order.Archived:
			_, err := o.Archive("staff", now)
			require.NoError(t, err)
		default:
			_, err := o.ChangeStatus(next, "staff", "", now)
			require.NoError(t, err)
		}
	}
	require.Equal(t, target, o.Status())
}

func TestNewOrder(t *testing.T) {
	t.Run("creates incomplete order", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Incomplete, o.Status())
		assert.Equal(t, order.KitchenStatusNone, o.KitchenStatus())
		assert.Equal(t, "05-25-001", o.Code().String())
		assert.Zero(t, o.RevisionCount())
		assert.Empty(t, o.Logs())
		assert.Nil(t, o.TripID())
		assert.Nil(t, o.TripSequence())
	})

	t.Run("rejects missing customer name", func(t *testing.T) {
		_, err := order.NewOrder(mustCode(t, "05-25-001"), "", mustSpec(t), time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects zero delivery date", func(t *testing.T) {
		_, err := order.NewOrder(mustCode(t, "05-25-001"), "Alice", mustSpec(t), time.Time{})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unconstructed spec", func(t *testing.T) {
		_, err := order.NewOrder(mustCode(t, "05-25-001"), "Alice", order.CakeSpec{}, time.Now())

		require.Error(t, err)
	})
}

func TestCakeSpec_Validate(t *testing.T) {
	t.Run("constructed spec is valid", func(t *testing.T) {
		require.NoError(t, mustSpec(t).Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		require.ErrorIs(t, order.CakeSpec{}.Validate(), order.ErrCakeSpecIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, newTestOrder(t).Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	now := time.Date(2025, time.May, 14, 10, 0, 0, 0, time.UTC)

	t.Run("valid transition appends status-change log", func(t *testing.T) {
		o := newTestOrder(t)

		event, err := o.ChangeStatus(order.InQueue, "staff", "confirmed", now)

		require.NoError(t, err)
		assert.Equal(t, order.InQueue, o.Status())
		assert.Equal(t, order.LogEventStatusChange, event.Type)
		assert.Equal(t, order.Incomplete, event.PreviousStatus)
		assert.Equal(t, order.InQueue, event.NewStatus)
		assert.Equal(t, "staff", event.Actor)
		assert.Equal(t, now, event.Timestamp)
		require.Len(t, o.Logs(), 1)
		assert.Equal(t, event, o.Logs()[0])
	})

	t.Run("invalid transition leaves order untouched", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.ChangeStatus(order.Finished, "staff", "", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Incomplete, o.Status())
		assert.Empty(t, o.Logs())
	})

	t.Run("entering the kitchen initializes kitchen status", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.InKitchen)

		assert.Equal(t, order.WaitingBaker, o.KitchenStatus())
	})

	t.Run("leaving the kitchen clears kitchen status", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.WaitingPhoto)

		assert.Equal(t, order.KitchenStatusNone, o.KitchenStatus())
	})
}

func TestOrder_ChangeKitchenStatus(t *testing.T) {
	t.Run("moves through stations while in kitchen", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.InKitchen)

		for _, ks := range []order.KitchenStatus{
			order.WaitingCrumbcoat,
			order.WaitingCover,
			order.Decorating,
			order.DoneWaitingApproval,
		} {
			require.NoError(t, o.ChangeKitchenStatus(ks))
			assert.Equal(t, ks, o.KitchenStatus())
		}
	})

	t.Run("rejected outside the kitchen", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeKitchenStatus(order.Decorating)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_ApprovalLoop(t *testing.T) {
	now := time.Date(2025, time.May, 14, 10, 0, 0, 0, time.UTC)

	t.Run("full revision scenario", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.WaitingPhoto)

		// Submit, get a revision request, resubmit, approve.
		_, err := o.SubmitForApproval([]string{"front.jpg"}, "staff", now)
		require.NoError(t, err)
		assert.Equal(t, order.PendingApproval, o.Status())

		_, err = o.RequestRevision("blur", []string{"ref.jpg"}, "mgr1", now)
		require.NoError(t, err)
		assert.Equal(t, order.NeedsRevision, o.Status())
		assert.Equal(t, 1, o.RevisionCount())
		require.Len(t, o.Revisions(), 1)
		assert.Equal(t, "blur", o.Revisions()[0].Notes)
		assert.Equal(t, "mgr1", o.Revisions()[0].RequestedBy)

		_, err = o.SubmitForApproval([]string{"front-v2.jpg"}, "staff", now)
		require.NoError(t, err)
		assert.Equal(t, order.PendingApproval, o.Status())

		_, err = o.Approve("mgr1", now)
		require.NoError(t, err)
		assert.Equal(t, order.ReadyToDeliver, o.Status())
		assert.Equal(t, "mgr1", o.ApprovedBy())
		require.NotNil(t, o.ApprovalDate())
		assert.Equal(t, now, *o.ApprovalDate())
	})

	t.Run("submit requires waiting-photo or needs-revision", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.SubmitForApproval([]string{"cake.jpg"}, "staff", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("submit requires photos", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.WaitingPhoto)

		_, err := o.SubmitForApproval(nil, "staff", now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("approve requires pending-approval", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.Approve("mgr1", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("revision requires pending-approval", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.RequestRevision("blur", nil, "mgr1", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Zero(t, o.RevisionCount())
	})
}

func TestOrder_ArchiveAndRestore(t *testing.T) {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

	t.Run("archive requires finished", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.Archive("staff", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("restore returns to pre-archive status", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.Archived)
		require.NotNil(t, o.ArchivedDate())

		event, err := o.RestoreFromArchive("staff", now)

		require.NoError(t, err)
		assert.Equal(t, order.Finished, o.Status())
		assert.Equal(t, order.Archived, event.PreviousStatus)
		assert.Nil(t, o.ArchivedDate())
	})

	t.Run("restore defaults to finished without qualifying log", func(t *testing.T) {
		// Reconstructed archived order with an empty log: the fallback target
		// is finished by design.
		o, err := order.RestoreOrder(
			mustCode(t, "05-25-002"), "Bob", mustSpec(t), now,
			order.Archived, order.KitchenStatusNone,
			nil, nil, 0, nil, nil, nil, nil, "", nil, &now,
		)
		require.NoError(t, err)

		_, err = o.RestoreFromArchive("staff", now)

		require.NoError(t, err)
		assert.Equal(t, order.Finished, o.Status())
	})

	t.Run("restore requires archived", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.RestoreFromArchive("staff", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	now := time.Now()

	t.Run("cancel from active status", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.InKitchen)

		event, err := o.Cancel("mgr1", "customer cancelled", now)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.InKitchen, event.PreviousStatus)
	})

	t.Run("cancel from terminal status is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Cancel("mgr1", "", now)
		require.NoError(t, err)

		_, err = o.Cancel("mgr1", "again", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	now := time.Now()

	preliminary := func(t *testing.T) order.DeliveryAssignment {
		a, err := order.NewDeliveryAssignment(order.DriverOne, "", "dispatch", "van-1", true, now)
		require.NoError(t, err)
		return a
	}

	t.Run("preliminary assignment during approval flow", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.PendingApproval)

		require.NoError(t, o.AssignDriver(preliminary(t)))
		require.NotNil(t, o.CurrentAssignment())
		assert.True(t, o.CurrentAssignment().IsPreliminary)
	})

	t.Run("final assignment requires ready-to-deliver", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.PendingApproval)

		final, err := order.NewDeliveryAssignment(order.DriverTwo, "", "dispatch", "", false, now)
		require.NoError(t, err)

		require.ErrorIs(t, o.AssignDriver(final), order.ErrInvalidTransition)

		_, err = o.Approve("mgr1", now)
		require.NoError(t, err)
		require.NoError(t, o.AssignDriver(final))
	})

	t.Run("current assignment is the latest", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.ReadyToDeliver)

		first, _ := order.NewDeliveryAssignment(order.DriverOne, "", "dispatch", "", false, now)
		second, _ := order.NewDeliveryAssignment(order.ThirdPartyDriver, "Ivan", "dispatch", "bike", false, now)

		require.NoError(t, o.AssignDriver(first))
		require.NoError(t, o.AssignDriver(second))

		assert.Len(t, o.Assignments(), 2)
		assert.Equal(t, order.ThirdPartyDriver, o.CurrentAssignment().DriverType)
		assert.Equal(t, "Ivan", o.CurrentAssignment().DriverName)
	})

	t.Run("3rd-party assignment requires driver name", func(t *testing.T) {
		_, err := order.NewDeliveryAssignment(order.ThirdPartyDriver, "", "dispatch", "", true, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_TripMirror(t *testing.T) {
	t.Run("assign and remove", func(t *testing.T) {
		o := newTestOrder(t)
		tripID := kernel.NewUUID()

		require.NoError(t, o.AssignToTrip(tripID, 2))
		require.NotNil(t, o.TripID())
		assert.True(t, o.TripID().IsEqual(tripID))
		require.NotNil(t, o.TripSequence())
		assert.Equal(t, 2, *o.TripSequence())

		require.NoError(t, o.RemoveFromTrip())
		assert.Nil(t, o.TripID())
		assert.Nil(t, o.TripSequence())
	})

	t.Run("remove without membership fails", func(t *testing.T) {
		o := newTestOrder(t)

		require.ErrorIs(t, o.RemoveFromTrip(), order.ErrNotAssignedToTrip)
	})

	t.Run("sequence must be positive", func(t *testing.T) {
		o := newTestOrder(t)

		require.Error(t, o.AssignToTrip(kernel.NewUUID(), 0))
	})
}

func TestOrder_IsProductionRelevant(t *testing.T) {
	o := newTestOrder(t)
	assert.False(t, o.IsProductionRelevant(), "incomplete orders are not production relevant")

	advanceTo(t, o, order.InQueue)
	assert.True(t, o.IsProductionRelevant())

	advanceTo(t, o, order.InKitchen)
	assert.True(t, o.IsProductionRelevant(), "waiting-baker keeps the order relevant")

	require.NoError(t, o.ChangeKitchenStatus(order.WaitingCrumbcoat))
	assert.False(t, o.IsProductionRelevant(), "baked orders leave production relevance")
}

func TestOrder_RecordPrint(t *testing.T) {
	o := newTestOrder(t)
	now := time.Now()

	require.NoError(t, o.RecordPrint("kitchen-ticket", now))
	require.Error(t, o.RecordPrint("", now))

	require.Len(t, o.Prints(), 1)
	assert.Equal(t, "kitchen-ticket", o.Prints()[0].Template)
}
