package memory

import (
	"time"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/production"
	"bakeflow/internal/core/domain/model/trip"
)

// cloneOrder rebuilds an order through its restore constructor so the copy
// shares no state with the original. The stored log replaces whatever log
// the source aggregate carries.
func cloneOrder(src *order.Order, logs []order.LogEvent) (*order.Order, error) {
	return order.RestoreOrder(
		src.Code(),
		src.CustomerName(),
		src.Spec(),
		src.DeliveryDate(),
		src.Status(),
		src.KitchenStatus(),
		copyUUIDPtr(src.TripID()),
		copyIntPtr(src.TripSequence()),
		src.RevisionCount(),
		src.Revisions(),
		append([]order.LogEvent(nil), logs...),
		src.Prints(),
		src.Assignments(),
		src.ApprovedBy(),
		copyTimePtr(src.ApprovalDate()),
		copyTimePtr(src.ArchivedDate()),
	)
}

func cloneTask(src *bakingtask.Task) (*bakingtask.Task, error) {
	return bakingtask.RestoreTask(
		src.ID(),
		src.Key(),
		src.Quantity(),
		src.QuantityCompleted(),
		src.Status(),
		src.DueDate(),
		src.OrderCodes(),
		src.IsManual(),
		src.IsPriority(),
		src.CancellationReason(),
	)
}

func cloneTrip(src *trip.Trip) (*trip.Trip, error) {
	return trip.RestoreTrip(
		src.ID(),
		src.Name(),
		src.DriverType(),
		src.DriverName(),
		src.VehicleInfo(),
		src.Date(),
		src.Status(),
		src.Members(),
		src.Sequence(),
	)
}

func cloneLogEntry(src *production.LogEntry) (*production.LogEntry, error) {
	return production.RestoreLogEntry(
		src.ID(),
		src.Key(),
		src.Quantity(),
		src.CompletedAt(),
		copyUUIDPtr(src.TaskID()),
		src.Cancelled(),
		src.CancellationReason(),
		src.Baker(),
		src.Notes(),
		src.QualityChecks(),
	)
}

func cloneInventoryItem(src *production.InventoryItem) (*production.InventoryItem, error) {
	return production.RestoreInventoryItem(src.Key(), src.Quantity())
}

func copyUUIDPtr(src *kernel.UUID) *kernel.UUID {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

func copyIntPtr(src *int) *int {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

func copyTimePtr(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}
