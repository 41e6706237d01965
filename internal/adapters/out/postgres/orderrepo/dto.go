// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The shop-assigned code is the primary key. Tiers, revisions, prints, and
// driver assignments are append-only collections stored as JSON documents;
// the order log lives in its own table (see OrderLogEntryDTO) so entries can
// be appended without rewriting the aggregate row.
type OrderDTO struct {
	Code          string `gorm:"primaryKey;size:9"`
	CustomerName  string
	Shape         string
	Size          string
	Flavor        string
	Tiers         []byte `gorm:"type:jsonb"`
	DeliveryDate  time.Time
	Status        string `gorm:"index"`
	KitchenStatus string
	TripID        *uuid.UUID `gorm:"type:uuid;index"`
	TripSequence  *int
	RevisionCount int
	Revisions     []byte `gorm:"type:jsonb"`
	Prints        []byte `gorm:"type:jsonb"`
	Assignments   []byte `gorm:"type:jsonb"`
	ApprovedBy    string
	ApprovalDate  *time.Time
	ArchivedDate  *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLogEntryDTO represents one row of an order's append-only log.
// Rows are only ever inserted.
type OrderLogEntryDTO struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	OrderCode      string `gorm:"index;size:9"`
	EventType      string
	PreviousStatus string
	NewStatus      string
	Actor          string
	Note           string
	OccurredAt     time.Time
}

// TableName specifies the database table name for order log entries.
func (OrderLogEntryDTO) TableName() string {
	return "order_log_entries"
}

type tierJSON struct {
	Number int    `json:"number"`
	Detail string `json:"detail"`
}

type revisionJSON struct {
	Notes       string    `json:"notes"`
	Photos      []string  `json:"photos"`
	RequestedBy string    `json:"requestedBy"`
	RequestedAt time.Time `json:"requestedAt"`
}

type printJSON struct {
	Template  string    `json:"template"`
	PrintedAt time.Time `json:"printedAt"`
}

type assignmentJSON struct {
	DriverType    string    `json:"driverType"`
	DriverName    string    `json:"driverName"`
	AssignedBy    string    `json:"assignedBy"`
	VehicleInfo   string    `json:"vehicleInfo"`
	IsPreliminary bool      `json:"isPreliminary"`
	AssignedAt    time.Time `json:"assignedAt"`
}

// fromDomain converts an order domain aggregate to its database representation.
// The order log is not part of the row; it is persisted separately through
// AppendLog.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	tiers := make([]tierJSON, 0, len(aggregate.Spec().Tiers()))
	for _, t := range aggregate.Spec().Tiers() {
		tiers = append(tiers, tierJSON{Number: t.Number, Detail: t.Detail})
	}

	revisions := make([]revisionJSON, 0, len(aggregate.Revisions()))
	for _, r := range aggregate.Revisions() {
		revisions = append(revisions, revisionJSON{
			Notes:       r.Notes,
			Photos:      r.Photos,
			RequestedBy: r.RequestedBy,
			RequestedAt: r.RequestedAt,
		})
	}

	prints := make([]printJSON, 0, len(aggregate.Prints()))
	for _, p := range aggregate.Prints() {
		prints = append(prints, printJSON{Template: p.Template, PrintedAt: p.PrintedAt})
	}

	assignments := make([]assignmentJSON, 0, len(aggregate.Assignments()))
	for _, a := range aggregate.Assignments() {
		assignments = append(assignments, assignmentJSON{
			DriverType:    a.DriverType.String(),
			DriverName:    a.DriverName,
			AssignedBy:    a.AssignedBy,
			VehicleInfo:   a.VehicleInfo,
			IsPreliminary: a.IsPreliminary,
			AssignedAt:    a.AssignedAt,
		})
	}

	tiersRaw, err := json.Marshal(tiers)
	if err != nil {
		return OrderDTO{}, err
	}
	revisionsRaw, err := json.Marshal(revisions)
	if err != nil {
		return OrderDTO{}, err
	}
	printsRaw, err := json.Marshal(prints)
	if err != nil {
		return OrderDTO{}, err
	}
	assignmentsRaw, err := json.Marshal(assignments)
	if err != nil {
		return OrderDTO{}, err
	}

	var tripID *uuid.UUID
	if id := aggregate.TripID(); id != nil {
		raw := id.Bytes()
		tripID = &raw
	}

	return OrderDTO{
		Code:          aggregate.Code().String(),
		CustomerName:  aggregate.CustomerName(),
		Shape:         aggregate.Spec().Shape(),
		Size:          aggregate.Spec().Size(),
		Flavor:        aggregate.Spec().Flavor(),
		Tiers:         tiersRaw,
		DeliveryDate:  aggregate.DeliveryDate(),
		Status:        aggregate.Status().String(),
		KitchenStatus: aggregate.KitchenStatus().String(),
		TripID:        tripID,
		TripSequence:  aggregate.TripSequence(),
		RevisionCount: aggregate.RevisionCount(),
		Revisions:     revisionsRaw,
		Prints:        printsRaw,
		Assignments:   assignmentsRaw,
		ApprovedBy:    aggregate.ApprovedBy(),
		ApprovalDate:  aggregate.ApprovalDate(),
		ArchivedDate:  aggregate.ArchivedDate(),
	}, nil
}

// toDomain converts a database DTO and its log rows back to an order aggregate.
func toDomain(dto OrderDTO, logRows []OrderLogEntryDTO) (*order.Order, error) {
	code, err := kernel.OrderCodeFromString(dto.Code)
	if err != nil {
		return nil, err
	}

	var tiers []tierJSON
	if err = unmarshalJSON(dto.Tiers, &tiers); err != nil {
		return nil, err
	}
	specTiers := make([]order.Tier, 0, len(tiers))
	for _, t := range tiers {
		specTiers = append(specTiers, order.Tier{Number: t.Number, Detail: t.Detail})
	}

	spec, err := order.NewCakeSpec(dto.Shape, dto.Size, dto.Flavor, specTiers)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	kitchenStatus, err := order.KitchenStatusFromString(dto.KitchenStatus)
	if err != nil {
		return nil, err
	}

	var tripID *kernel.UUID
	if dto.TripID != nil {
		id, idErr := kernel.UUIDFromBytes((*dto.TripID)[:])
		if idErr != nil {
			return nil, idErr
		}
		tripID = &id
	}

	var revisionDocs []revisionJSON
	if err = unmarshalJSON(dto.Revisions, &revisionDocs); err != nil {
		return nil, err
	}
	revisions := make([]order.Revision, 0, len(revisionDocs))
	for _, r := range revisionDocs {
		revisions = append(revisions, order.Revision{
			Notes:       r.Notes,
			Photos:      r.Photos,
			RequestedBy: r.RequestedBy,
			RequestedAt: r.RequestedAt,
		})
	}

	var printDocs []printJSON
	if err = unmarshalJSON(dto.Prints, &printDocs); err != nil {
		return nil, err
	}
	prints := make([]order.PrintRecord, 0, len(printDocs))
	for _, p := range printDocs {
		prints = append(prints, order.PrintRecord{Template: p.Template, PrintedAt: p.PrintedAt})
	}

	var assignmentDocs []assignmentJSON
	if err = unmarshalJSON(dto.Assignments, &assignmentDocs); err != nil {
		return nil, err
	}
	assignments := make([]order.DeliveryAssignment, 0, len(assignmentDocs))
	for _, a := range assignmentDocs {
		driverType, dtErr := order.DriverTypeFromString(a.DriverType)
		if dtErr != nil {
			return nil, dtErr
		}
		assignments = append(assignments, order.DeliveryAssignment{
			DriverType:    driverType,
			DriverName:    a.DriverName,
			AssignedBy:    a.AssignedBy,
			VehicleInfo:   a.VehicleInfo,
			IsPreliminary: a.IsPreliminary,
			AssignedAt:    a.AssignedAt,
		})
	}

	logs := make([]order.LogEvent, 0, len(logRows))
	for _, row := range logRows {
		event, rowErr := logEventToDomain(row)
		if rowErr != nil {
			return nil, rowErr
		}
		logs = append(logs, event)
	}

	return order.RestoreOrder(
		code,
		dto.CustomerName,
		spec,
		dto.DeliveryDate,
		status,
		kitchenStatus,
		tripID,
		dto.TripSequence,
		dto.RevisionCount,
		revisions,
		logs,
		prints,
		assignments,
		dto.ApprovedBy,
		dto.ApprovalDate,
		dto.ArchivedDate,
	)
}

// logEventFromDomain converts a log event to its row representation.
func logEventFromDomain(code kernel.OrderCode, event order.LogEvent) OrderLogEntryDTO {
	return OrderLogEntryDTO{
		OrderCode:      code.String(),
		EventType:      string(event.Type),
		PreviousStatus: event.PreviousStatus.String(),
		NewStatus:      event.NewStatus.String(),
		Actor:          event.Actor,
		Note:           event.Note,
		OccurredAt:     event.Timestamp,
	}
}

// logEventToDomain converts a log row back to a domain log event.
func logEventToDomain(row OrderLogEntryDTO) (order.LogEvent, error) {
	previous, err := order.StatusFromString(row.PreviousStatus)
	if err != nil {
		return order.LogEvent{}, err
	}
	next, err := order.StatusFromString(row.NewStatus)
	if err != nil {
		return order.LogEvent{}, err
	}

	return order.LogEvent{
		Type:           order.LogEventType(row.EventType),
		PreviousStatus: previous,
		NewStatus:      next,
		Actor:          row.Actor,
		Note:           row.Note,
		Timestamp:      row.OccurredAt,
	}, nil
}

// unmarshalJSON decodes a JSON column, treating NULL as an empty document.
func unmarshalJSON(raw []byte, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}
