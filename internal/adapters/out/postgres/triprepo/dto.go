// Package triprepo provides data transfer objects and mapping functions for
// delivery trip persistence. A trip is stored as a header row plus one row
// per member order carrying that order's position in the driving sequence,
// which is also the table the dispatch read model joins against.
package triprepo

import (
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// TripDTO represents the database structure for a trip header.
type TripDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	DriverType  string
	DriverName  string
	VehicleInfo string
	Date        time.Time `gorm:"index"`
	Status      string
}

// TableName specifies the database table name for trips.
func (TripDTO) TableName() string {
	return "trips"
}

// TripOrderDTO represents one member order of a trip with its sequence
// position. The pair (trip, order) is unique; an order sits on at most one
// position per trip.
type TripOrderDTO struct {
	TripID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderCode string    `gorm:"primaryKey;size:9"`
	Sequence  int
}

// TableName specifies the database table name for trip membership rows.
func (TripOrderDTO) TableName() string {
	return "trip_orders"
}

// fromDomain converts a trip aggregate to its header row and member rows.
func fromDomain(aggregate *trip.Trip) (TripDTO, []TripOrderDTO) {
	header := TripDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		DriverType:  aggregate.DriverType().String(),
		DriverName:  aggregate.DriverName(),
		VehicleInfo: aggregate.VehicleInfo(),
		Date:        aggregate.Date(),
		Status:      aggregate.Status().String(),
	}

	members := make([]TripOrderDTO, 0, len(aggregate.Members()))
	for _, code := range aggregate.Members() {
		seq, _ := aggregate.SequenceOf(code)
		members = append(members, TripOrderDTO{
			TripID:    header.ID,
			OrderCode: code.String(),
			Sequence:  seq,
		})
	}

	return header, members
}

// toDomain converts a header row and member rows back to a trip aggregate.
func toDomain(dto TripDTO, memberRows []TripOrderDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	driverType, err := order.DriverTypeFromString(dto.DriverType)
	if err != nil {
		return nil, err
	}

	status, err := trip.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	members := make([]kernel.OrderCode, 0, len(memberRows))
	sequence := make(map[string]int, len(memberRows))
	for _, row := range memberRows {
		code, codeErr := kernel.OrderCodeFromString(row.OrderCode)
		if codeErr != nil {
			return nil, codeErr
		}
		members = append(members, code)
		sequence[code.String()] = row.Sequence
	}

	return trip.RestoreTrip(
		id,
		dto.Name,
		driverType,
		dto.DriverName,
		dto.VehicleInfo,
		dto.Date,
		status,
		members,
		sequence,
	)
}
