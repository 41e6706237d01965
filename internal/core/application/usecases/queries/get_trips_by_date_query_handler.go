package queries

import (
	"context"
	"database/sql"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTripsByDateQueryHandler retrieves a day's delivery trips with their
// sequenced stops. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
type GetTripsByDateQueryHandler struct {
	db *gorm.DB
}

// NewGetTripsByDateQueryHandler creates a handler for trip dispatch queries.
// Requires a GORM database connection for query execution.
func NewGetTripsByDateQueryHandler(db *gorm.DB) GetTripsByDateQueryHandler {
	return GetTripsByDateQueryHandler{db: db}
}

// Handle executes the query to retrieve trips for the requested day.
// Trips come back in name order; each trip's stops in sequence order.
// A trip with no orders yet is returned with an empty stop list.
func (h GetTripsByDateQueryHandler) Handle(
	ctx context.Context,
	query GetTripsByDateQuery,
) ([]GetTripsByDateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	dayStart := time.Date(
		query.Date().Year(), query.Date().Month(), query.Date().Day(),
		0, 0, 0, 0, query.Date().Location(),
	)
	dayEnd := dayStart.AddDate(0, 0, 1)

	trips := make([]GetTripsByDateQueryResponse, 0)
	index := make(map[kernel.UUID]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.name,
			t.driver_type,
			t.driver_name,
			t.vehicle_info,
			t.date,
			t.status,
			o.order_code,
			o.sequence
		FROM trips t
		LEFT JOIN trip_orders o ON o.trip_id = t.id
		WHERE t.date >= ? AND t.date < ?
		ORDER BY t.name, o.sequence
	`, dayStart, dayEnd).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name, driverType, driverName, vehicleInfo, status string
		var date time.Time
		var orderCode sql.NullString
		var sequence sql.NullInt64

		err = rows.Scan(
			&id,
			&name,
			&driverType,
			&driverName,
			&vehicleInfo,
			&date,
			&status,
			&orderCode,
			&sequence,
		)
		if err != nil {
			return nil, err
		}

		tripID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		pos, seen := index[tripID]
		if !seen {
			dt, dtErr := order.DriverTypeFromString(driverType)
			if dtErr != nil {
				return nil, dtErr
			}
			tripStatus, stErr := trip.StatusFromString(status)
			if stErr != nil {
				return nil, stErr
			}

			trips = append(trips, GetTripsByDateQueryResponse{
				ID:          tripID,
				Name:        name,
				DriverType:  dt,
				DriverName:  driverName,
				VehicleInfo: vehicleInfo,
				Date:        date,
				Status:      tripStatus,
				Stops:       make([]TripStop, 0),
			})
			pos = len(trips) - 1
			index[tripID] = pos
		}

		if orderCode.Valid {
			code, codeErr := kernel.OrderCodeFromString(orderCode.String)
			if codeErr != nil {
				return nil, codeErr
			}
			trips[pos].Stops = append(trips[pos].Stops, TripStop{
				OrderCode: code,
				Sequence:  int(sequence.Int64),
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}
