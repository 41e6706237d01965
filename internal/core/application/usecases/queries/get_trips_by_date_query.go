package queries

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/trip"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var (
	ErrGetTripsByDateQueryIsNotConstructed = errors.New(
		"GetTripsByDateQuery must be created via NewGetTripsByDateQuery constructor",
	)
)

// GetTripsByDateQuery retrieves the delivery trips planned for a single day,
// together with each trip's orders in stop sequence. This is the read model
// behind the dispatch board.
//
// Example:
//
//	query, err := NewGetTripsByDateQuery(time.Now())
//	if err != nil {
//	    return err
//	}
//	handler := NewGetTripsByDateQueryHandler(db)
//
//	trips, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve trips: %w", err)
//	}
type GetTripsByDateQuery struct {
	date  time.Time
	guard guard.ConstructorGuard
}

// NewGetTripsByDateQuery creates a query for the trips of the given date.
// Only the calendar day of date is significant; the time of day is ignored.
func NewGetTripsByDateQuery(date time.Time) (GetTripsByDateQuery, error) {
	if date.IsZero() {
		return GetTripsByDateQuery{}, errs.NewValueIsRequiredError("date")
	}
	return GetTripsByDateQuery{
		date:  date,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Date returns the day the query covers.
func (q GetTripsByDateQuery) Date() time.Time {
	return q.date
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTripsByDateQueryIsNotConstructed if validation fails.
func (q GetTripsByDateQuery) Validate() error {
	return q.guard.Validate(ErrGetTripsByDateQueryIsNotConstructed)
}

// GetTripsByDateQueryResponse represents one delivery trip in the read model.
// Stops are ordered by their sequence position within the trip.
type GetTripsByDateQueryResponse struct {
	ID          kernel.UUID
	Name        string
	DriverType  order.DriverType
	DriverName  string
	VehicleInfo string
	Date        time.Time
	Status      trip.Status
	Stops       []TripStop
}

// TripStop is one order on a trip, at its position in the driving sequence.
type TripStop struct {
	OrderCode kernel.OrderCode
	Sequence  int
}
