package trip

import (
	"errors"
	"fmt"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"
)

var (
	// ErrTripIsNotConstructed is returned when a Trip instance was not created
	// through the NewTrip or RestoreTrip factory methods.
	ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip or RestoreTrip")

	// ErrInvalidTripTransition is returned when a trip status change is not
	// permitted from the current status.
	ErrInvalidTripTransition = errors.New("trip status transition is not allowed")

	// ErrInvalidSequence is returned when a resequence map's key set does not
	// match the trip's current membership.
	ErrInvalidSequence = errors.New("sequence map does not match trip membership")

	// ErrTripNotEmpty is returned when deleting a trip that still has member
	// orders. Every order must be unassigned first; there is no cascading
	// delete.
	ErrTripNotEmpty = errors.New("trip still has assigned orders")

	// ErrOrderNotInTrip is returned when removing an order the trip does not
	// contain.
	ErrOrderNotInTrip = errors.New("order is not assigned to this trip")
)

// Trip represents a single driver's delivery run for one calendar date. It is
// the aggregate root that owns trip membership and the explicit visit
// sequence.
//
// Trip follows these invariants:
//   - The member set and the sequence map have identical key sets at all times
//   - 3rd-party trips must name the driver
//   - A trip can only be deleted once every member order has been removed
//
// The trip owns the order<->trip relation; each member order additionally
// carries a denormalized mirror (tripID, tripSequence) that the application
// layer keeps in sync and repairs when the two sides drift.
type Trip struct {
	id          kernel.UUID
	name        string
	driverType  order.DriverType
	driverName  string
	vehicleInfo string
	date        time.Time
	status      Status
	members     []kernel.OrderCode
	sequence    map[string]int

	isConstructed bool
}

// NewTrip creates a planned trip with no member orders.
// driverName is required when driverType is 3rd-party.
func NewTrip(
	id kernel.UUID,
	name string,
	driverType order.DriverType,
	driverName, vehicleInfo string,
	date time.Time,
) (*Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("trip name")
	}
	if err := driverType.Validate(); err != nil {
		return nil, err
	}
	if driverType == order.ThirdPartyDriver && driverName == "" {
		return nil, errs.NewValueIsRequiredError("driver name for 3rd-party driver")
	}
	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("trip date")
	}

	return &Trip{
		id:            id,
		name:          name,
		driverType:    driverType,
		driverName:    driverName,
		vehicleInfo:   vehicleInfo,
		date:          date,
		status:        Planned,
		sequence:      make(map[string]int),
		isConstructed: true,
	}, nil
}

// RestoreTrip reconstructs a Trip from persistence. The member list and
// sequence map must already agree; mismatched inputs are rejected.
func RestoreTrip(
	id kernel.UUID,
	name string,
	driverType order.DriverType,
	driverName, vehicleInfo string,
	date time.Time,
	status Status,
	members []kernel.OrderCode,
	sequence map[string]int,
) (*Trip, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if len(members) != len(sequence) {
		return nil, fmt.Errorf("%w: %d members, %d sequenced", ErrInvalidSequence, len(members), len(sequence))
	}
	for _, code := range members {
		if _, ok := sequence[code.String()]; !ok {
			return nil, fmt.Errorf("%w: %s has no sequence", ErrInvalidSequence, code)
		}
	}

	copied := make(map[string]int, len(sequence))
	for k, v := range sequence {
		copied[k] = v
	}

	return &Trip{
		id:            id,
		name:          name,
		driverType:    driverType,
		driverName:    driverName,
		vehicleInfo:   vehicleInfo,
		date:          date,
		status:        status,
		members:       append([]kernel.OrderCode(nil), members...),
		sequence:      copied,
		isConstructed: true,
	}, nil
}

// Validate ensures the Trip instance was properly constructed.
func (t *Trip) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTripIsNotConstructed
	}
	return nil
}

// IsEqual compares two trips by their unique identifiers.
func (t *Trip) IsEqual(other *Trip) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the trip's unique identifier.
func (t *Trip) ID() kernel.UUID {
	return t.id
}

// Name returns the trip display name.
func (t *Trip) Name() string {
	return t.name
}

// DriverType returns who drives the trip.
func (t *Trip) DriverType() order.DriverType {
	return t.driverType
}

// DriverName returns the driver's name (always set for 3rd-party trips).
func (t *Trip) DriverName() string {
	return t.driverName
}

// VehicleInfo returns free-form vehicle details.
func (t *Trip) VehicleInfo() string {
	return t.vehicleInfo
}

// Date returns the calendar date of the run.
func (t *Trip) Date() time.Time {
	return t.date
}

// Status returns the current trip status.
func (t *Trip) Status() Status {
	return t.status
}

// Members returns a copy of the member order codes in insertion order.
func (t *Trip) Members() []kernel.OrderCode {
	return append([]kernel.OrderCode(nil), t.members...)
}

// Sequence returns a copy of the visit sequence map, keyed by order code.
func (t *Trip) Sequence() map[string]int {
	copied := make(map[string]int, len(t.sequence))
	for k, v := range t.sequence {
		copied[k] = v
	}
	return copied
}

// SequenceOf returns the visit position of the given order.
func (t *Trip) SequenceOf(code kernel.OrderCode) (int, bool) {
	seq, ok := t.sequence[code.String()]
	return seq, ok
}

// Contains reports whether the order is a member of this trip.
func (t *Trip) Contains(code kernel.OrderCode) bool {
	_, ok := t.sequence[code.String()]
	return ok
}

// IsEmpty reports whether the trip has no member orders.
func (t *Trip) IsEmpty() bool {
	return len(t.members) == 0
}

// AddOrder adds an order to the trip. When sequence is nil the order takes the
// next position (member count + 1). Adding an order that is already a member
// is a no-op, except that a non-nil sequence still moves it.
func (t *Trip) AddOrder(code kernel.OrderCode, sequence *int) error {
	if err := code.Validate(); err != nil {
		return err
	}
	if sequence != nil && *sequence <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sequence",
			fmt.Errorf("%d is not greater than 0", *sequence),
		)
	}

	if t.Contains(code) {
		if sequence != nil {
			t.sequence[code.String()] = *sequence
		}
		return nil
	}

	seq := len(t.members) + 1
	if sequence != nil {
		seq = *sequence
	}

	t.members = append(t.members, code)
	t.sequence[code.String()] = seq
	return nil
}

// RemoveOrder removes an order from both the member set and the sequence map.
func (t *Trip) RemoveOrder(code kernel.OrderCode) error {
	if !t.Contains(code) {
		return fmt.Errorf("%w: %s", ErrOrderNotInTrip, code)
	}

	for i, c := range t.members {
		if c.IsEqual(code) {
			t.members = append(t.members[:i], t.members[i+1:]...)
			break
		}
	}
	delete(t.sequence, code.String())
	return nil
}

// Resequence replaces the visit sequence wholesale. The caller computes the
// new positions (e.g. by swapping two adjacent orders); the trip only
// validates that the map covers exactly the current membership and persists
// the replacement.
func (t *Trip) Resequence(newSequence map[string]int) error {
	if len(newSequence) != len(t.members) {
		return fmt.Errorf("%w: %d members, %d sequenced", ErrInvalidSequence, len(t.members), len(newSequence))
	}
	for _, code := range t.members {
		seq, ok := newSequence[code.String()]
		if !ok {
			return fmt.Errorf("%w: %s has no sequence", ErrInvalidSequence, code)
		}
		if seq <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"sequence",
				fmt.Errorf("%d is not greater than 0 for %s", seq, code),
			)
		}
	}

	copied := make(map[string]int, len(newSequence))
	for k, v := range newSequence {
		copied[k] = v
	}
	t.sequence = copied
	return nil
}

// ChangeStatus transitions the trip to newStatus.
// Planned moves to in-progress, in-progress to completed; any non-terminal
// status may be cancelled.
func (t *Trip) ChangeStatus(newStatus Status) error {
	next, err := t.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	t.status = next
	return nil
}
