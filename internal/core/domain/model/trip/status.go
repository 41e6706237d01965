package trip

import (
	"fmt"

	"bakeflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery trip.
//
// State transitions:
//
//	Planned ──> InProgress ──> Completed
//	    │            │
//	    └────────────┴──> Cancelled
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Planned means the trip is assembled but the driver has not left.
	Planned

	// InProgress means the driver is out on the run.
	InProgress

	// Completed means every visit on the trip was made.
	Completed

	// Cancelled means the trip was called off.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Planned:       "planned",
		InProgress:    "in-progress",
		Completed:     "completed",
		Cancelled:     "cancelled",
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("trip status", fmt.Errorf("%d is not a valid trip status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("trip status", fmt.Errorf("%d is not a valid trip status", s))
	}
	return nil
}

// String returns the kebab-case name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString resolves a kebab-case status name back to its Status value.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"trip status",
		fmt.Errorf("%q is not a valid trip status", s),
	)
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// TransitionTo validates and performs the transition from s to newStatus.
func (s Status) TransitionTo(newStatus Status) (Status, error) {
	if err := newStatus.Validate(); err != nil {
		return 0, err
	}

	allowed := false
	switch {
	case newStatus == Cancelled:
		allowed = !s.IsTerminal()
	case s == Planned && newStatus == InProgress:
		allowed = true
	case s == InProgress && newStatus == Completed:
		allowed = true
	}

	if !allowed {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTripTransition, s, newStatus)
	}
	return newStatus, nil
}
