package bakingtask

import (
	"fmt"

	"bakeflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a baking task.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	    │            │
//	    └────────────┴──> Cancelled
//
// Pending moves to InProgress on the first recorded production run and to
// Completed once the completed quantity reaches the target. Cancellation
// happens through aggregation reconciliation (or directly, for manual tasks).
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending means no production run has been recorded yet.
	Pending

	// InProgress means some, but not all, of the target quantity is produced.
	InProgress

	// Completed means the full target quantity was produced.
	Completed

	// Cancelled means the task was withdrawn: its contributing orders changed
	// or left production, or a baker cancelled a manual task.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Pending:       "pending",
		InProgress:    "in-progress",
		Completed:     "completed",
		Cancelled:     "cancelled",
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("%d is not a valid task status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("%d is not a valid task status", s))
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
		"task status",
		fmt.Errorf("%q is not a valid task status", s),
	)
}

// IsActive reports whether the task still represents open work.
// At most one active task may exist per spec key at any time.
func (s Status) IsActive() bool {
	return s == Pending || s == InProgress
}
