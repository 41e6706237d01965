package order

import (
	"fmt"

	"bakeflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a cake order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct workshop workflow.
//
// State transitions:
//
//	Incomplete ──> InQueue ──> InKitchen ──> WaitingPhoto ──> PendingApproval ──> ReadyToDeliver
//	                                              ^                │    ^              │
//	                                              │                v    │              v
//	                                              │          NeedsRevision            InDelivery
//	                                              └──(resubmission)─┘                  │
//	                                                                                   v
//	                                  Archived <── Finished <── WaitingFeedback <──────┘
//
// Cancelled is reachable from every non-terminal state. Archived orders can
// only leave via restore, which re-enters the status recorded in the order log.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Incomplete is the intake state: the order exists but its cake
	// specification is not confirmed yet.
	Incomplete

	// InQueue means the order is confirmed and waiting for the kitchen.
	// Orders in this status contribute to baking task aggregation.
	InQueue

	// InKitchen means the kitchen is working on the order. The finer-grained
	// progress is tracked by KitchenStatus.
	InKitchen

	// WaitingPhoto means decoration is done and the finished cake still needs
	// to be photographed for customer approval.
	WaitingPhoto

	// PendingApproval means photos were submitted and the order waits for a
	// manager decision: approve or request a revision.
	PendingApproval

	// NeedsRevision means the approval reviewer sent the cake back to the
	// kitchen with revision notes. Resubmission returns to PendingApproval.
	NeedsRevision

	// ReadyToDeliver means photos were approved and the order can be
	// dispatched.
	ReadyToDeliver

	// InDelivery means the order is out with a driver.
	InDelivery

	// WaitingFeedback means the order was delivered and awaits customer
	// feedback before it is closed out.
	WaitingFeedback

	// Finished means the order is complete. Finished orders may be archived.
	Finished

	// Archived means the order was moved out of the active set. It can be
	// restored to the status it held before archiving.
	Archived

	// Cancelled is a terminal state reachable from any non-terminal status.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		Incomplete:      "incomplete",
		InQueue:         "in-queue",
		InKitchen:       "in-kitchen",
		WaitingPhoto:    "waiting-photo",
		PendingApproval: "pending-approval",
		NeedsRevision:   "needs-revision",
		ReadyToDeliver:  "ready-to-deliver",
		InDelivery:      "in-delivery",
		WaitingFeedback: "waiting-feedback",
		Finished:        "finished",
		Archived:        "archived",
		Cancelled:       "cancelled",
	}
}

// allowedTransitions is the explicit transition-validity table of the order
// state machine. Cancellation is handled separately because it is reachable
// from every non-terminal state, and restore from Archived bypasses the table
// because its target is recovered from the order log.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Incomplete:      {InQueue},
		InQueue:         {InKitchen},
		InKitchen:       {WaitingPhoto},
		WaitingPhoto:    {PendingApproval},
		PendingApproval: {ReadyToDeliver, NeedsRevision},
		NeedsRevision:   {PendingApproval},
		ReadyToDeliver:  {InDelivery},
		InDelivery:      {WaitingFeedback},
		WaitingFeedback: {Finished},
		Finished:        {Archived},
	}
}

// Validate checks if the Status value is one of the defined statuses.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the kebab-case name of the status.
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString resolves a kebab-case status name back to its Status value.
// Used when reconstructing orders from persistence.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status permits no further transitions other
// than restore. Cancelled is final; Archived only leaves via restore.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Archived
}

// CanTransitionTo reports whether the state machine permits moving from s to
// newStatus. Cancellation is permitted from any non-terminal state.
func (s Status) CanTransitionTo(newStatus Status) bool {
	if newStatus == Cancelled {
		return !s.IsTerminal()
	}
	for _, allowed := range allowedTransitions()[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs the transition from s to newStatus.
//
// Returns:
//   - (newStatus, nil) on a valid transition
//   - (0, ErrInvalidTransition) if the transition is not in the validity table
func (s Status) TransitionTo(newStatus Status) (Status, error) {
	if err := newStatus.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(newStatus) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, newStatus)
	}
	return newStatus, nil
}
