package order

import (
	"errors"
	"fmt"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidTransition is returned when a status change is not permitted
	// from the order's current status.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrNotAssignedToTrip is returned when removing an order from a trip it
	// does not belong to.
	ErrNotAssignedToTrip = errors.New("order is not assigned to a trip")
)

// Order represents a custom-cake order in the system. It is the aggregate root
// that owns the order's status state machine, the append-only order log, the
// revision history, and the driver assignment records.
//
// Order follows these invariants:
//   - Identified by a valid shop-assigned OrderCode
//   - Status transitions follow the validity table in Status
//   - KitchenStatus is only meaningful while the order is InKitchen
//   - Every status transition appends a LogEvent; the log is append-only
//   - tripID and tripSequence are set and cleared together and mirror trip
//     membership maintained by the trip planner
//
// Trip and baking-task state are never touched by order transitions; those
// components react to the resulting order snapshot on their own runs.
type Order struct {
	code          kernel.OrderCode
	customerName  string
	spec          CakeSpec
	deliveryDate  time.Time
	status        Status
	kitchenStatus KitchenStatus

	tripID       *kernel.UUID
	tripSequence *int

	revisionCount int
	revisions     []Revision
	logs          []LogEvent
	prints        []PrintRecord
	assignments   []DeliveryAssignment

	approvedBy   string
	approvalDate *time.Time
	archivedDate *time.Time

	isConstructed bool
}

// NewOrder creates a new Order at intake. The order starts Incomplete: the
// spec is captured but the order is not confirmed into the kitchen queue yet.
//
// Parameters:
//   - code: shop-assigned order code (must be valid)
//   - customerName: required customer display name
//   - spec: validated cake specification
//   - deliveryDate: requested delivery date (must not be zero)
func NewOrder(code kernel.OrderCode, customerName string, spec CakeSpec, deliveryDate time.Time) (*Order, error) {
	o := &Order{
		status:        Incomplete,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCode(code),
		o.setCustomerName(customerName),
		o.setSpec(spec),
		o.setDeliveryDate(deliveryDate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without running intake
// rules. All invariants are assumed to have been enforced when the state was
// first written.
func RestoreOrder(
	code kernel.OrderCode,
	customerName string,
	spec CakeSpec,
	deliveryDate time.Time,
	status Status,
	kitchenStatus KitchenStatus,
	tripID *kernel.UUID,
	tripSequence *int,
	revisionCount int,
	revisions []Revision,
	logs []LogEvent,
	prints []PrintRecord,
	assignments []DeliveryAssignment,
	approvedBy string,
	approvalDate *time.Time,
	archivedDate *time.Time,
) (*Order, error) {
	if err := errors.Join(code.Validate(), spec.Validate(), status.Validate(), kitchenStatus.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		code:          code,
		customerName:  customerName,
		spec:          spec,
		deliveryDate:  deliveryDate,
		status:        status,
		kitchenStatus: kitchenStatus,
		tripID:        tripID,
		tripSequence:  tripSequence,
		revisionCount: revisionCount,
		revisions:     revisions,
		logs:          logs,
		prints:        prints,
		assignments:   assignments,
		approvedBy:    approvedBy,
		approvalDate:  approvalDate,
		archivedDate:  archivedDate,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their order codes.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.code.IsEqual(other.code)
}

// Code returns the shop-assigned order code.
func (o *Order) Code() kernel.OrderCode {
	return o.code
}

// CustomerName returns the customer display name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Spec returns the cake specification.
func (o *Order) Spec() CakeSpec {
	return o.spec
}

// DeliveryDate returns the requested delivery date.
func (o *Order) DeliveryDate() time.Time {
	return o.deliveryDate
}

// Status returns the current workflow status.
func (o *Order) Status() Status {
	return o.status
}

// KitchenStatus returns the production substate, or KitchenStatusNone when the
// order is not in the kitchen.
func (o *Order) KitchenStatus() KitchenStatus {
	return o.kitchenStatus
}

// TripID returns the id of the trip the order is assigned to, or nil.
// This is a denormalized mirror of trip membership; the trip owns the relation.
func (o *Order) TripID() *kernel.UUID {
	return o.tripID
}

// TripSequence returns the order's visit position within its trip, or nil.
func (o *Order) TripSequence() *int {
	return o.tripSequence
}

// RevisionCount returns how many revisions have been requested.
func (o *Order) RevisionCount() int {
	return o.revisionCount
}

// Revisions returns the append-only revision history.
func (o *Order) Revisions() []Revision {
	return o.revisions
}

// Logs returns the append-only order log.
func (o *Order) Logs() []LogEvent {
	return o.logs
}

// Prints returns the append-only print history.
func (o *Order) Prints() []PrintRecord {
	return o.prints
}

// Assignments returns all driver assignments, oldest first.
func (o *Order) Assignments() []DeliveryAssignment {
	return o.assignments
}

// CurrentAssignment returns the most recently created driver assignment, or
// nil when no driver was ever assigned.
func (o *Order) CurrentAssignment() *DeliveryAssignment {
	if len(o.assignments) == 0 {
		return nil
	}
	a := o.assignments[len(o.assignments)-1]
	return &a
}

// ApprovedBy returns who approved the cake photos, or the empty string.
func (o *Order) ApprovedBy() string {
	return o.approvedBy
}

// ApprovalDate returns when the cake photos were approved, or nil.
func (o *Order) ApprovalDate() *time.Time {
	return o.approvalDate
}

// ArchivedDate returns when the order was archived, or nil.
func (o *Order) ArchivedDate() *time.Time {
	return o.archivedDate
}

// IsProductionRelevant reports whether the order currently contributes to
// baking task aggregation: confirmed into the queue, or in the kitchen but not
// yet baked.
func (o *Order) IsProductionRelevant() bool {
	return o.status == InQueue || (o.status == InKitchen && o.kitchenStatus == WaitingBaker)
}

// ChangeStatus transitions the order to newStatus after checking the validity
// table, and appends the status-change log event that records the transition.
// The returned LogEvent is the appended entry, so callers can persist it
// through the order log contract.
//
// Returns ErrInvalidTransition when the state machine does not permit the
// move. Entering the kitchen initializes KitchenStatus to WaitingBaker;
// leaving it clears the substate.
func (o *Order) ChangeStatus(newStatus Status, actor, note string, at time.Time) (LogEvent, error) {
	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return LogEvent{}, err
	}

	return o.applyStatus(next, actor, note, at), nil
}

// applyStatus writes the new status, maintains the kitchen substate, and
// appends the log entry. Callers have already validated the transition.
func (o *Order) applyStatus(newStatus Status, actor, note string, at time.Time) LogEvent {
	event := LogEvent{
		Type:           LogEventStatusChange,
		PreviousStatus: o.status,
		NewStatus:      newStatus,
		Actor:          actor,
		Note:           note,
		Timestamp:      at,
	}

	switch {
	case newStatus == InKitchen:
		o.kitchenStatus = WaitingBaker
	case o.status == InKitchen:
		o.kitchenStatus = KitchenStatusNone
	}

	o.status = newStatus
	o.logs = append(o.logs, event)
	return event
}

// ChangeKitchenStatus moves the order to a new kitchen substate.
// Only valid while the order is InKitchen.
func (o *Order) ChangeKitchenStatus(ks KitchenStatus) error {
	if err := ks.Validate(); err != nil {
		return err
	}
	if ks == KitchenStatusNone {
		return errs.NewValueIsRequiredError("kitchen status")
	}
	if o.status != InKitchen {
		return fmt.Errorf("%w: kitchen status requires %s, order is %s", ErrInvalidTransition, InKitchen, o.status)
	}

	o.kitchenStatus = ks
	return nil
}

// SubmitForApproval submits finished-cake photos for customer approval.
// Valid only from WaitingPhoto or NeedsRevision; moves to PendingApproval.
func (o *Order) SubmitForApproval(photos []string, actor string, at time.Time) (LogEvent, error) {
	if len(photos) == 0 {
		return LogEvent{}, errs.NewValueIsRequiredError("photos")
	}
	if o.status != WaitingPhoto && o.status != NeedsRevision {
		return LogEvent{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, PendingApproval)
	}

	return o.applyStatus(PendingApproval, actor, "", at), nil
}

// Approve records the approval decision. Valid only from PendingApproval;
// moves to ReadyToDeliver and records who approved and when.
func (o *Order) Approve(approver string, at time.Time) (LogEvent, error) {
	if approver == "" {
		return LogEvent{}, errs.NewValueIsRequiredError("approver")
	}
	if o.status != PendingApproval {
		return LogEvent{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, ReadyToDeliver)
	}

	o.approvedBy = approver
	o.approvalDate = &at
	return o.applyStatus(ReadyToDeliver, approver, "", at), nil
}

// RequestRevision sends the cake back to the kitchen with notes and reference
// photos. Valid only from PendingApproval; appends a Revision record,
// increments the revision count, and moves to NeedsRevision.
func (o *Order) RequestRevision(notes string, photos []string, requestedBy string, at time.Time) (LogEvent, error) {
	if notes == "" {
		return LogEvent{}, errs.NewValueIsRequiredError("revision notes")
	}
	if requestedBy == "" {
		return LogEvent{}, errs.NewValueIsRequiredError("requested by")
	}
	if o.status != PendingApproval {
		return LogEvent{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, NeedsRevision)
	}

	o.revisions = append(o.revisions, Revision{
		Notes:       notes,
		Photos:      photos,
		RequestedBy: requestedBy,
		RequestedAt: at,
	})
	o.revisionCount++

	return o.applyStatus(NeedsRevision, requestedBy, notes, at), nil
}

// Archive moves a finished order out of the active set.
// Valid only from Finished; records the archive date.
func (o *Order) Archive(actor string, at time.Time) (LogEvent, error) {
	if o.status != Finished {
		return LogEvent{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, Archived)
	}

	o.archivedDate = &at
	return o.applyStatus(Archived, actor, "", at), nil
}

// RestoreFromArchive returns an archived order to the status it held before
// archiving. The target is resolved by scanning the order log for the most
// recent status-change entry whose new status is Archived and taking its
// previous status; when no qualifying entry exists the order restores to
// Finished. The fallback is a deliberate default, not an error path.
func (o *Order) RestoreFromArchive(actor string, at time.Time) (LogEvent, error) {
	if o.status != Archived {
		return LogEvent{}, fmt.Errorf("%w: only archived orders can be restored, order is %s", ErrInvalidTransition, o.status)
	}

	target := Finished
	for i := len(o.logs) - 1; i >= 0; i-- {
		entry := o.logs[i]
		if entry.Type == LogEventStatusChange && entry.NewStatus == Archived {
			target = entry.PreviousStatus
			break
		}
	}

	o.archivedDate = nil
	return o.applyStatus(target, actor, "restored from archive", at), nil
}

// Cancel terminates the order. Allowed from any non-terminal status.
func (o *Order) Cancel(actor, note string, at time.Time) (LogEvent, error) {
	if o.status.IsTerminal() {
		return LogEvent{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, Cancelled)
	}

	return o.applyStatus(Cancelled, actor, note, at), nil
}

// AssignDriver attaches a driver assignment to the order.
//
// Preliminary assignments are permitted while the order is still in the
// approval flow (PendingApproval or NeedsRevision) so dispatch can pre-plan.
// Final assignments (IsPreliminary false) require the order to have reached
// ReadyToDeliver. Assignments accumulate; CurrentAssignment returns the
// latest.
func (o *Order) AssignDriver(a DeliveryAssignment) error {
	if err := a.DriverType.Validate(); err != nil {
		return err
	}
	if a.DriverType == ThirdPartyDriver && a.DriverName == "" {
		return errs.NewValueIsRequiredError("driver name for 3rd-party driver")
	}

	if a.IsPreliminary {
		if o.status != PendingApproval && o.status != NeedsRevision && o.status != ReadyToDeliver {
			return fmt.Errorf("%w: preliminary driver assignment requires the approval flow, order is %s",
				ErrInvalidTransition, o.status)
		}
	} else if o.status != ReadyToDeliver && o.status != InDelivery {
		return fmt.Errorf("%w: final driver assignment requires %s, order is %s",
			ErrInvalidTransition, ReadyToDeliver, o.status)
	}

	o.assignments = append(o.assignments, a)
	return nil
}

// AssignToTrip writes the order-side mirror of trip membership.
// The trip owns the relation; this only records the derived pointer.
func (o *Order) AssignToTrip(tripID kernel.UUID, sequence int) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	if sequence <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"trip sequence",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}

	o.tripID = &tripID
	o.tripSequence = &sequence
	return nil
}

// RemoveFromTrip clears the order-side mirror of trip membership.
func (o *Order) RemoveFromTrip() error {
	if o.tripID == nil {
		return ErrNotAssignedToTrip
	}

	o.tripID = nil
	o.tripSequence = nil
	return nil
}

// RecordPrint appends an entry to the print history.
func (o *Order) RecordPrint(template string, at time.Time) error {
	if template == "" {
		return errs.NewValueIsRequiredError("print template")
	}

	o.prints = append(o.prints, PrintRecord{Template: template, PrintedAt: at})
	return nil
}

func (o *Order) setCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.code = code
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customerName = name
	return nil
}

func (o *Order) setSpec(spec CakeSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	o.spec = spec
	return nil
}

func (o *Order) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("delivery date")
	}
	o.deliveryDate = deliveryDate
	return nil
}
