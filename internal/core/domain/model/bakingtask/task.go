package bakingtask

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"
)

var (
	// ErrTaskIsNotConstructed is returned when a Task instance was not created
	// through one of the factory methods.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask, NewManualTask, or RestoreTask")

	// ErrTaskIsNotActive is returned when recording production against a task
	// that is already completed or cancelled.
	ErrTaskIsNotActive = errors.New("task is not active")

	// ErrTaskIsNotManual is returned when attempting to cancel or delete a
	// task that was created by aggregation. Only reconciliation may cancel
	// those.
	ErrTaskIsNotManual = errors.New("task is not manual")
)

// Task represents shared baking work for one cake specification. Orders with
// the same (shape, size, flavor) triple are grouped into a single task so the
// kitchen bakes them in one run.
//
// Task follows these invariants:
//   - At most one active (pending or in-progress) task exists per spec key;
//     the aggregator enforces this by merging groups into existing tasks
//   - quantity is the target count, quantityCompleted the produced count
//   - dueDate is the earliest delivery date among contributing orders
//   - Non-manual tasks are only cancelled by aggregation reconciliation
//
// The recorded quantityCompleted is deliberately never capped when a later
// reconciliation reduces quantity, so it can exceed the target.
type Task struct {
	id                 kernel.UUID
	key                order.SpecKey
	quantity           int
	quantityCompleted  int
	status             Status
	dueDate            time.Time
	orderCodes         []kernel.OrderCode
	isManual           bool
	isPriority         bool
	cancellationReason string

	isConstructed bool
}

// NewTask creates an aggregation-derived task for one spec-key group of
// production-relevant orders. The task starts pending with the group as its
// contributing orders, quantity equal to the group size, and dueDate equal to
// the group's earliest delivery date. The task is flagged priority when it is
// due today.
func NewTask(
	id kernel.UUID,
	key order.SpecKey,
	orderCodes []kernel.OrderCode,
	dueDate time.Time,
	today time.Time,
) (*Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if key.Shape == "" || key.Size == "" || key.Flavor == "" {
		return nil, errs.NewValueIsRequiredError("spec key")
	}
	if len(orderCodes) == 0 {
		return nil, errs.NewValueIsRequiredError("order codes")
	}
	if dueDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("due date")
	}

	return &Task{
		id:            id,
		key:           key,
		quantity:      len(orderCodes),
		status:        Pending,
		dueDate:       dueDate,
		orderCodes:    dedupCodes(orderCodes),
		isPriority:    sameDay(dueDate, today),
		isConstructed: true,
	}, nil
}

// NewManualTask creates a baker-initiated task that bypasses aggregation.
// Manual tasks carry no contributing orders and may be cancelled or deleted
// directly.
func NewManualTask(
	id kernel.UUID,
	key order.SpecKey,
	quantity int,
	dueDate time.Time,
	today time.Time,
) (*Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if key.Shape == "" || key.Size == "" || key.Flavor == "" {
		return nil, errs.NewValueIsRequiredError("spec key")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if dueDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("due date")
	}

	return &Task{
		id:            id,
		key:           key,
		quantity:      quantity,
		status:        Pending,
		dueDate:       dueDate,
		isManual:      true,
		isPriority:    sameDay(dueDate, today),
		isConstructed: true,
	}, nil
}

// RestoreTask reconstructs a Task from persistence.
func RestoreTask(
	id kernel.UUID,
	key order.SpecKey,
	quantity, quantityCompleted int,
	status Status,
	dueDate time.Time,
	orderCodes []kernel.OrderCode,
	isManual, isPriority bool,
	cancellationReason string,
) (*Task, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Task{
		id:                 id,
		key:                key,
		quantity:           quantity,
		quantityCompleted:  quantityCompleted,
		status:             status,
		dueDate:            dueDate,
		orderCodes:         dedupCodes(orderCodes),
		isManual:           isManual,
		isPriority:         isPriority,
		cancellationReason: cancellationReason,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Task instance was properly constructed.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// IsEqual compares two tasks by their unique identifiers.
func (t *Task) IsEqual(other *Task) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the task's unique identifier.
func (t *Task) ID() kernel.UUID {
	return t.id
}

// Key returns the (shape, size, flavor) triple the task bakes.
func (t *Task) Key() order.SpecKey {
	return t.key
}

// Quantity returns the target cake count.
func (t *Task) Quantity() int {
	return t.quantity
}

// QuantityCompleted returns the produced cake count.
func (t *Task) QuantityCompleted() int {
	return t.quantityCompleted
}

// Status returns the current task status.
func (t *Task) Status() Status {
	return t.status
}

// IsActive reports whether the task still represents open work.
func (t *Task) IsActive() bool {
	return t.status.IsActive()
}

// DueDate returns the earliest delivery date among contributing orders.
func (t *Task) DueDate() time.Time {
	return t.dueDate
}

// OrderCodes returns a copy of the contributing order codes.
func (t *Task) OrderCodes() []kernel.OrderCode {
	copied := make([]kernel.OrderCode, len(t.orderCodes))
	copy(copied, t.orderCodes)
	return copied
}

// Contains reports whether the given order contributes to this task.
func (t *Task) Contains(code kernel.OrderCode) bool {
	for _, c := range t.orderCodes {
		if c.IsEqual(code) {
			return true
		}
	}
	return false
}

// IsManual reports whether the task was created directly by a baker.
func (t *Task) IsManual() bool {
	return t.isManual
}

// IsPriority reports whether the task is due today.
func (t *Task) IsPriority() bool {
	return t.isPriority
}

// CancellationReason returns why the task was cancelled, or the empty string.
func (t *Task) CancellationReason() string {
	return t.cancellationReason
}

// MergeGroup folds a freshly aggregated spec-key group into this active task:
// the order-code sets are unioned (deduplicated), quantity becomes the larger
// of the existing target and the group size, dueDate becomes the earlier of
// the existing due date and the group's earliest delivery date, and the
// priority flag is recomputed against today.
func (t *Task) MergeGroup(codes []kernel.OrderCode, earliestDue time.Time, today time.Time) error {
	if !t.IsActive() {
		return fmt.Errorf("%w: %s", ErrTaskIsNotActive, t.status)
	}
	if len(codes) == 0 {
		return errs.NewValueIsRequiredError("order codes")
	}

	t.orderCodes = dedupCodes(append(t.orderCodes, codes...))
	if len(codes) > t.quantity {
		t.quantity = len(codes)
	}
	if !earliestDue.IsZero() && earliestDue.Before(t.dueDate) {
		t.dueDate = earliestDue
	}
	t.isPriority = sameDay(t.dueDate, today)
	return nil
}

// ShrinkTo keeps only the surviving order codes after reconciliation found the
// modified ones departed (completed upstream, cancelled, or spec changed).
// When no order survives, the task is cancelled with a reason naming the
// modified orders; otherwise the order set and quantity are reduced to match.
func (t *Task) ShrinkTo(surviving, modified []kernel.OrderCode) error {
	if !t.IsActive() {
		return fmt.Errorf("%w: %s", ErrTaskIsNotActive, t.status)
	}

	if len(surviving) == 0 {
		names := make([]string, len(modified))
		for i, c := range modified {
			names[i] = c.String()
		}
		t.orderCodes = nil
		t.status = Cancelled
		t.cancellationReason = fmt.Sprintf("Order(s) %s modified", strings.Join(names, ", "))
		return nil
	}

	t.orderCodes = dedupCodes(surviving)
	t.quantity = len(t.orderCodes)
	return nil
}

// RecordProgress adds a completed production run to the task.
// The task moves from pending to in-progress on first progress and to
// completed once the produced count reaches the target. quantityCompleted is
// not capped against the target.
func (t *Task) RecordProgress(quantityProduced int) error {
	if !t.IsActive() {
		return fmt.Errorf("%w: %s", ErrTaskIsNotActive, t.status)
	}
	if quantityProduced <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity produced",
			fmt.Errorf("%d is not greater than 0", quantityProduced),
		)
	}

	t.quantityCompleted += quantityProduced
	if t.quantityCompleted >= t.quantity {
		t.status = Completed
	} else if t.status == Pending {
		t.status = InProgress
	}
	return nil
}

// Cancel cancels a manual task with a reason. Non-manual tasks can only be
// cancelled by aggregation reconciliation.
func (t *Task) Cancel(reason string) error {
	if !t.isManual {
		return ErrTaskIsNotManual
	}
	if !t.IsActive() {
		return fmt.Errorf("%w: %s", ErrTaskIsNotActive, t.status)
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	t.status = Cancelled
	t.cancellationReason = reason
	return nil
}

// dedupCodes returns the codes with duplicates removed, preserving first-seen
// order.
func dedupCodes(codes []kernel.OrderCode) []kernel.OrderCode {
	seen := make(map[string]struct{}, len(codes))
	result := make([]kernel.OrderCode, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c.String()]; ok {
			continue
		}
		seen[c.String()] = struct{}{}
		result = append(result, c)
	}
	return result
}

// sameDay reports whether two instants fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
