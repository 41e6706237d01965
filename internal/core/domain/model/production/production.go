// Package production provides the immutable production ledger entry and the
// running cake inventory. Ledger entries record completed or cancelled baking
// runs and are never updated or deleted; inventory counts are incremented only
// by successful runs.
package production

import (
	"errors"
	"fmt"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"
)

var (
	// ErrLogEntryIsNotConstructed is returned when a LogEntry was not created
	// through one of the factory methods.
	ErrLogEntryIsNotConstructed = errors.New(
		"LogEntry must be created via NewCompletionEntry, NewCancellationEntry, or RestoreLogEntry")

	// ErrInventoryItemIsNotConstructed is returned when an InventoryItem was
	// not created through its factory methods.
	ErrInventoryItemIsNotConstructed = errors.New(
		"InventoryItem must be created via NewInventoryItem or RestoreInventoryItem")
)

// QualityCheck records one quality gate result captured with a production run.
type QualityCheck struct {
	Name   string
	Passed bool
}

// LogEntry is an immutable record of one completed or cancelled production
// run. Entries are only ever appended.
type LogEntry struct {
	id                 kernel.UUID
	key                order.SpecKey
	quantity           int
	completedAt        time.Time
	taskID             *kernel.UUID
	cancelled          bool
	cancellationReason string
	baker              string
	notes              string
	qualityChecks      []QualityCheck

	isConstructed bool
}

// NewCompletionEntry records a successful production run of quantity cakes.
func NewCompletionEntry(
	id kernel.UUID,
	key order.SpecKey,
	quantity int,
	completedAt time.Time,
	taskID *kernel.UUID,
	baker, notes string,
	qualityChecks []QualityCheck,
) (*LogEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if baker == "" {
		return nil, errs.NewValueIsRequiredError("baker")
	}

	return &LogEntry{
		id:            id,
		key:           key,
		quantity:      quantity,
		completedAt:   completedAt,
		taskID:        taskID,
		baker:         baker,
		notes:         notes,
		qualityChecks: qualityChecks,
		isConstructed: true,
	}, nil
}

// NewCancellationEntry records a cancelled run: zero quantity, cancelled flag
// set, with the cancellation reason. Written when a baker acknowledges a
// cancelled task to preserve the audit trail.
func NewCancellationEntry(
	id kernel.UUID,
	key order.SpecKey,
	completedAt time.Time,
	taskID *kernel.UUID,
	reason, notes string,
) (*LogEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &LogEntry{
		id:                 id,
		key:                key,
		completedAt:        completedAt,
		taskID:             taskID,
		cancelled:          true,
		cancellationReason: reason,
		notes:              notes,
		isConstructed:      true,
	}, nil
}

// RestoreLogEntry reconstructs a LogEntry from persistence.
func RestoreLogEntry(
	id kernel.UUID,
	key order.SpecKey,
	quantity int,
	completedAt time.Time,
	taskID *kernel.UUID,
	cancelled bool,
	cancellationReason, baker, notes string,
	qualityChecks []QualityCheck,
) (*LogEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &LogEntry{
		id:                 id,
		key:                key,
		quantity:           quantity,
		completedAt:        completedAt,
		taskID:             taskID,
		cancelled:          cancelled,
		cancellationReason: cancellationReason,
		baker:              baker,
		notes:              notes,
		qualityChecks:      qualityChecks,
		isConstructed:      true,
	}, nil
}

// Validate ensures the LogEntry was properly constructed.
func (e *LogEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrLogEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *LogEntry) ID() kernel.UUID {
	return e.id
}

// Key returns the (shape, size, flavor) triple that was produced.
func (e *LogEntry) Key() order.SpecKey {
	return e.key
}

// Quantity returns the produced cake count (zero for cancellations).
func (e *LogEntry) Quantity() int {
	return e.quantity
}

// CompletedAt returns when the run finished or was acknowledged cancelled.
func (e *LogEntry) CompletedAt() time.Time {
	return e.completedAt
}

// TaskID returns the baking task the run belongs to, or nil.
func (e *LogEntry) TaskID() *kernel.UUID {
	return e.taskID
}

// Cancelled reports whether this entry records a cancelled run.
func (e *LogEntry) Cancelled() bool {
	return e.cancelled
}

// CancellationReason returns why the run was cancelled, or the empty string.
func (e *LogEntry) CancellationReason() string {
	return e.cancellationReason
}

// Baker returns who produced the run.
func (e *LogEntry) Baker() string {
	return e.baker
}

// Notes returns free-form run notes.
func (e *LogEntry) Notes() string {
	return e.notes
}

// QualityChecks returns the quality gate results captured with the run.
func (e *LogEntry) QualityChecks() []QualityCheck {
	copied := make([]QualityCheck, len(e.qualityChecks))
	copy(copied, e.qualityChecks)
	return copied
}

// InventoryItem is the running stock count for one spec triple.
type InventoryItem struct {
	key      order.SpecKey
	quantity int

	isConstructed bool
}

// NewInventoryItem creates a stock record with an initial quantity.
func NewInventoryItem(key order.SpecKey, quantity int) (*InventoryItem, error) {
	if key.Shape == "" || key.Size == "" || key.Flavor == "" {
		return nil, errs.NewValueIsRequiredError("spec key")
	}
	if quantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is negative", quantity),
		)
	}

	return &InventoryItem{
		key:           key,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// RestoreInventoryItem reconstructs an InventoryItem from persistence.
func RestoreInventoryItem(key order.SpecKey, quantity int) (*InventoryItem, error) {
	return NewInventoryItem(key, quantity)
}

// Validate ensures the InventoryItem was properly constructed.
func (i *InventoryItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInventoryItemIsNotConstructed
	}
	return nil
}

// Key returns the spec triple the stock is counted for.
func (i *InventoryItem) Key() order.SpecKey {
	return i.key
}

// Quantity returns the current stock count.
func (i *InventoryItem) Quantity() int {
	return i.quantity
}

// Add increases the stock count by delta (must be positive).
func (i *InventoryItem) Add(delta int) error {
	if delta <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"delta",
			fmt.Errorf("%d is not greater than 0", delta),
		)
	}
	i.quantity += delta
	return nil
}
