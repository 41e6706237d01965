package order

import "time"

// LogEventType classifies entries in the append-only order log.
type LogEventType string

const (
	// LogEventStatusChange records a status transition. These entries are the
	// system's source of truth for order history: archive-restore scans them
	// to recover the pre-archive status.
	LogEventStatusChange LogEventType = "status-change"
)

// LogEvent is one append-only entry in an order's log. Entries are never
// updated or deleted.
type LogEvent struct {
	Type           LogEventType
	PreviousStatus Status
	NewStatus      Status
	Actor          string
	Note           string
	Timestamp      time.Time
}

// Revision is one append-only entry in an order's revision history, created
// when an approval reviewer sends the cake back to the kitchen.
type Revision struct {
	Notes       string
	Photos      []string
	RequestedBy string
	RequestedAt time.Time
}

// PrintRecord is one append-only entry in an order's print history. Rendering
// of the print template itself is outside the engine; only the fact that a
// print happened is recorded.
type PrintRecord struct {
	Template  string
	PrintedAt time.Time
}
