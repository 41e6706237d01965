package queries

import (
	"context"
	"time"

	"bakeflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves an order's append-only log from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve one order's log entries.
// Entries come back oldest first. An order with no log yet, or an unknown
// code, yields an empty slice rather than an error.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			event_type,
			previous_status,
			new_status,
			actor,
			note,
			occurred_at
		FROM order_log_entries
		WHERE order_code = ?
		ORDER BY occurred_at, id
	`, query.OrderCode().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderHistoryQueryResponse
		var eventType, previousStatus, newStatus string
		var occurredAt time.Time

		err = rows.Scan(
			&eventType,
			&previousStatus,
			&newStatus,
			&entry.Actor,
			&entry.Note,
			&occurredAt,
		)
		if err != nil {
			return nil, err
		}

		entry.EventType = order.LogEventType(eventType)
		entry.Timestamp = occurredAt

		prev, prevErr := order.StatusFromString(previousStatus)
		if prevErr != nil {
			return nil, prevErr
		}
		entry.PreviousStatus = prev

		next, nextErr := order.StatusFromString(newStatus)
		if nextErr != nil {
			return nil, nextErr
		}
		entry.NewStatus = next

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
