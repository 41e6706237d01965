package queries

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery retrieves the append-only log of a single order: every
// status transition with who made it and when. Archive restore reads this
// history to find the pre-archive status, and the shop front shows it as the
// order's audit trail.
//
// Example:
//
//	code, _ := kernel.OrderCodeFromString("05-25-001")
//	query, err := NewGetOrderHistoryQuery(code)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderHistoryQueryHandler(db)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve order history: %w", err)
//	}
type GetOrderHistoryQuery struct {
	orderCode kernel.OrderCode
	guard     guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for the log of the given order.
func NewGetOrderHistoryQuery(orderCode kernel.OrderCode) (GetOrderHistoryQuery, error) {
	if err := orderCode.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{
		orderCode: orderCode,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderCode returns the code of the order whose history is requested.
func (q GetOrderHistoryQuery) OrderCode() kernel.OrderCode {
	return q.orderCode
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// GetOrderHistoryQueryResponse represents one entry in an order's log.
type GetOrderHistoryQueryResponse struct {
	EventType      order.LogEventType
	PreviousStatus order.Status
	NewStatus      order.Status
	Actor          string
	Note           string
	Timestamp      time.Time
}
