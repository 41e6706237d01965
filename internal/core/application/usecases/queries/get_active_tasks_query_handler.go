package queries

import (
	"context"
	"encoding/json"
	"time"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveTasksQueryHandler retrieves pending and in-progress baking tasks
// from the database. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
//
// Example:
//
//	handler := NewGetActiveTasksQueryHandler(db)
//	query := NewGetActiveTasksQuery()
//
//	tasks, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active tasks: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d active tasks\n", len(tasks))
type GetActiveTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveTasksQueryHandler creates a handler for active task queries.
// Requires a GORM database connection for query execution.
func NewGetActiveTasksQueryHandler(db *gorm.DB) GetActiveTasksQueryHandler {
	return GetActiveTasksQueryHandler{db: db}
}

// Handle executes the query to retrieve active baking tasks.
// Priority tasks come first, then earliest due date.
// Converts database types to domain types for consistency.
func (h GetActiveTasksQueryHandler) Handle(
	ctx context.Context,
	query GetActiveTasksQuery,
) ([]GetActiveTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tasks := make([]GetActiveTasksQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shape,
			size,
			flavor,
			quantity,
			quantity_completed,
			status,
			due_date,
			order_codes,
			is_manual,
			is_priority
		FROM baking_tasks
		WHERE status IN (?, ?)
		ORDER BY is_priority DESC, due_date
	`, bakingtask.Pending.String(), bakingtask.InProgress.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var task GetActiveTasksQueryResponse
		var id uuid.UUID
		var status string
		var dueDate time.Time
		var rawCodes []byte

		err = rows.Scan(
			&id,
			&task.Key.Shape,
			&task.Key.Size,
			&task.Key.Flavor,
			&task.Quantity,
			&task.QuantityCompleted,
			&status,
			&dueDate,
			&rawCodes,
			&task.IsManual,
			&task.IsPriority,
		)
		if err != nil {
			return nil, err
		}

		taskID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		task.ID = taskID

		taskStatus, statusErr := bakingtask.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		task.Status = taskStatus
		task.DueDate = dueDate

		codes, codesErr := decodeOrderCodes(rawCodes)
		if codesErr != nil {
			return nil, codesErr
		}
		task.OrderCodes = codes

		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// decodeOrderCodes parses the JSON array of order codes stored alongside a
// task. A NULL column is treated as an empty list, which is what manual
// tasks carry.
func decodeOrderCodes(raw []byte) ([]kernel.OrderCode, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var strs []string
	if err := json.Unmarshal(raw, &strs); err != nil {
		return nil, err
	}

	codes := make([]kernel.OrderCode, 0, len(strs))
	for _, s := range strs {
		code, err := kernel.OrderCodeFromString(s)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	return codes, nil
}
