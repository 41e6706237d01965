// Package taskrepo provides data transfer objects and mapping functions for
// baking task persistence. Tasks are small aggregates, so the linked order
// codes are stored inline as a JSON document rather than a join table.
package taskrepo

import (
	"encoding/json"
	"time"

	"bakeflow/internal/core/domain/model/bakingtask"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// TaskDTO represents the database structure for persisting baking tasks.
type TaskDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Shape              string
	Size               string
	Flavor             string
	Quantity           int
	QuantityCompleted  int
	Status             string `gorm:"index"`
	DueDate            time.Time
	OrderCodes         []byte `gorm:"type:jsonb"`
	IsManual           bool
	IsPriority         bool
	CancellationReason string
}

// TableName specifies the database table name for baking tasks.
func (TaskDTO) TableName() string {
	return "baking_tasks"
}

// fromDomain converts a task aggregate to its database representation.
func fromDomain(aggregate *bakingtask.Task) (TaskDTO, error) {
	codes := make([]string, 0, len(aggregate.OrderCodes()))
	for _, code := range aggregate.OrderCodes() {
		codes = append(codes, code.String())
	}

	codesRaw, err := json.Marshal(codes)
	if err != nil {
		return TaskDTO{}, err
	}

	return TaskDTO{
		ID:                 aggregate.ID().Bytes(),
		Shape:              aggregate.Key().Shape,
		Size:               aggregate.Key().Size,
		Flavor:             aggregate.Key().Flavor,
		Quantity:           aggregate.Quantity(),
		QuantityCompleted:  aggregate.QuantityCompleted(),
		Status:             aggregate.Status().String(),
		DueDate:            aggregate.DueDate(),
		OrderCodes:         codesRaw,
		IsManual:           aggregate.IsManual(),
		IsPriority:         aggregate.IsPriority(),
		CancellationReason: aggregate.CancellationReason(),
	}, nil
}

// toDomain converts a database DTO back to a task aggregate.
func toDomain(dto TaskDTO) (*bakingtask.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := bakingtask.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var codeStrs []string
	if len(dto.OrderCodes) > 0 {
		if err = json.Unmarshal(dto.OrderCodes, &codeStrs); err != nil {
			return nil, err
		}
	}
	codes := make([]kernel.OrderCode, 0, len(codeStrs))
	for _, s := range codeStrs {
		code, codeErr := kernel.OrderCodeFromString(s)
		if codeErr != nil {
			return nil, codeErr
		}
		codes = append(codes, code)
	}

	return bakingtask.RestoreTask(
		id,
		order.SpecKey{Shape: dto.Shape, Size: dto.Size, Flavor: dto.Flavor},
		dto.Quantity,
		dto.QuantityCompleted,
		status,
		dto.DueDate,
		codes,
		dto.IsManual,
		dto.IsPriority,
		dto.CancellationReason,
	)
}
