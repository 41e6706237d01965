// Package productionrepo provides data transfer objects and mapping functions
// for the production ledger and the finished-cake inventory. Ledger rows are
// append-only; inventory rows are keyed by the (shape, size, flavor) triple.
package productionrepo

import (
	"encoding/json"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/production"

	"github.com/google/uuid"
)

// LogEntryDTO represents the database structure for one production ledger row.
type LogEntryDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Shape              string
	Size               string
	Flavor             string
	Quantity           int
	CompletedAt        time.Time `gorm:"index"`
	TaskID             *uuid.UUID `gorm:"type:uuid"`
	Cancelled          bool
	CancellationReason string
	Baker              string
	Notes              string
	QualityChecks      []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for ledger rows.
func (LogEntryDTO) TableName() string {
	return "production_log_entries"
}

// InventoryItemDTO represents the database structure for one stocked
// combination.
type InventoryItemDTO struct {
	Shape    string `gorm:"primaryKey"`
	Size     string `gorm:"primaryKey"`
	Flavor   string `gorm:"primaryKey"`
	Quantity int
}

// TableName specifies the database table name for inventory rows.
func (InventoryItemDTO) TableName() string {
	return "inventory_items"
}

type qualityCheckJSON struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// logEntryFromDomain converts a ledger entry to its database representation.
func logEntryFromDomain(entry *production.LogEntry) (LogEntryDTO, error) {
	checks := make([]qualityCheckJSON, 0, len(entry.QualityChecks()))
	for _, qc := range entry.QualityChecks() {
		checks = append(checks, qualityCheckJSON{Name: qc.Name, Passed: qc.Passed})
	}

	checksRaw, err := json.Marshal(checks)
	if err != nil {
		return LogEntryDTO{}, err
	}

	var taskID *uuid.UUID
	if id := entry.TaskID(); id != nil {
		raw := id.Bytes()
		taskID = &raw
	}

	return LogEntryDTO{
		ID:                 entry.ID().Bytes(),
		Shape:              entry.Key().Shape,
		Size:               entry.Key().Size,
		Flavor:             entry.Key().Flavor,
		Quantity:           entry.Quantity(),
		CompletedAt:        entry.CompletedAt(),
		TaskID:             taskID,
		Cancelled:          entry.Cancelled(),
		CancellationReason: entry.CancellationReason(),
		Baker:              entry.Baker(),
		Notes:              entry.Notes(),
		QualityChecks:      checksRaw,
	}, nil
}

// logEntryToDomain converts a database row back to a ledger entry.
func logEntryToDomain(dto LogEntryDTO) (*production.LogEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var taskID *kernel.UUID
	if dto.TaskID != nil {
		tID, tErr := kernel.UUIDFromBytes((*dto.TaskID)[:])
		if tErr != nil {
			return nil, tErr
		}
		taskID = &tID
	}

	var checkDocs []qualityCheckJSON
	if len(dto.QualityChecks) > 0 {
		if err = json.Unmarshal(dto.QualityChecks, &checkDocs); err != nil {
			return nil, err
		}
	}
	checks := make([]production.QualityCheck, 0, len(checkDocs))
	for _, qc := range checkDocs {
		checks = append(checks, production.QualityCheck{Name: qc.Name, Passed: qc.Passed})
	}

	return production.RestoreLogEntry(
		id,
		order.SpecKey{Shape: dto.Shape, Size: dto.Size, Flavor: dto.Flavor},
		dto.Quantity,
		dto.CompletedAt,
		taskID,
		dto.Cancelled,
		dto.CancellationReason,
		dto.Baker,
		dto.Notes,
		checks,
	)
}

// inventoryItemFromDomain converts a stock record to its database
// representation.
func inventoryItemFromDomain(item *production.InventoryItem) InventoryItemDTO {
	return InventoryItemDTO{
		Shape:    item.Key().Shape,
		Size:     item.Key().Size,
		Flavor:   item.Key().Flavor,
		Quantity: item.Quantity(),
	}
}

// inventoryItemToDomain converts a database row back to a stock record.
func inventoryItemToDomain(dto InventoryItemDTO) (*production.InventoryItem, error) {
	return production.RestoreInventoryItem(
		order.SpecKey{Shape: dto.Shape, Size: dto.Size, Flavor: dto.Flavor},
		dto.Quantity,
	)
}
