package productionrepo

import (
	"context"
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/production"
	"bakeflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductionLogRepository implements ProductionLogRepository using GORM.
type GormProductionLogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormProductionLogRepository creates a new GORM production ledger repository.
func NewGormProductionLogRepository(db *gorm.DB, tracker aggregateTracker) *GormProductionLogRepository {
	return &GormProductionLogRepository{
		db:      db,
		tracker: tracker,
	}
}

// Append inserts one ledger row. Ledger rows are never updated or deleted.
func (r *GormProductionLogRepository) Append(ctx context.Context, entry *production.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := logEntryFromDomain(entry)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID().String(), entry)
	return nil
}

// GetAll retrieves ledger entries, newest first. A non-zero from/to pair
// restricts the result to runs completed inside the window.
func (r *GormProductionLogRepository) GetAll(ctx context.Context, from, to time.Time) ([]*production.LogEntry, error) {
	query := r.db.WithContext(ctx).Order("completed_at DESC")
	if !from.IsZero() {
		query = query.Where("completed_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("completed_at <= ?", to)
	}

	var dtos []LogEntryDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*production.LogEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := logEntryToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Upsert persists the stock record, inserting it on first write.
func (r *GormInventoryRepository) Upsert(ctx context.Context, item *production.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := inventoryItemFromDomain(item)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shape"}, {Name: "size"}, {Name: "flavor"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(&dto).Error
}

// Get retrieves the stock record for one spec triple.
func (r *GormInventoryRepository) Get(ctx context.Context, key order.SpecKey) (*production.InventoryItem, error) {
	var dto InventoryItemDTO
	err := r.db.WithContext(ctx).
		First(&dto, "shape = ? AND size = ? AND flavor = ?", key.Shape, key.Size, key.Flavor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory item", key.String())
		}
		return nil, err
	}

	return inventoryItemToDomain(dto)
}

// GetAll retrieves every stock record.
func (r *GormInventoryRepository) GetAll(ctx context.Context) ([]*production.InventoryItem, error) {
	var dtos []InventoryItemDTO
	err := r.db.WithContext(ctx).
		Order("shape, size, flavor").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make([]*production.InventoryItem, 0, len(dtos))
	for _, dto := range dtos {
		item, itemErr := inventoryItemToDomain(dto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return items, nil
}
