package orderrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.Code().String(), aggregate)
	return nil
}

// Update saves an existing order to the database. The order's log is not
// touched; log entries are persisted through AppendLog only.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("code = ?", dto.Code).
		Select("*").
		Omit("code").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.Code().String(), aggregate)
	return nil
}

// Get retrieves an order by its shop-assigned code, including its log.
func (r *GormOrderRepository) Get(ctx context.Context, code kernel.OrderCode) (*order.Order, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", code.String())
		}
		return nil, err
	}

	var logRows []OrderLogEntryDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at, id").
		Find(&logRows, "order_code = ?", code.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, logRows)
}

// GetAll retrieves every order, optionally filtered to non-terminal ones.
// List reads skip the per-order log; use Get for the full aggregate.
func (r *GormOrderRepository) GetAll(ctx context.Context, activeOnly bool) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).Order("code")
	if activeOnly {
		query = query.Where("status NOT IN (?, ?)", order.Cancelled.String(), order.Archived.String())
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllProductionRelevant retrieves the orders that feed baking-task
// aggregation: in-queue orders plus in-kitchen orders still waiting for
// the baker.
func (r *GormOrderRepository) GetAllProductionRelevant(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where(
			"status = ? OR (status = ? AND kitchen_status = ?)",
			order.InQueue.String(), order.InKitchen.String(), order.WaitingBaker.String(),
		).
		Order("code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllByTrip retrieves the orders whose trip mirror points at the trip.
func (r *GormOrderRepository) GetAllByTrip(ctx context.Context, tripID kernel.UUID) ([]*order.Order, error) {
	if err := tripID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("trip_sequence").
		Find(&dtos, "trip_id = ?", tripID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// AppendLog inserts one event into the order's append-only log.
func (r *GormOrderRepository) AppendLog(ctx context.Context, code kernel.OrderCode, event order.LogEvent) error {
	if err := code.Validate(); err != nil {
		return err
	}

	row := logEventFromDomain(code, event)
	return r.db.WithContext(ctx).Create(&row).Error
}

// NextCode returns the next free order code for the month. Codes are
// zero-padded, so the lexicographic maximum is also the numeric maximum.
func (r *GormOrderRepository) NextCode(ctx context.Context, month, year int) (kernel.OrderCode, error) {
	if month < 1 || month > 12 {
		return kernel.OrderCode{}, errs.NewValueIsOutOfRangeError("month", month, 1, 12)
	}
	if year < 0 || year > 99 {
		return kernel.OrderCode{}, errs.NewValueIsOutOfRangeError("year", year, 0, 99)
	}

	prefix := fmt.Sprintf("%02d-%02d-", month, year)

	var last sql.NullString
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("MAX(code)").
		Where("code LIKE ?", prefix+"%").
		Scan(&last).Error
	if err != nil {
		return kernel.OrderCode{}, err
	}

	if !last.Valid {
		return kernel.NewOrderCode(month, year, 1)
	}

	lastCode, err := kernel.OrderCodeFromString(last.String)
	if err != nil {
		return kernel.OrderCode{}, err
	}
	return lastCode.Next()
}

// toDomainAll converts a batch of rows without their logs.
func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto, nil)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
