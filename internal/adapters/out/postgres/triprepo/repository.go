package triprepo

import (
	"context"
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/trip"
	"bakeflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTripRepository implements TripRepository using GORM.
type GormTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormTripRepository creates a new GORM trip repository.
func NewGormTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return &GormTripRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new trip and its member rows to the database.
func (r *GormTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, members := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&header).Error; err != nil {
		return err
	}
	if len(members) > 0 {
		if err := r.db.WithContext(ctx).Create(&members).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update saves an existing trip. Member rows are replaced wholesale so the
// stored sequence always matches the aggregate's.
func (r *GormTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, members := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&TripDTO{}).
		Where("id = ?", header.ID).
		Select("*").
		Omit("id").
		Updates(&header)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).Delete(&TripOrderDTO{}, "trip_id = ?", header.ID).Error; err != nil {
		return err
	}
	if len(members) > 0 {
		if err := r.db.WithContext(ctx).Create(&members).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Get retrieves a trip by ID, including its membership and sequence.
func (r *GormTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TripDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trip", id.String())
		}
		return nil, err
	}

	members, err := r.membersOf(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, members)
}

// GetAll retrieves trips, optionally restricted to one calendar date.
// A zero date means no filter.
func (r *GormTripRepository) GetAll(ctx context.Context, date time.Time) ([]*trip.Trip, error) {
	query := r.db.WithContext(ctx).Order("date, name")
	if !date.IsZero() {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		query = query.Where("date >= ? AND date < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	var dtos []TripDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	trips := make([]*trip.Trip, 0, len(dtos))
	for _, dto := range dtos {
		members, err := r.membersOf(ctx, dto.ID)
		if err != nil {
			return nil, err
		}
		t, err := toDomain(dto, members)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}

	return trips, nil
}

// Delete removes a trip and its member rows from storage.
func (r *GormTripRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&TripOrderDTO{}, "trip_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&TripDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trip", id.String())
	}

	return nil
}

func (r *GormTripRepository) membersOf(ctx context.Context, tripID uuid.UUID) ([]TripOrderDTO, error) {
	var members []TripOrderDTO
	err := r.db.WithContext(ctx).
		Order("sequence").
		Find(&members, "trip_id = ?", tripID).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
