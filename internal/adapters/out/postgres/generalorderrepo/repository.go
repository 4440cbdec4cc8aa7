package generalorderrepo

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/generalorder"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormGeneralOrderRepository implements GeneralOrderRepository using GORM.
type GormGeneralOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormGeneralOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormGeneralOrderRepository {
	return &GormGeneralOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new general order.
func (r *GormGeneralOrderRepository) Add(ctx context.Context, aggregate *generalorder.GeneralOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the order only if its stored status is still expected.
func (r *GormGeneralOrderRepository) Update(
	ctx context.Context,
	aggregate *generalorder.GeneralOrder,
	expected generalorder.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&GeneralOrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("traveler_id", "status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, aggregate.ID()); err != nil {
			return err
		}
		return errs.NewConflictError("general order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a general order by ID.
func (r *GormGeneralOrderRepository) Get(ctx context.Context, id kernel.UUID) (*generalorder.GeneralOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GeneralOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("general order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
