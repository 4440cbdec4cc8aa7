package triprepo

import (
	"context"
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCapacityLedger decrements free capacity with a single conditional
// UPDATE. Postgres serialises concurrent updates of one row, and the second
// writer re-evaluates the free_grams predicate against the committed value,
// so two reservations can never both succeed past the remaining capacity.
type GormCapacityLedger struct {
	db *gorm.DB
}

func NewGormCapacityLedger(db *gorm.DB) *GormCapacityLedger {
	return &GormCapacityLedger{db: db}
}

func (l *GormCapacityLedger) Reserve(ctx context.Context, tripID, requestID kernel.UUID, weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}

	db := l.db.WithContext(ctx)
	result := db.Model(&TripDTO{}).
		Where("id = ? AND free_grams >= ?", tripID.Bytes(), weight.Grams()).
		UpdateColumn("free_grams", gorm.Expr("free_grams - ?", weight.Grams()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return l.refusal(ctx, tripID, weight)
	}

	hold := CapacityHoldDTO{
		TripID:      tripID.Bytes(),
		RequestID:   requestID.Bytes(),
		WeightGrams: weight.Grams(),
		CreatedAt:   time.Now().UTC(),
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&hold).Error
}

// Held returns the total weight reserved on a trip.
func (l *GormCapacityLedger) Held(ctx context.Context, tripID kernel.UUID) (kernel.Weight, error) {
	var grams int64
	err := l.db.WithContext(ctx).Model(&CapacityHoldDTO{}).
		Where("trip_id = ?", tripID.Bytes()).
		Select("COALESCE(SUM(weight_grams), 0)").
		Scan(&grams).Error
	if err != nil {
		return kernel.Weight{}, err
	}
	return kernel.NewWeight(grams)
}

// refusal tells a missing trip apart from one without room.
func (l *GormCapacityLedger) refusal(ctx context.Context, tripID kernel.UUID, weight kernel.Weight) error {
	var dto TripDTO
	err := l.db.WithContext(ctx).Select("id", "free_grams").First(&dto, "id = ?", tripID.Bytes()).Error
	switch {
	case err == nil:
		return errs.NewInsufficientCapacityError(tripID.String(), weight.Grams(), dto.FreeGrams)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundError("trip", tripID.String())
	default:
		return err
	}
}
