package outboxrepo

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/event"
	"parcel/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEventOutbox implements EventOutbox using GORM.
type GormEventOutbox struct {
	db *gorm.DB
}

func NewGormEventOutbox(db *gorm.DB) *GormEventOutbox {
	return &GormEventOutbox{db: db}
}

func (o *GormEventOutbox) Append(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, fromDomain(e))
	}
	return o.db.WithContext(ctx).Create(&dtos).Error
}

// Pending returns undelivered events oldest first. Rows are locked with
// SKIP LOCKED so concurrent relays never pick the same event.
func (o *GormEventOutbox) Pending(ctx context.Context, limit int) ([]event.Event, error) {
	var dtos []EventDTO
	err := o.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("delivered_at IS NULL").
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, e)
	}
	return events, nil
}

func (o *GormEventOutbox) MarkDelivered(ctx context.Context, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return o.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id IN ?", raw).
		Update("delivered_at", time.Now().UTC()).Error
}
