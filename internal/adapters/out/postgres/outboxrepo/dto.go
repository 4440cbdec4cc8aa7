// Package outboxrepo stores lifecycle events next to the state changes that
// produced them and hands them to the relay.
package outboxrepo

import (
	"time"

	"parcel/internal/core/domain/model/event"
	"parcel/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type EventDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type        string            `gorm:"type:varchar(64);not null"`
	ActorID     *uuid.UUID        `gorm:"type:uuid"`
	Attributes  map[string]string `gorm:"type:jsonb;serializer:json"`
	OccurredAt  time.Time         `gorm:"not null;index"`
	DeliveredAt *time.Time        `gorm:"index"`
}

func (EventDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(e event.Event) EventDTO {
	dto := EventDTO{
		ID:          e.ID.Bytes(),
		AggregateID: e.AggregateID.Bytes(),
		Type:        string(e.Type),
		Attributes:  e.Attributes,
		OccurredAt:  e.OccurredAt,
	}
	// system-initiated events carry no actor
	if !e.ActorID.IsZero() {
		raw := e.ActorID.Bytes()
		dto.ActorID = &raw
	}
	return dto
}

func toDomain(dto EventDTO) (event.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return event.Event{}, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return event.Event{}, err
	}

	var actorID kernel.UUID
	if dto.ActorID != nil {
		if actorID, err = kernel.UUIDFromBytes((*dto.ActorID)[:]); err != nil {
			return event.Event{}, err
		}
	}

	attrs := dto.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}

	return event.Event{
		ID:          id,
		AggregateID: aggregateID,
		Type:        event.Type(dto.Type),
		ActorID:     actorID,
		Attributes:  attrs,
		OccurredAt:  dto.OccurredAt,
	}, nil
}
