// Package generalorderrepo persists general orders. Updates are conditional
// on the status the caller read, which makes claiming first-writer-wins.
package generalorderrepo

import (
	"time"

	"parcel/internal/core/domain/model/generalorder"
	"parcel/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type GeneralOrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SenderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	TravelerID  *uuid.UUID `gorm:"type:uuid;index"`
	Route       RouteDTO   `gorm:"embedded;embeddedPrefix:route_"`
	WeightGrams int64      `gorm:"not null"`
	Description string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(16);not null;index"`
	CreatedAt   time.Time  `gorm:"not null"`
}

func (GeneralOrderDTO) TableName() string {
	return "general_orders"
}

type RouteDTO struct {
	Origin      string `gorm:"type:varchar(255);not null"`
	Destination string `gorm:"type:varchar(255);not null"`
}

func fromDomain(o *generalorder.GeneralOrder) GeneralOrderDTO {
	var travelerID *uuid.UUID
	if id := o.TravelerID(); id != nil {
		raw := id.Bytes()
		travelerID = &raw
	}

	return GeneralOrderDTO{
		ID:         o.ID().Bytes(),
		SenderID:   o.SenderID().Bytes(),
		TravelerID: travelerID,
		Route: RouteDTO{
			Origin:      o.Route().Origin(),
			Destination: o.Route().Destination(),
		},
		WeightGrams: o.Weight().Grams(),
		Description: o.Description(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
	}
}

func toDomain(dto GeneralOrderDTO) (*generalorder.GeneralOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	var travelerID *kernel.UUID
	if dto.TravelerID != nil {
		tID, travelerErr := kernel.UUIDFromBytes((*dto.TravelerID)[:])
		if travelerErr != nil {
			return nil, travelerErr
		}
		travelerID = &tID
	}

	route, err := kernel.NewRoute(dto.Route.Origin, dto.Route.Destination)
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.WeightGrams)
	if err != nil {
		return nil, err
	}

	status, err := generalorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return generalorder.RestoreGeneralOrder(id, senderID, travelerID, route, weight, dto.Description, status, dto.CreatedAt)
}
