// Package triprepo persists trips and the capacity holds taken against them.
// Free capacity lives on the trip row and is only ever decremented by the
// capacity ledger.
package triprepo

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// TripDTO is the trips table. FreeGrams is kept consistent with the sum of
// the trip's holds.
type TripDTO struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TravelerID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Route           RouteDTO          `gorm:"embedded;embeddedPrefix:route_"`
	DepartureAt     time.Time         `gorm:"not null"`
	CapacityGrams   int64             `gorm:"not null;check:capacity_grams > 0"`
	FreeGrams       int64             `gorm:"not null;check:free_grams >= 0"`
	PricePerKgCents int64             `gorm:"not null"`
	CreatedAt       time.Time         `gorm:"not null"`
	Holds           []CapacityHoldDTO `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

func (TripDTO) TableName() string {
	return "trips"
}

type RouteDTO struct {
	Origin      string `gorm:"type:varchar(255);not null"`
	Destination string `gorm:"type:varchar(255);not null"`
}

// CapacityHoldDTO records the weight reserved on a trip by one accepted
// request. A hold outlives its request: cancelling never gives capacity
// back.
type CapacityHoldDTO struct {
	TripID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	WeightGrams int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (CapacityHoldDTO) TableName() string {
	return "capacity_holds"
}

func fromDomain(t *trip.Trip) TripDTO {
	return TripDTO{
		ID:         t.ID().Bytes(),
		TravelerID: t.TravelerID().Bytes(),
		Route: RouteDTO{
			Origin:      t.Route().Origin(),
			Destination: t.Route().Destination(),
		},
		DepartureAt:     t.DepartureAt(),
		CapacityGrams:   t.Capacity().Grams(),
		FreeGrams:       t.Free().Grams(),
		PricePerKgCents: t.PricePerKg().Cents(),
		CreatedAt:       t.CreatedAt(),
	}
}

func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	travelerID, err := kernel.UUIDFromBytes(dto.TravelerID[:])
	if err != nil {
		return nil, err
	}

	route, err := kernel.NewRoute(dto.Route.Origin, dto.Route.Destination)
	if err != nil {
		return nil, err
	}

	capacity, err := kernel.NewWeight(dto.CapacityGrams)
	if err != nil {
		return nil, err
	}

	free, err := kernel.NewWeight(dto.FreeGrams)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PricePerKgCents)
	if err != nil {
		return nil, err
	}

	return trip.RestoreTrip(id, travelerID, route, dto.DepartureAt, capacity, free, price, dto.CreatedAt)
}
