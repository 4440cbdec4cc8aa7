package services

import (
	"math"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
)

// PriceQuery is everything the price of a shipment depends on.
type PriceQuery struct {
	Route      kernel.Route
	PricePerKg kernel.Money
	Weight     kernel.Weight
	ItemType   string
	ItemSize   request.ItemSize
}

// FlatRatePricer charges a base fee, the trip's per-kilogram rate and a size
// surcharge. It has no side effects.
type FlatRatePricer struct {
	baseFee    kernel.Money
	surcharges map[request.ItemSize]kernel.Money
}

func NewFlatRatePricer(baseFee kernel.Money) FlatRatePricer {
	return FlatRatePricer{
		baseFee: baseFee,
		surcharges: map[request.ItemSize]kernel.Money{
			request.SizeSmall:  {},
			request.SizeMedium: mustMoney(500),
			request.SizeLarge:  mustMoney(1500),
		},
	}
}

func (p FlatRatePricer) Quote(q PriceQuery) (kernel.Money, error) {
	if err := q.Weight.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if err := q.ItemSize.Validate(); err != nil {
		return kernel.Money{}, err
	}

	perWeight := int64(math.Round(float64(q.PricePerKg.Cents()) * q.Weight.Kilograms()))
	weightCost, err := kernel.NewMoney(perWeight)
	if err != nil {
		return kernel.Money{}, err
	}

	return p.baseFee.Add(weightCost).Add(p.surcharges[q.ItemSize]), nil
}

func mustMoney(cents int64) kernel.Money {
	m, err := kernel.NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}
