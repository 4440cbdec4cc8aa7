package ports

import (
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/services"
)

// Pricer is a pure price function.
type Pricer interface {
	Quote(q services.PriceQuery) (kernel.Money, error)
}
