package kernel

import (
	"fmt"
	"math"

	"parcel/internal/pkg/errs"
)

// Money is an amount in minor units (cents). Negative amounts are rejected.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", cents))
	}
	return Money{cents: cents}, nil
}

// MoneyFromMajor converts a decimal major-unit amount to the nearest cent.
func MoneyFromMajor(amount float64) (Money, error) {
	if amount < 0 {
		return NewMoney(-1)
	}
	return NewMoney(int64(math.Round(amount * 100)))
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Major() float64 {
	return float64(m.cents) / 100
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
