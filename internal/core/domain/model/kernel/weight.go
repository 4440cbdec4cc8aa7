package kernel

import (
	"errors"
	"fmt"
	"math"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

const (
	// GramsPerKilogram converts API kilograms to stored grams.
	GramsPerKilogram = 1000

	// MaxWeightGrams bounds any single weight, a trip capacity included.
	MaxWeightGrams int64 = 1_000_000
)

var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError(
	"weight must be created via NewWeight or WeightFromKilograms")

// Weight is a non-negative mass in whole grams. Kilograms only appear at the
// API edge.
//
// Trip capacity, free capacity and shipment weights all use Weight, bounded
// by MaxWeightGrams. Sub never goes below zero; it returns a
// ValueIsOutOfRangeError when other is heavier than w.
//
// Example:
//
//	free := kernel.MustWeight(5000)
//	parcel, err := kernel.WeightFromKilograms(3.2)
//	if !free.Covers(parcel) {
//	    // the trip cannot carry it
//	}
//	rest, err := free.Sub(parcel) // 1800 g
type Weight struct { //nolint:recvcheck //using for validation
	grams int64
	guard guard.ConstructorGuard
}

func NewWeight(grams int64) (Weight, error) {
	w := Weight{guard: guard.NewConstructorGuard()}
	if err := w.setGrams(grams); err != nil {
		return Weight{}, err
	}
	return w, nil
}

// WeightFromKilograms rounds kg to the nearest gram.
func WeightFromKilograms(kg float64) (Weight, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not a number", kg))
	}
	return NewWeight(int64(math.Round(kg * GramsPerKilogram)))
}

// MustWeight panics on invalid input. Intended for constants and tests.
func MustWeight(grams int64) Weight {
	w, err := NewWeight(grams)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}

func (w Weight) Grams() int64 {
	return w.grams
}

func (w Weight) Kilograms() float64 {
	return float64(w.grams) / GramsPerKilogram
}

func (w Weight) IsZero() bool {
	return w.grams == 0
}

// Covers reports whether w is at least other.
func (w Weight) Covers(other Weight) bool {
	return w.grams >= other.grams
}

// Sub returns w minus other. The result is never negative.
func (w Weight) Sub(other Weight) (Weight, error) {
	if err := errors.Join(w.Validate(), other.Validate()); err != nil {
		return Weight{}, err
	}
	if !w.Covers(other) {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight", w.grams-other.grams, 0, MaxWeightGrams)
	}
	return NewWeight(w.grams - other.grams)
}

func (w Weight) Add(other Weight) (Weight, error) {
	if err := errors.Join(w.Validate(), other.Validate()); err != nil {
		return Weight{}, err
	}
	return NewWeight(w.grams + other.grams)
}

func (w Weight) String() string {
	return fmt.Sprintf("%.3fkg", w.Kilograms())
}

func (w *Weight) setGrams(grams int64) error {
	if grams < 0 || grams > MaxWeightGrams {
		return errs.NewValueIsOutOfRangeError("weight", grams, 0, MaxWeightGrams)
	}
	w.grams = grams
	return nil
}
