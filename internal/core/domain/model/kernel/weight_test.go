package kernel_test

import (
	"math"
	"testing"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeight(t *testing.T) {
	tests := []struct {
		name    string
		grams   int64
		wantErr error
	}{
		{name: "zero", grams: 0},
		{name: "typical", grams: 2500},
		{name: "max", grams: kernel.MaxWeightGrams},
		{name: "negative", grams: -1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "above max", grams: kernel.MaxWeightGrams + 1, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := kernel.NewWeight(tt.grams)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, w.Validate())
			assert.Equal(t, tt.grams, w.Grams())
		})
	}
}

func TestWeightFromKilograms(t *testing.T) {
	w, err := kernel.WeightFromKilograms(2.3456)
	require.NoError(t, err)
	assert.Equal(t, int64(2346), w.Grams())
	assert.InDelta(t, 2.346, w.Kilograms(), 1e-9)

	_, err = kernel.WeightFromKilograms(math.NaN())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestWeight_Arithmetic(t *testing.T) {
	five := kernel.MustWeight(5000)
	three := kernel.MustWeight(3000)

	assert.True(t, five.Covers(three))
	assert.False(t, three.Covers(five))

	left, err := five.Sub(three)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), left.Grams())

	_, err = left.Sub(three)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	sum, err := left.Add(three)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), sum.Grams())
	assert.Equal(t, "5.000kg", sum.String())
}

func TestWeight_ZeroValueIsInvalid(t *testing.T) {
	var w kernel.Weight

	require.ErrorIs(t, w.Validate(), kernel.ErrWeightIsNotConstructed)
	_, err := w.Add(kernel.MustWeight(1))
	require.Error(t, err)
}
