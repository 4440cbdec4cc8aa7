package guard_test

import (
	"errors"
	"testing"

	"parcel/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errQuoteNotConstructed := errors.New("Quote must be created via NewQuote")

	type Quote struct {
		grams int64
		guard guard.ConstructorGuard
	}

	newQuote := func(grams int64) (Quote, error) {
		if grams <= 0 {
			return Quote{}, errors.New("grams must be positive")
		}
		return Quote{grams: grams, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("via_constructor", func(t *testing.T) {
		q, err := newQuote(2500)

		require.NoError(t, err)
		require.NoError(t, q.guard.Validate(errQuoteNotConstructed))
		assert.Equal(t, int64(2500), q.grams)
	})

	t.Run("zero_value", func(t *testing.T) {
		var q Quote

		assert.Equal(t, errQuoteNotConstructed, q.guard.Validate(errQuoteNotConstructed))
	})

	t.Run("constructor_rejects_invalid_input", func(t *testing.T) {
		_, err := newQuote(0)

		require.EqualError(t, err, "grams must be positive")
	})
}
