package guard_test

import (
	"errors"
	"testing"

	"tableside/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("guard_can_be_safely_passed_by_value", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		testError := errors.New("test error")

		guardCopy := g

		require.NoError(t, g.Validate(testError))
		require.NoError(t, guardCopy.Validate(testError))
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type price struct {
		cents int64
		guard guard.ConstructorGuard
	}

	var errPriceNotConstructed = errors.New("price must be created via newPrice")

	newPrice := func(cents int64) (price, error) {
		if cents < 0 {
			return price{}, errors.New("cents cannot be negative")
		}
		return price{cents: cents, guard: guard.NewConstructorGuard()}, nil
	}

	validatePrice := func(p price) error {
		return p.guard.Validate(errPriceNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		p, err := newPrice(1250)

		require.NoError(t, err)
		require.NoError(t, validatePrice(p))
		assert.Equal(t, int64(1250), p.cents)
	})

	t.Run("zero_value_construction_fails_validation", func(t *testing.T) {
		var p price // zero value

		err := validatePrice(p)

		require.Error(t, err)
		assert.Equal(t, errPriceNotConstructed, err)
	})
}
