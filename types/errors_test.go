package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("errors.Is works correctly", func(t *testing.T) {
		require.True(t, errors.Is(ErrNegativeWeight, ErrNegativeWeight))
		require.False(t, errors.Is(ErrNegativeWeight, ErrKeyNotFound))

		wrapped := fmt.Errorf("%w: item %q got %v", ErrNegativeWeight, "A", -1)
		require.True(t, errors.Is(wrapped, ErrNegativeWeight))
	})

	t.Run("all errors are distinct", func(t *testing.T) {
		allErrors := []error{
			ErrInvalidConfig,
			ErrAssignmentStrategyRequired,
			ErrNoWorkersAvailable,
			ErrNegativeWeight,
			ErrLengthMismatch,
			ErrKeyNotFound,
			ErrInvalidIndex,
		}

		for i, a := range allErrors {
			for j, b := range allErrors {
				if i == j {
					continue
				}
				require.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	})
}

func TestIsConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"invalid config", ErrInvalidConfig, true},
		{"wrapped invalid config", fmt.Errorf("%w: max_weight=0", ErrInvalidConfig), true},
		{"strategy required", ErrAssignmentStrategyRequired, true},
		{"value error", ErrNegativeWeight, false},
		{"unrelated", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsConfigError(tt.err))
		})
	}
}
