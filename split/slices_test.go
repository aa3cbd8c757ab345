package split

import (
	"slices"
	"testing"

	"github.com/arloliu/splitkit/types"
	"github.com/stretchr/testify/require"
)

func TestSplitInSlices(t *testing.T) {
	tests := []struct {
		name string
		n, k int
		want []Slice
	}{
		{"even", 4, 2, []Slice{{0, 2}, {2, 4}}},
		{"single", 5, 1, []Slice{{0, 5}}},
		{"remainder", 5, 2, []Slice{{0, 3}, {3, 5}}},
		{"more slices than items", 2, 4, []Slice{{0, 1}, {1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitInSlices(tt.n, tt.k)

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSplitInSlices_Coverage(t *testing.T) {
	for n := 1; n <= 40; n++ {
		for k := 1; k <= 12; k++ {
			got, err := SplitInSlices(n, k)
			require.NoError(t, err)

			require.LessOrEqual(t, len(got), k)
			require.Equal(t, 0, got[0].Start)
			require.Equal(t, n, got[len(got)-1].Stop)
			for i := 1; i < len(got); i++ {
				require.Equal(t, got[i-1].Stop, got[i].Start, "n=%d k=%d", n, k)
			}
			for _, s := range got {
				require.Positive(t, s.Len())
			}
		}
	}
}

func TestSplitInSlices_Invalid(t *testing.T) {
	_, err := SplitInSlices(0, 2)
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	_, err = SplitInSlices(3, 0)
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	_, err = SplitCount(3, -1)
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestSplitCount(t *testing.T) {
	got, err := SplitCount(5, 2)

	require.NoError(t, err)
	require.Equal(t, []Slice{{0, 3}, {3, 5}}, got)
}

func TestGenSlices(t *testing.T) {
	seq, err := GenSlices(1, 6, 2)
	require.NoError(t, err)

	require.Equal(t, []Slice{{1, 3}, {3, 5}, {5, 6}}, slices.Collect(seq))
	require.Equal(t, "[1, 3)", Slice{1, 3}.String())

	empty, err := GenSlices(4, 4, 2)
	require.NoError(t, err)
	require.Empty(t, slices.Collect(empty))

	_, err = GenSlices(5, 1, 2)
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	_, err = GenSlices(0, 1, 0)
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestCeil(t *testing.T) {
	got, err := Ceil(7, 2)
	require.NoError(t, err)
	require.Equal(t, 4, got)

	got, err = Ceil(6, 2)
	require.NoError(t, err)
	require.Equal(t, 3, got)

	got, err = Ceil(-3, 2)
	require.NoError(t, err)
	require.Equal(t, -1, got)

	_, err = Ceil(1, 0)
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}
