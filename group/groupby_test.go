package group

import (
	"strings"
	"testing"

	"github.com/arloliu/splitkit/accum"
	"github.com/arloliu/splitkit/split"
	"github.com/stretchr/testify/require"
)

func first(s string) byte  { return s[0] }
func second(s string) byte { return s[1] }

func TestGroupBy(t *testing.T) {
	objs := []string{"B2", "A1", "B1", "A2", "B3"}

	got := GroupBy(objs, first, func(g []string) string {
		var sb strings.Builder
		for _, s := range g {
			sb.WriteByte(s[1])
		}

		return sb.String()
	})

	// groups keep input order within each key
	require.Equal(t, map[byte]string{'A': "12", 'B': "213"}, got)
	require.Equal(t, []string{"B2", "A1", "B1", "A2", "B3"}, objs)
}

func TestGroupByList(t *testing.T) {
	got := GroupByList([]int{5, 2, 7, 4, 1}, func(v int) int { return v % 2 })

	require.Equal(t, map[int][]int{1: {5, 7, 1}, 0: {2, 4}}, got)
}

func TestGroupBy2(t *testing.T) {
	t.Run("single key field", func(t *testing.T) {
		got := GroupBy2([]string{"A1", "A2", "B1", "B2", "B3"}, first, second)

		require.Equal(t, []Group[byte, byte]{
			{Key: 'A', Values: []byte{'1', '2'}},
			{Key: 'B', Values: []byte{'1', '2', '3'}},
		}, got)
	})

	t.Run("composite key field", func(t *testing.T) {
		got := GroupBy2([]string{"A11", "A12", "B11", "B21"},
			func(s string) string { return s[:2] },
			func(s string) string { return s[2:] })

		require.Equal(t, []Group[string, string]{
			{Key: "A1", Values: []string{"1", "2"}},
			{Key: "B1", Values: []string{"1"}},
			{Key: "B2", Values: []string{"1"}},
		}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		require.Empty(t, GroupBy2([]string{}, first, second))
	})
}

func TestCountBy(t *testing.T) {
	got := CountBy([]string{"x", "y", "x", "z", "x"}, func(s string) string { return s })

	require.Equal(t, map[string]int{"x": 3, "y": 1, "z": 1}, got)
}

func TestDistinct(t *testing.T) {
	require.Equal(t, []int{3, 1, 2}, Distinct([]int{3, 1, 3, 2, 1}))
	require.Empty(t, Distinct([]int(nil)))
}

func TestGetIndices(t *testing.T) {
	got := GetIndices([]int{0, 0, 3, 3, 3, 2, 2, 0})

	require.Equal(t, map[int][]split.Slice{
		0: {{Start: 0, Stop: 2}, {Start: 7, Stop: 8}},
		3: {{Start: 2, Stop: 5}},
		2: {{Start: 5, Stop: 7}},
	}, got.Map())
	require.Equal(t, []int{0, 2, 3}, accum.SortedKeys(got))
}
