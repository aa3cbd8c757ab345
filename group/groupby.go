package group

import (
	"cmp"
	"iter"
	"slices"

	"github.com/arloliu/splitkit/accum"
	"github.com/arloliu/splitkit/split"
)

// Group is one key with the values collected for it, in input order.
type Group[K any, V any] struct {
	Key    K
	Values []V
}

// GroupBy sorts a copy of objs by key (stable) and reduces every group of
// equal keys.
//
// Parameters:
//   - objs: Input objects; never modified
//   - key: Key extractor
//   - reduce: Reducer applied to each group, in input order within the group
//
// Returns:
//   - map[K]R: Reduced value per key
func GroupBy[T any, K cmp.Ordered, R any](objs []T, key func(T) K, reduce func([]T) R) map[K]R {
	out := make(map[K]R)
	for k, group := range sortedGroups(objs, key) {
		out[k] = reduce(group)
	}

	return out
}

// GroupByList groups objs by key, keeping the members of each group.
func GroupByList[T any, K cmp.Ordered](objs []T, key func(T) K) map[K][]T {
	return GroupBy(objs, key, func(g []T) []T { return g })
}

// GroupBy2 groups records by a key field and collects a value field, returning
// the groups in ascending key order.
//
//	GroupBy2([]string{"A1", "A2", "B1"}, first, second)
//	// [{A [1 2]} {B [1]}]
func GroupBy2[T any, K cmp.Ordered, V any](records []T, kfield func(T) K, vfield func(T) V) []Group[K, V] {
	var out []Group[K, V]
	for k, group := range sortedGroups(records, kfield) {
		vals := make([]V, len(group))
		for i, r := range group {
			vals[i] = vfield(r)
		}
		out = append(out, Group[K, V]{Key: k, Values: vals})
	}

	return out
}

// CountBy returns the number of objects per key.
func CountBy[T any, K cmp.Ordered](objs []T, key func(T) K) map[K]int {
	return GroupBy(objs, key, func(g []T) int { return len(g) })
}

// Distinct returns the keys in order of first appearance, without repeats.
func Distinct[K comparable](keys []K) []K {
	seen := make(map[K]struct{}, len(keys))
	out := make([]K, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	return out
}

// GetIndices maps every value to the half-open ranges where it appears as a
// contiguous run.
//
//	GetIndices([]int{0, 0, 3, 3, 3, 2, 2, 0})
//	// {0: [[0, 2) [7, 8)], 3: [[2, 5)], 2: [[5, 7)]}
func GetIndices[K comparable](values []K) *accum.Dict[K, []split.Slice] {
	indices := accum.New[K](accum.SliceOps[split.Slice](), accum.WithFactory(func() []split.Slice { return nil }))

	start := 0
	for start < len(values) {
		stop := start + 1
		for stop < len(values) && values[stop] == values[start] {
			stop++
		}
		_ = indices.Update(values[start], func(runs []split.Slice) []split.Slice {
			return append(runs, split.Slice{Start: start, Stop: stop})
		})
		start = stop
	}

	return indices
}

// sortedGroups yields each key with its members in ascending key order.
func sortedGroups[T any, K cmp.Ordered](objs []T, key func(T) K) iter.Seq2[K, []T] {
	type keyed struct {
		k   K
		obj T
	}
	sorted := make([]keyed, len(objs))
	for i, o := range objs {
		sorted[i] = keyed{k: key(o), obj: o}
	}
	slices.SortStableFunc(sorted, func(a, b keyed) int { return cmp.Compare(a.k, b.k) })

	return func(yield func(K, []T) bool) {
		for i := 0; i < len(sorted); {
			j := i + 1
			for j < len(sorted) && sorted[j].k == sorted[i].k {
				j++
			}
			group := make([]T, 0, j-i)
			for _, e := range sorted[i:j] {
				group = append(group, e.obj)
			}
			if !yield(sorted[i].k, group) {
				return
			}
			i = j
		}
	}
}
