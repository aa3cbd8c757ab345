package split

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/splitkit/types"
	"github.com/arloliu/splitkit/weighted"
)

// SplitInBlocks splits items into about hint weight-balanced chunks.
//
// The items are sorted by (key, weight) on a copy, the weight bound is set to
// ceil(totalWeight / hint), and the sorted items go through BlockSplitter.
// Keys can fragment the weight distribution, so more than hint chunks may come
// out.
//
// A hint of 0 or 1 disables balancing: without a key function all items form
// a single chunk; with one, each distinct key forms its own chunk regardless
// of its weight.
//
// Parameters:
//   - items: Finite input; never modified
//   - hint: Suggested number of chunks, must not be negative
//   - weight: Per-item weight; nil means UnitWeight
//   - key: Per-item classification key; nil means a single key
//   - opts: Optional logger and metrics
//
// Returns:
//   - Chunks[T]: Lazy, single-use chunk stream
//   - error: ErrInvalidConfig for a negative hint or a zero total weight,
//     ErrNegativeWeight for a negative item weight
func SplitInBlocks[T any, K cmp.Ordered](
	items []T,
	hint int,
	weight func(T) float64,
	key func(T) K,
	opts ...Option,
) (Chunks[T], error) {
	if hint < 0 {
		return nil, fmt.Errorf("%w: hint=%d must not be negative", types.ErrInvalidConfig, hint)
	}
	if weight == nil {
		weight = UnitWeight[T]
	}

	type entry struct {
		item T
		w    float64
		k    K
	}
	entries := make([]entry, len(items))
	total := 0.0
	for i, item := range items {
		w := weight(item)
		if w < 0 {
			return nil, fmt.Errorf("%w: item %v got weight %v", types.ErrNegativeWeight, item, w)
		}
		var k K
		if key != nil {
			k = key(item)
		}
		entries[i] = entry{item: item, w: w, k: k}
		total += w
	}

	if hint <= 1 {
		return fromSlice(unbalanced(entries, key != nil, func(e entry) (T, float64, K) {
			return e.item, e.w, e.k
		})), nil
	}
	if len(entries) == 0 {
		return fromSlice[T](nil), nil
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: total weight is zero", types.ErrInvalidConfig)
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.k, b.k); c != 0 {
			return c
		}

		return cmp.Compare(a.w, b.w)
	})
	sorted := make([]T, len(entries))
	for i, e := range entries {
		sorted[i] = e.item
	}

	target := math.Ceil(total / float64(hint))

	return BlockSplitter(slices.Values(sorted), target, weight, key, opts...)
}

// unbalanced builds the hint <= 1 result: one chunk with everything, or one
// chunk per key in ascending key order.
func unbalanced[E any, T any, K cmp.Ordered](entries []E, byKey bool, unpack func(E) (T, float64, K)) []*weighted.Sequence[T] {
	if len(entries) == 0 {
		return nil
	}
	if !byKey {
		all := weighted.NewEmpty[T]()
		for _, e := range entries {
			item, w, _ := unpack(e)
			_ = all.Append(item, w)
		}

		return []*weighted.Sequence[T]{all}
	}

	groups := make(map[K]*weighted.Sequence[T])
	for _, e := range entries {
		item, w, k := unpack(e)
		g, ok := groups[k]
		if !ok {
			g = weighted.NewEmpty[T]()
			groups[k] = g
		}
		_ = g.Append(item, w)
	}

	keys := make([]K, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]*weighted.Sequence[T], len(keys))
	for i, k := range keys {
		out[i] = groups[k]
	}

	return out
}
