package split

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/arloliu/splitkit/types"
	"github.com/arloliu/splitkit/weighted"
)

// Chunks is a lazy, single-use stream of chunks. A non-nil error is always
// the last element of the stream.
type Chunks[T any] = iter.Seq2[*weighted.Sequence[T], error]

// UnitWeight gives every item weight 1.
func UnitWeight[T any](T) float64 { return 1 }

// BlockSplitter groups items into weight-bounded, key-homogeneous chunks.
//
// Items are consumed in input order. A new chunk starts when adding the item
// would push the running weight above maxWeight or when the item's key
// differs from the previous item's key. The first item of a chunk is always
// taken, so an item heavier than maxWeight becomes a singleton chunk; any
// other item of weight zero is skipped.
//
// Parameters:
//   - items: Input stream, consumed at most once
//   - maxWeight: Upper bound on chunk weight, must be positive
//   - weight: Per-item weight; nil means UnitWeight
//   - key: Per-item classification key; nil puts every item under one key
//   - opts: Optional logger and metrics
//
// Returns:
//   - Chunks[T]: Lazy chunk stream; a negative item weight ends it with an
//     error wrapping ErrNegativeWeight
//   - error: ErrInvalidConfig if maxWeight <= 0
func BlockSplitter[T any, K comparable](
	items iter.Seq[T],
	maxWeight float64,
	weight func(T) float64,
	key func(T) K,
	opts ...Option,
) (Chunks[T], error) {
	if !(maxWeight > 0) {
		return nil, fmt.Errorf("%w: maxWeight=%v must be positive", types.ErrInvalidConfig, maxWeight)
	}
	if weight == nil {
		weight = UnitWeight[T]
	}
	o := newOptions(opts)

	var used atomic.Bool

	return func(yield func(*weighted.Sequence[T], error) bool) {
		if !used.CompareAndSwap(false, true) {
			return
		}

		var (
			ws      = weighted.NewEmpty[T]()
			prevKey K
			started bool
			skipped int
		)
		defer func() {
			if skipped > 0 {
				o.metrics.RecordSkippedItems(skipped)
			}
		}()

		emit := func(chunk *weighted.Sequence[T], k K) bool {
			o.metrics.RecordChunk(fmt.Sprint(k), chunk.Weight(), chunk.Len())
			o.logger.Debug("chunk emitted", "key", k, "items", chunk.Len(), "weight", chunk.Weight())

			return yield(chunk, nil)
		}

		for item := range items {
			w := weight(item)
			var k K
			if key != nil {
				k = key(item)
			}
			if w < 0 {
				yield(nil, fmt.Errorf("%w: item %v got weight %v", types.ErrNegativeWeight, item, w))
				return
			}

			switch {
			case !started || ws.Weight()+w > maxWeight || k != prevKey:
				next := weighted.NewEmpty[T]()
				_ = next.Append(item, w)
				if ws.Len() > 0 && !emit(ws, prevKey) {
					return
				}
				ws = next
			case w > 0:
				_ = ws.Append(item, w)
			default:
				skipped++
			}
			prevKey = k
			started = true
		}

		if ws.Len() > 0 {
			emit(ws, prevKey)
		}
	}, nil
}

// fromSlice turns a prepared chunk list into a single-use stream.
func fromSlice[T any](chunks []*weighted.Sequence[T]) Chunks[T] {
	var used atomic.Bool

	return func(yield func(*weighted.Sequence[T], error) bool) {
		if !used.CompareAndSwap(false, true) {
			return
		}
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// Collect drains a chunk stream into a slice, stopping at the first error.
func Collect[T any](chunks Chunks[T]) ([]*weighted.Sequence[T], error) {
	var out []*weighted.Sequence[T]
	for c, err := range chunks {
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}

	return out, nil
}
