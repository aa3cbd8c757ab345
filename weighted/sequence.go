package weighted

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/arloliu/splitkit/types"
)

// Pair couples an item with its weight.
type Pair[T any] struct {
	Item   T
	Weight float64
}

// Sequence is an ordered list of items with a total weight.
//
// Sequence is not safe for concurrent mutation.
type Sequence[T any] struct {
	items   []T
	weights []float64
	weight  float64
}

// NewEmpty creates an empty sequence with zero weight.
func NewEmpty[T any]() *Sequence[T] {
	return &Sequence[T]{}
}

// New creates a sequence from (item, weight) pairs.
//
// Parameters:
//   - pairs: Items with their weights, in order
//
// Returns:
//   - *Sequence[T]: The new sequence
//   - error: ErrNegativeWeight if any pair has a negative weight
func New[T any](pairs ...Pair[T]) (*Sequence[T], error) {
	s := &Sequence[T]{
		items:   make([]T, 0, len(pairs)),
		weights: make([]float64, 0, len(pairs)),
	}
	for _, p := range pairs {
		if err := s.Append(p.Item, p.Weight); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Merge concatenates the given sequences, in order, into a new sequence.
//
// Merging is a fold over Concat starting from an empty sequence, so merging
// nothing yields an empty sequence with zero weight.
func Merge[T any](seqs ...*Sequence[T]) *Sequence[T] {
	merged := NewEmpty[T]()
	for _, s := range seqs {
		merged = merged.Concat(s)
	}

	return merged
}

// Weight returns the total weight of the sequence.
func (s *Sequence[T]) Weight() float64 {
	return s.weight
}

// Len returns the number of items.
func (s *Sequence[T]) Len() int {
	return len(s.items)
}

// At returns the item at index i. It panics if i is out of range, like a slice.
func (s *Sequence[T]) At(i int) T {
	return s.items[i]
}

// WeightAt returns the weight of the item at index i.
func (s *Sequence[T]) WeightAt(i int) float64 {
	return s.weights[i]
}

// Items returns a copy of the items.
func (s *Sequence[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)

	return out
}

// Pairs returns a copy of the items with their weights.
func (s *Sequence[T]) Pairs() []Pair[T] {
	out := make([]Pair[T], len(s.items))
	for i := range s.items {
		out[i] = Pair[T]{Item: s.items[i], Weight: s.weights[i]}
	}

	return out
}

// All iterates over the items in order.
func (s *Sequence[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range s.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Append adds an item with the given weight at the end of the sequence.
//
// Returns:
//   - error: ErrNegativeWeight if w < 0 (the sequence is left unchanged)
func (s *Sequence[T]) Append(item T, w float64) error {
	return s.Insert(len(s.items), item, w)
}

// Insert adds an item with the given weight before index i.
//
// An index equal to Len appends. Out-of-range indexes are clamped, mirroring
// list insertion semantics.
//
// Returns:
//   - error: ErrNegativeWeight if w < 0 (the sequence is left unchanged)
func (s *Sequence[T]) Insert(i int, item T, w float64) error {
	if w < 0 {
		return fmt.Errorf("%w: item %v got weight %v", types.ErrNegativeWeight, item, w)
	}
	i = max(0, min(i, len(s.items)))

	s.items = append(s.items, item)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = item

	s.weights = append(s.weights, w)
	copy(s.weights[i+1:], s.weights[i:])
	s.weights[i] = w

	s.weight += w

	return nil
}

// Set replaces the item at index i and its weight.
//
// Returns:
//   - error: ErrNegativeWeight if w < 0, ErrInvalidIndex if i is out of range
func (s *Sequence[T]) Set(i int, item T, w float64) error {
	if i < 0 || i >= len(s.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", types.ErrInvalidIndex, i, len(s.items))
	}
	if w < 0 {
		return fmt.Errorf("%w: item %v got weight %v", types.ErrNegativeWeight, item, w)
	}

	s.weight += w - s.weights[i]
	s.items[i] = item
	s.weights[i] = w

	return nil
}

// Delete removes the half-open range [i, j) of items and their weights.
//
// The bounds are clamped to the sequence, so an empty range is a no-op.
func (s *Sequence[T]) Delete(i, j int) {
	i = max(0, min(i, len(s.items)))
	j = max(i, min(j, len(s.items)))
	if i == j {
		return
	}

	for _, w := range s.weights[i:j] {
		s.weight -= w
	}
	s.items = append(s.items[:i], s.items[j:]...)
	s.weights = append(s.weights[:i], s.weights[j:]...)
	if len(s.items) == 0 {
		s.weight = 0
	}
}

// Slice returns a new sequence holding the items in [i, j) with their weights.
func (s *Sequence[T]) Slice(i, j int) *Sequence[T] {
	i = max(0, min(i, len(s.items)))
	j = max(i, min(j, len(s.items)))

	out := &Sequence[T]{
		items:   append([]T(nil), s.items[i:j]...),
		weights: append([]float64(nil), s.weights[i:j]...),
	}
	for _, w := range out.weights {
		out.weight += w
	}

	return out
}

// Concat returns a new sequence with the items of s followed by the items of
// other; its weight is the sum of both weights. Neither operand is modified.
func (s *Sequence[T]) Concat(other *Sequence[T]) *Sequence[T] {
	if other == nil {
		other = NewEmpty[T]()
	}

	out := &Sequence[T]{
		items:   make([]T, 0, len(s.items)+len(other.items)),
		weights: make([]float64, 0, len(s.weights)+len(other.weights)),
		weight:  s.weight + other.weight,
	}
	out.items = append(append(out.items, s.items...), other.items...)
	out.weights = append(append(out.weights, s.weights...), other.weights...)

	return out
}

// Compare orders sequences by weight only.
//
// Returns:
//   - int: -1 if s is lighter than other, 0 if equal weight, +1 otherwise
func (s *Sequence[T]) Compare(other *Sequence[T]) int {
	return cmp.Compare(s.weight, other.weight)
}

// Less reports whether s is lighter than other.
func (s *Sequence[T]) Less(other *Sequence[T]) bool {
	return s.weight < other.weight
}

// Equal compares the items element-wise with eq.
//
// Only the common prefix is compared: sequences of different length whose
// shared items match are considered equal. Weights are not compared.
func (s *Sequence[T]) Equal(other *Sequence[T], eq func(a, b T) bool) bool {
	n := min(len(s.items), len(other.items))
	for i := range n {
		if !eq(s.items[i], other.items[i]) {
			return false
		}
	}

	return true
}

// String renders the sequence as "<WeightedSequence [a b], weight=3>".
func (s *Sequence[T]) String() string {
	parts := make([]string, len(s.items))
	for i, item := range s.items {
		parts[i] = fmt.Sprint(item)
	}

	return fmt.Sprintf("<WeightedSequence [%s], weight=%v>", strings.Join(parts, " "), s.weight)
}
