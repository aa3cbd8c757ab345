package accum

import (
	"fmt"
	"iter"

	"github.com/puzpuzpuz/xsync/v4"
)

// Concurrent is a goroutine-safe accumulator for merging partial results.
//
// Each key is combined atomically, so workers can merge their partial
// mappings concurrently without external locking.
type Concurrent[K comparable, V any] struct {
	m       *xsync.Map[K, V]
	ops     Ops[V]
	factory func() V
}

// NewConcurrent creates an empty concurrent accumulator.
//
// Parameters:
//   - ops: Value algebra; Add must be defined
//   - opts: Optional configuration (WithFactory)
//
// Returns:
//   - *Concurrent[K, V]: The accumulator
//   - error: ErrUnsupportedOp if ops.Add is nil
func NewConcurrent[K comparable, V any](ops Ops[V], opts ...Option[V]) (*Concurrent[K, V], error) {
	if ops.Add == nil {
		return nil, fmt.Errorf("%w: add", ErrUnsupportedOp)
	}
	o := options[V]{}
	for _, opt := range opts {
		opt(&o)
	}

	return &Concurrent[K, V]{
		m:       xsync.NewMap[K, V](),
		ops:     ops,
		factory: o.factory,
	}, nil
}

// Add combines v into the value stored under k.
func (c *Concurrent[K, V]) Add(k K, v V) {
	c.m.Compute(k, func(old V, loaded bool) (V, xsync.ComputeOp) {
		if !loaded {
			if c.factory == nil {
				return v, xsync.UpdateOp
			}
			old = c.factory()
		}

		return c.ops.Add(old, v), xsync.UpdateOp
	})
}

// AddMap combines every entry of other into the accumulator.
func (c *Concurrent[K, V]) AddMap(other Mapping[K, V]) {
	for k, v := range other.All() {
		c.Add(k, v)
	}
}

// Load returns the value stored under k.
func (c *Concurrent[K, V]) Load(k K) (V, bool) {
	return c.m.Load(k)
}

// Len returns the number of keys.
func (c *Concurrent[K, V]) Len() int {
	return c.m.Size()
}

// All iterates over a weakly consistent view of the entries.
func (c *Concurrent[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c.m.Range(yield)
	}
}

// Snapshot copies the current entries into a plain Dict with the same algebra.
func (c *Concurrent[K, V]) Snapshot() *Dict[K, V] {
	d := &Dict[K, V]{
		m:       make(map[K]V, c.m.Size()),
		ops:     c.ops,
		factory: c.factory,
	}
	c.m.Range(func(k K, v V) bool {
		d.m[k] = v
		return true
	})

	return d
}
