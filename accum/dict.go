package accum

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/arloliu/splitkit/types"
)

// Mapping is anything that can be iterated as key/value pairs.
type Mapping[K comparable, V any] interface {
	All() iter.Seq2[K, V]
}

// Map adapts a plain Go map to Mapping.
type Map[K comparable, V any] map[K]V

// All iterates over the map entries.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return maps.All(m)
}

// Option configures a Dict.
type Option[V any] func(*options[V])

type options[V any] struct {
	factory func() V
}

// WithFactory sets the accumulator template: missing keys read through Get or
// Update are materialized with a fresh value from f. Each call of f must
// return a structurally independent value.
func WithFactory[V any](f func() V) Option[V] {
	return func(o *options[V]) {
		o.factory = f
	}
}

// Dict is a keyed accumulator. It is not safe for concurrent use; see Concurrent.
type Dict[K comparable, V any] struct {
	m       map[K]V
	ops     Ops[V]
	factory func() V
}

// New creates an empty Dict using the given value algebra.
//
// Parameters:
//   - ops: Value algebra
//   - opts: Optional configuration (WithFactory)
//
// Returns:
//   - *Dict[K, V]: The empty accumulator
func New[K comparable, V any](ops Ops[V], opts ...Option[V]) *Dict[K, V] {
	o := options[V]{}
	for _, opt := range opts {
		opt(&o)
	}

	return &Dict[K, V]{
		m:       make(map[K]V),
		ops:     ops,
		factory: o.factory,
	}
}

// FromMap creates a Dict holding a copy of m.
func FromMap[K comparable, V any](ops Ops[V], m map[K]V, opts ...Option[V]) *Dict[K, V] {
	d := New[K](ops, opts...)
	maps.Copy(d.m, m)

	return d
}

// Len returns the number of keys.
func (d *Dict[K, V]) Len() int {
	return len(d.m)
}

// Has reports whether k is present.
func (d *Dict[K, V]) Has(k K) bool {
	_, ok := d.m[k]
	return ok
}

// Get returns the value for k.
//
// With a factory a missing key is materialized, stored and returned.
//
// Returns:
//   - V: The stored (or materialized) value
//   - error: ErrKeyNotFound if k is missing and no factory is set
func (d *Dict[K, V]) Get(k K) (V, error) {
	if v, ok := d.m[k]; ok {
		return v, nil
	}
	if d.factory == nil {
		var zero V
		return zero, fmt.Errorf("%w: %v", types.ErrKeyNotFound, k)
	}
	v := d.factory()
	d.m[k] = v

	return v, nil
}

// Set stores v under k.
func (d *Dict[K, V]) Set(k K, v V) {
	d.m[k] = v
}

// Delete removes k.
func (d *Dict[K, V]) Delete(k K) {
	delete(d.m, k)
}

// Update replaces the value of k with f(current). A missing key goes through
// Get, so it needs a factory.
func (d *Dict[K, V]) Update(k K, f func(V) V) error {
	v, err := d.Get(k)
	if err != nil {
		return err
	}
	d.m[k] = f(v)

	return nil
}

// All iterates over the entries in unspecified order.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return maps.All(d.m)
}

// Map returns a copy of the entries.
func (d *Dict[K, V]) Map() map[K]V {
	return maps.Clone(d.m)
}

// Clone returns a shallow copy that shares the algebra and factory.
func (d *Dict[K, V]) Clone() *Dict[K, V] {
	return &Dict[K, V]{
		m:       maps.Clone(d.m),
		ops:     d.ops,
		factory: d.factory,
	}
}

// SortedKeys returns the keys of d in ascending order.
func SortedKeys[K cmp.Ordered, V any](d *Dict[K, V]) []K {
	return slices.Sorted(maps.Keys(d.m))
}

// combineMap folds other into d with op. Keys only present in other are
// copied verbatim, whatever the operation.
func (d *Dict[K, V]) combineMap(op func(a, b V) V, name string, other Mapping[K, V]) error {
	if op == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedOp, name)
	}
	for k, v := range other.All() {
		cur, ok := d.m[k]
		if !ok {
			d.m[k] = v
			continue
		}
		d.m[k] = op(cur, v)
	}

	return nil
}

func (d *Dict[K, V]) combineScalar(op func(a, b V) V, name string, s V) error {
	if op == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedOp, name)
	}
	for k, v := range d.m {
		d.m[k] = op(v, s)
	}

	return nil
}

// AddMap adds other into d key-wise.
func (d *Dict[K, V]) AddMap(other Mapping[K, V]) error {
	return d.combineMap(d.ops.Add, "add", other)
}

// AddScalar adds s to every value.
func (d *Dict[K, V]) AddScalar(s V) error {
	return d.combineScalar(d.ops.Add, "add", s)
}

// SubMap subtracts other from d key-wise. Keys only present in other are
// inserted with their value unchanged, not negated.
func (d *Dict[K, V]) SubMap(other Mapping[K, V]) error {
	return d.combineMap(d.ops.Sub, "sub", other)
}

// SubScalar subtracts s from every value.
func (d *Dict[K, V]) SubScalar(s V) error {
	return d.combineScalar(d.ops.Sub, "sub", s)
}

// MulMap multiplies d by other key-wise.
func (d *Dict[K, V]) MulMap(other Mapping[K, V]) error {
	return d.combineMap(d.ops.Mul, "mul", other)
}

// MulScalar multiplies every value by s.
func (d *Dict[K, V]) MulScalar(s V) error {
	return d.combineScalar(d.ops.Mul, "mul", s)
}

// Add returns d + other. Addition is commutative, so this also covers
// mapping + d.
func (d *Dict[K, V]) Add(other Mapping[K, V]) (*Dict[K, V], error) {
	out := d.Clone()
	if err := out.AddMap(other); err != nil {
		return nil, err
	}

	return out, nil
}

// Sub returns d - other.
func (d *Dict[K, V]) Sub(other Mapping[K, V]) (*Dict[K, V], error) {
	out := d.Clone()
	if err := out.SubMap(other); err != nil {
		return nil, err
	}

	return out, nil
}

// Mul returns d * other.
func (d *Dict[K, V]) Mul(other Mapping[K, V]) (*Dict[K, V], error) {
	out := d.Clone()
	if err := out.MulMap(other); err != nil {
		return nil, err
	}

	return out, nil
}

// Shift returns d + s for a scalar s.
func (d *Dict[K, V]) Shift(s V) (*Dict[K, V], error) {
	out := d.Clone()
	if err := out.AddScalar(s); err != nil {
		return nil, err
	}

	return out, nil
}

// Scale returns d * s for a scalar s.
func (d *Dict[K, V]) Scale(s V) (*Dict[K, V], error) {
	out := d.Clone()
	if err := out.MulScalar(s); err != nil {
		return nil, err
	}

	return out, nil
}

// RSub returns s - d, computed as -(d - s).
func (d *Dict[K, V]) RSub(s V) (*Dict[K, V], error) {
	out := d.Clone()
	if err := out.SubScalar(s); err != nil {
		return nil, err
	}

	return out.Neg()
}

// Div returns d / s for a scalar s, dividing every value.
func (d *Dict[K, V]) Div(s V) (*Dict[K, V], error) {
	if d.ops.Quo == nil {
		return nil, fmt.Errorf("%w: div", ErrUnsupportedOp)
	}

	return d.Apply(func(v V) V { return d.ops.Quo(v, s) }), nil
}

// Pow raises every value to the power n.
func (d *Dict[K, V]) Pow(n float64) (*Dict[K, V], error) {
	if d.ops.Pow == nil {
		return nil, fmt.Errorf("%w: pow", ErrUnsupportedOp)
	}

	return d.Apply(func(v V) V { return d.ops.Pow(v, n) }), nil
}

// Neg negates every value.
func (d *Dict[K, V]) Neg() (*Dict[K, V], error) {
	if d.ops.Neg == nil {
		return nil, fmt.Errorf("%w: neg", ErrUnsupportedOp)
	}

	return d.Apply(d.ops.Neg), nil
}

// Invert applies bitwise inversion to every value.
func (d *Dict[K, V]) Invert() (*Dict[K, V], error) {
	if d.ops.Invert == nil {
		return nil, fmt.Errorf("%w: invert", ErrUnsupportedOp)
	}

	return d.Apply(d.ops.Invert), nil
}

// Apply returns a new Dict with f applied to every value.
func (d *Dict[K, V]) Apply(f func(V) V) *Dict[K, V] {
	out := &Dict[K, V]{
		m:       make(map[K]V, len(d.m)),
		ops:     d.ops,
		factory: d.factory,
	}
	for k, v := range d.m {
		out.m[k] = f(v)
	}

	return out
}
