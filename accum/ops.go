package accum

import (
	"errors"
	"math"
)

// ErrUnsupportedOp is returned when the value algebra does not define an operation.
var ErrUnsupportedOp = errors.New("operation not supported by value type")

// Number is the set of numeric types with a full arithmetic algebra.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Integer is the set of types that also support bitwise inversion.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Ops describes how values of type V combine. A nil field marks the
// operation as unsupported.
type Ops[V any] struct {
	Add    func(a, b V) V
	Sub    func(a, b V) V
	Mul    func(a, b V) V
	Pow    func(a V, n float64) V
	Neg    func(a V) V
	Invert func(a V) V
	Quo    func(a, b V) V
}

// NumberOps returns the arithmetic algebra for a numeric type.
// Quo is Go's / operator: integer quotients truncate toward zero and an
// integer division by zero panics.
func NumberOps[V Number]() Ops[V] {
	return Ops[V]{
		Add: func(a, b V) V { return a + b },
		Sub: func(a, b V) V { return a - b },
		Mul: func(a, b V) V { return a * b },
		Pow: func(a V, n float64) V { return V(math.Pow(float64(a), n)) },
		Neg: func(a V) V { return -a },
		Quo: func(a, b V) V { return a / b },
	}
}

// IntegerOps returns NumberOps extended with bitwise inversion.
func IntegerOps[V Integer]() Ops[V] {
	ops := NumberOps[V]()
	ops.Invert = func(a V) V { return ^a }

	return ops
}

// SliceOps returns the algebra for list accumulators: addition extends the
// left operand in place. No other operation is defined.
func SliceOps[E any]() Ops[[]E] {
	return Ops[[]E]{
		Add: func(a, b []E) []E { return append(a, b...) },
	}
}
