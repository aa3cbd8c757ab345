// Package accum provides Dict, a keyed accumulator with algebraic combination.
//
// A Dict combines with mappings key-wise and with scalars element-wise:
//
//	acc := accum.New[string](accum.NumberOps[int]())
//	_ = acc.AddMap(accum.Map[string, int]{"a": 1})
//	_ = acc.AddMap(accum.Map[string, int]{"a": 1, "b": 1})
//	// acc is {a: 2, b: 1}
//
// The operations a value type supports are described by an Ops algebra.
// NumberOps, IntegerOps and SliceOps cover the common cases; an operation the
// algebra leaves nil fails with ErrUnsupportedOp.
//
// Concurrent is the goroutine-safe variant used to merge partial results from
// workers that finish in any order.
package accum
