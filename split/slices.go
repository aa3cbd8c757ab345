package split

import (
	"fmt"
	"iter"

	"github.com/arloliu/splitkit/types"
)

// Slice is the half-open integer range [Start, Stop).
type Slice struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// Len returns the number of integers in the range.
func (s Slice) Len() int {
	return s.Stop - s.Start
}

// String renders the range as "[start, stop)".
func (s Slice) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.Stop)
}

// Ceil divides a by b and rounds up.
//
// Returns:
//   - int: ceil(a / b)
//   - error: ErrInvalidConfig if b <= 0
func Ceil(a, b int) (int, error) {
	if b <= 0 {
		return 0, fmt.Errorf("%w: divisor %d must be positive", types.ErrInvalidConfig, b)
	}
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}

	return q, nil
}

// SplitInSlices partitions [0, n) into at most k contiguous slices of size
// ceil(n/k); the last slice absorbs the remainder.
//
// Parameters:
//   - n: Size of the range, must be positive
//   - k: Maximum number of slices, must be positive
//
// Returns:
//   - []Slice: Contiguous slices covering [0, n)
//   - error: ErrInvalidConfig on non-positive arguments
func SplitInSlices(n, k int) ([]Slice, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: number=%d must be positive", types.ErrInvalidConfig, n)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: numSlices=%d must be positive", types.ErrInvalidConfig, k)
	}
	blocksize, _ := Ceil(n, k)

	out := make([]Slice, 0, k)
	for start := 0; start < n; start += blocksize {
		out = append(out, Slice{Start: start, Stop: min(start+blocksize, n)})
	}

	return out, nil
}

// SplitCount is the integer-count form of SplitInBlocks: it splits the range
// [0, n) in about hint slices.
func SplitCount(n, hint int) ([]Slice, error) {
	return SplitInSlices(n, hint)
}

// GenSlices yields consecutive slices of at most blocksize integers covering
// [start, stop). An empty range yields nothing.
//
// Returns:
//   - iter.Seq[Slice]: Lazy slice stream
//   - error: ErrInvalidConfig if blocksize <= 0 or start > stop
func GenSlices(start, stop, blocksize int) (iter.Seq[Slice], error) {
	if blocksize <= 0 {
		return nil, fmt.Errorf("%w: blocksize=%d must be positive", types.ErrInvalidConfig, blocksize)
	}
	if start > stop {
		return nil, fmt.Errorf("%w: start=%d is after stop=%d", types.ErrInvalidConfig, start, stop)
	}

	return func(yield func(Slice) bool) {
		for s := start; s < stop; s += blocksize {
			if !yield(Slice{Start: s, Stop: min(s+blocksize, stop)}) {
				return
			}
		}
	}, nil
}
