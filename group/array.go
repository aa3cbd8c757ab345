package group

import (
	"fmt"

	"github.com/arloliu/splitkit/types"
)

// Array is a dense row-major N-dimensional array of float64.
type Array struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// NewArray allocates a zero-filled array with the given shape.
func NewArray(shape ...int) *Array {
	size := 1
	for _, d := range shape {
		size *= d
	}

	return &Array{Shape: append([]int(nil), shape...), Data: make([]float64, size)}
}

// Vector wraps a copy of v as a 1-D array.
func Vector(v []float64) *Array {
	return &Array{Shape: []int{len(v)}, Data: append([]float64(nil), v...)}
}

// FromRows builds a 2-D array from equally long rows.
//
// Returns:
//   - *Array: Array of shape (len(rows), len(rows[0]))
//   - error: ErrLengthMismatch if the rows differ in length
func FromRows(rows [][]float64) (*Array, error) {
	if len(rows) == 0 {
		return NewArray(0, 0), nil
	}
	cols := len(rows[0])
	a := NewArray(len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", types.ErrLengthMismatch, i, len(r), cols)
		}
		copy(a.Data[i*cols:], r)
	}

	return a, nil
}

// Dims returns the number of dimensions.
func (a *Array) Dims() int {
	return len(a.Shape)
}

// Len returns the size of the first dimension.
func (a *Array) Len() int {
	if len(a.Shape) == 0 {
		return 0
	}

	return a.Shape[0]
}

// At returns the element at the given coordinates. It panics if the
// coordinates do not address an element, like slice indexing.
func (a *Array) At(idx ...int) float64 {
	return a.Data[a.offset(idx)]
}

// Set stores v at the given coordinates.
func (a *Array) Set(v float64, idx ...int) {
	a.Data[a.offset(idx)] = v
}

// Rows returns the array as nested rows; it only supports 2-D arrays.
func (a *Array) Rows() [][]float64 {
	if len(a.Shape) != 2 {
		return nil
	}
	out := make([][]float64, a.Shape[0])
	for i := range out {
		out[i] = append([]float64(nil), a.Data[i*a.Shape[1]:(i+1)*a.Shape[1]]...)
	}

	return out
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.Shape) {
		panic(fmt.Sprintf("group: %d coordinates for a %d-D array", len(idx), len(a.Shape)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.Shape[d] {
			panic(fmt.Sprintf("group: index %d out of range for axis %d with size %d", i, d, a.Shape[d]))
		}
		off = off*a.Shape[d] + i
	}

	return off
}
