package group

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/arloliu/splitkit/types"
)

// FastAgg sums values into buckets along axis.
//
// indices[i] names the bucket of the i-th slice of values along axis. The
// result has the shape of values with that axis replaced by max(indices)+1.
//
// Parameters:
//   - indices: Non-negative bucket index per slice along axis
//   - values: Values to aggregate; nil counts the indices instead
//   - axis: Aggregation axis
//
// Returns:
//   - *Array: Aggregated values
//   - error: ErrLengthMismatch if len(indices) differs from the axis size,
//     ErrInvalidIndex for a negative index or an axis out of range
func FastAgg(indices []int, values *Array, axis int) (*Array, error) {
	if values == nil {
		ones := NewArray(len(indices))
		for i := range ones.Data {
			ones.Data[i] = 1
		}
		values, axis = ones, 0
	}
	if axis < 0 || axis >= values.Dims() {
		return nil, fmt.Errorf("%w: axis %d for a %d-D array", types.ErrInvalidIndex, axis, values.Dims())
	}
	n := values.Shape[axis]
	if len(indices) != n {
		return nil, fmt.Errorf("%w: there are %d values but %d indices", types.ErrLengthMismatch, n, len(indices))
	}

	m := 0
	for _, idx := range indices {
		if idx < 0 {
			return nil, fmt.Errorf("%w: negative bucket index %d", types.ErrInvalidIndex, idx)
		}
		m = max(m, idx+1)
	}

	outer, inner := 1, 1
	for _, d := range values.Shape[:axis] {
		outer *= d
	}
	for _, d := range values.Shape[axis+1:] {
		inner *= d
	}

	shape := slices.Clone(values.Shape)
	shape[axis] = m
	res := NewArray(shape...)
	for o := range outer {
		for c, idx := range indices {
			src := (o*n + c) * inner
			dst := (o*m + idx) * inner
			for i := range inner {
				res.Data[dst+i] += values.Data[src+i]
			}
		}
	}

	return res, nil
}

// FastAgg2 aggregates values by tag. The tags are sorted and deduplicated and
// the aggregate for uniq[j] is at position j along axis.
//
// Returns:
//   - []T: Sorted unique tags
//   - *Array: Aggregated values (counts when values is nil)
//   - error: ErrInvalidIndex for a NaN tag, or any error from FastAgg
func FastAgg2[T cmp.Ordered](tags []T, values *Array, axis int) ([]T, *Array, error) {
	uniq, indices, err := unique(tags)
	if err != nil {
		return nil, nil, err
	}
	res, err := FastAgg(indices, values, axis)
	if err != nil {
		return nil, nil, err
	}

	return uniq, res, nil
}

// Record is a flat row of named numeric fields.
type Record map[string]float64

// FastAgg3 aggregates records by a key field, summing the given value fields.
// The result holds one record per distinct key, sorted by key, with the key
// field and the summed value fields.
//
// Returns:
//   - []Record: Aggregated records
//   - error: ErrKeyNotFound if a record lacks the key field or a value field,
//     ErrInvalidIndex for a NaN key
func FastAgg3(records []Record, kfield string, vfields ...string) ([]Record, error) {
	tags := make([]float64, len(records))
	for i, r := range records {
		k, ok := r[kfield]
		if !ok {
			return nil, fmt.Errorf("%w: record %d has no field %q", types.ErrKeyNotFound, i, kfield)
		}
		tags[i] = k
	}
	uniq, indices, err := unique(tags)
	if err != nil {
		return nil, err
	}

	out := make([]Record, len(uniq))
	for j, k := range uniq {
		out[j] = Record{kfield: k}
	}
	for _, name := range vfields {
		col := NewArray(len(records))
		for i, r := range records {
			v, ok := r[name]
			if !ok {
				return nil, fmt.Errorf("%w: record %d has no field %q", types.ErrKeyNotFound, i, name)
			}
			col.Data[i] = v
		}
		sums, err := FastAgg(indices, col, 0)
		if err != nil {
			return nil, err
		}
		for j := range out {
			out[j][name] = sums.Data[j]
		}
	}

	return out, nil
}

// RandomFilter keeps each object independently with probability factor.
// The selection is reproducible for a given seed.
//
// Returns:
//   - []T: The kept objects, in input order
//   - error: ErrInvalidConfig unless 0 < factor <= 1
func RandomFilter[T any](objs []T, factor float64, seed uint64) ([]T, error) {
	if !(factor > 0 && factor <= 1) {
		return nil, fmt.Errorf("%w: reduction factor %v not in (0, 1]", types.ErrInvalidConfig, factor)
	}
	rnd := rand.New(rand.NewPCG(seed, seed))

	out := make([]T, 0, int(float64(len(objs))*factor)+1)
	for _, o := range objs {
		if rnd.Float64() <= factor {
			out = append(out, o)
		}
	}

	return out, nil
}

// RandomHistogram distributes counts uniformly at random over nbins bins.
// The bins always sum to counts.
func RandomHistogram(counts, nbins int, seed uint64) ([]int, error) {
	if counts < 0 || nbins <= 0 {
		return nil, fmt.Errorf("%w: counts=%d nbins=%d", types.ErrInvalidConfig, counts, nbins)
	}
	rnd := rand.New(rand.NewPCG(seed, seed))

	bins := make([]int, nbins)
	for range counts {
		bins[rnd.IntN(nbins)]++
	}

	return bins, nil
}

// unique returns the sorted distinct values and, for each input, the position
// of its value in that list. NaN has no position and is rejected.
func unique[T cmp.Ordered](vals []T) ([]T, []int, error) {
	for i, v := range vals {
		if v != v {
			return nil, nil, fmt.Errorf("%w: NaN tag at position %d", types.ErrInvalidIndex, i)
		}
	}
	uniq := slices.Clone(vals)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	pos := make(map[T]int, len(uniq))
	for i, v := range uniq {
		pos[v] = i
	}
	indices := make([]int, len(vals))
	for i, v := range vals {
		indices[i] = pos[v]
	}

	return uniq, indices, nil
}
