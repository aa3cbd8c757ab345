package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/paulmach/orb"

	"github.com/arloliu/splitkit/types"
)

// ErrInvalidCoordinate is returned for a longitude or latitude outside the
// valid range or not a finite number.
var ErrInvalidCoordinate = errors.New("invalid site coordinate")

// Collection is an immutable set of sites with stable integer ids.
type Collection struct {
	ids      []int
	lons     []float64
	lats     []float64
	pos      map[int]int
	complete *Collection
}

// New creates a complete collection with ids 0..len(lons)-1.
//
// Parameters:
//   - lons: Longitudes in degrees, within [-180, 360)
//   - lats: Latitudes in degrees, within [-90, 90]
//
// Returns:
//   - *Collection: The collection
//   - error: ErrLengthMismatch or ErrInvalidCoordinate
func New(lons, lats []float64) (*Collection, error) {
	ids := make([]int, len(lons))
	for i := range ids {
		ids[i] = i
	}

	return NewWithIDs(ids, lons, lats)
}

// NewWithIDs creates a complete collection with explicit, unique ids.
func NewWithIDs(ids []int, lons, lats []float64) (*Collection, error) {
	if len(ids) != len(lons) || len(lons) != len(lats) {
		return nil, fmt.Errorf("%w: %d ids, %d lons, %d lats", types.ErrLengthMismatch, len(ids), len(lons), len(lats))
	}

	c := &Collection{
		ids:  slices.Clone(ids),
		lons: slices.Clone(lons),
		lats: slices.Clone(lats),
		pos:  make(map[int]int, len(ids)),
	}
	for i, id := range c.ids {
		if err := checkPoint(c.lons[i], c.lats[i]); err != nil {
			return nil, fmt.Errorf("site id=%d: %w", id, err)
		}
		if _, dup := c.pos[id]; dup {
			return nil, fmt.Errorf("%w: duplicate site id %d", types.ErrInvalidIndex, id)
		}
		c.pos[id] = i
	}
	c.complete = c

	return c, nil
}

func checkPoint(lon, lat float64) error {
	if math.IsNaN(lon) || math.IsNaN(lat) || lon < -180 || lon >= 360 || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinate, lon, lat)
	}

	return nil
}

// Len returns the number of sites.
func (c *Collection) Len() int {
	return len(c.ids)
}

// IDs returns a copy of the site ids.
func (c *Collection) IDs() []int {
	return slices.Clone(c.ids)
}

// Lons returns a copy of the longitudes.
func (c *Collection) Lons() []float64 {
	return slices.Clone(c.lons)
}

// Lats returns a copy of the latitudes.
func (c *Collection) Lats() []float64 {
	return slices.Clone(c.lats)
}

// ID returns the id of the i-th site.
func (c *Collection) ID(i int) int {
	return c.ids[i]
}

// Point returns the i-th site as an orb point (lon, lat).
func (c *Collection) Point(i int) orb.Point {
	return orb.Point{c.lons[i], c.lats[i]}
}

// Complete returns the collection this one was filtered from, or itself.
func (c *Collection) Complete() *Collection {
	return c.complete
}

// IsComplete reports whether c is a complete collection.
func (c *Collection) IsComplete() bool {
	return c.complete == c
}

// Bound returns the bounding box of the sites.
func (c *Collection) Bound() orb.Bound {
	if len(c.ids) == 0 {
		return orb.Bound{}
	}
	b := orb.Bound{Min: c.Point(0), Max: c.Point(0)}
	for i := 1; i < len(c.ids); i++ {
		b = b.Extend(c.Point(i))
	}

	return b
}

// Filter returns the subset of the complete collection with the given ids.
// The ids are deduplicated and returned in ascending order.
//
// Returns:
//   - *Collection: Subset sharing the complete collection of c
//   - error: ErrKeyNotFound for an id that is not in the complete collection
func (c *Collection) Filter(ids []int) (*Collection, error) {
	full := c.complete
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	sub := &Collection{
		ids:      sorted,
		lons:     make([]float64, len(sorted)),
		lats:     make([]float64, len(sorted)),
		pos:      make(map[int]int, len(sorted)),
		complete: full,
	}
	for i, id := range sorted {
		p, ok := full.pos[id]
		if !ok {
			return nil, fmt.Errorf("%w: site id %d", types.ErrKeyNotFound, id)
		}
		sub.lons[i] = full.lons[p]
		sub.lats[i] = full.lats[p]
		sub.pos[id] = i
	}

	return sub, nil
}

// Mask returns the subset of c for which keep is true. keep must have one
// entry per site.
func (c *Collection) Mask(keep []bool) (*Collection, error) {
	if len(keep) != len(c.ids) {
		return nil, fmt.Errorf("%w: mask of %d for %d sites", types.ErrLengthMismatch, len(keep), len(c.ids))
	}
	ids := make([]int, 0, len(c.ids))
	for i, k := range keep {
		if k {
			ids = append(ids, c.ids[i])
		}
	}

	return c.Filter(ids)
}

// CrossesIDL reports whether the sites span the International Date Line:
// the extreme longitudes have opposite signs and are more than 180° apart.
func (c *Collection) CrossesIDL() bool {
	if len(c.lons) < 2 {
		return false
	}
	lo, hi := slices.Min(c.lons), slices.Max(c.lons)

	return lo*hi < 0 && math.Abs(lo-hi) > 180
}

// FixedLons returns the longitudes moved to [0, 360) when the collection
// crosses the IDL, and an unchanged copy otherwise.
func (c *Collection) FixedLons() ([]float64, bool) {
	lons := slices.Clone(c.lons)
	if !c.CrossesIDL() {
		return lons, false
	}
	for i, lon := range lons {
		lons[i] = math.Mod(lon+360, 360)
	}

	return lons, true
}

type collectionJSON struct {
	IDs  []int     `json:"ids"`
	Lons []float64 `json:"lons"`
	Lats []float64 `json:"lats"`
}

// MarshalJSON encodes the sites; a subset is encoded as a complete collection.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(collectionJSON{IDs: c.ids, Lons: c.lons, Lats: c.lats})
}

// UnmarshalJSON decodes a complete collection. Missing ids default to
// 0..n-1.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw collectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.IDs == nil {
		raw.IDs = make([]int, len(raw.Lons))
		for i := range raw.IDs {
			raw.IDs[i] = i
		}
	}
	decoded, err := NewWithIDs(raw.IDs, raw.Lons, raw.Lats)
	if err != nil {
		return err
	}
	*c = *decoded
	c.complete = c

	return nil
}
