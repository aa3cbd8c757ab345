package source

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"

	"github.com/arloliu/splitkit/types"
)

// Area is a source whose surface projection is a polygon.
//
// Polygon longitudes may go beyond 180 to describe a surface that crosses
// the International Date Line continuously, e.g. [170, 190].
type Area struct {
	SourceID string      `json:"id"`
	TRT      string      `json:"tectonicRegionType"`
	MinMag   float64     `json:"minMag"`
	MaxMag   float64     `json:"maxMag"`
	Polygon  orb.Polygon `json:"polygon"`
}

var (
	_ types.Source        = (*Area)(nil)
	_ types.SiteDistancer = (*Area)(nil)
)

// NewArea creates an area source from an outer ring.
func NewArea(id, trt string, minMag, maxMag float64, ring orb.Ring) *Area {
	return &Area{
		SourceID: id,
		TRT:      trt,
		MinMag:   minMag,
		MaxMag:   maxMag,
		Polygon:  orb.Polygon{ring},
	}
}

// ID returns the source id.
func (a *Area) ID() string { return a.SourceID }

// TectonicRegionType returns the region classification.
func (a *Area) TectonicRegionType() string { return a.TRT }

// MagnitudeRange returns the minimum and maximum magnitude.
func (a *Area) MagnitudeRange() (float64, float64) { return a.MinMag, a.MaxMag }

// BoundingBox returns the bounding box of the polygon. A polygon reaching
// past 180 is reported as a box crossing the date line (Min lon > Max lon).
func (a *Area) BoundingBox() orb.Bound {
	b := a.Polygon.Bound()
	if b.Max[0] > 180 && b.Max[0]-b.Min[0] < 360 {
		b.Max[0] -= 360
	}

	return b
}

// Distances returns the great-circle distance in km from each site to the
// polygon; sites inside the polygon are at distance zero.
//
// Returns:
//   - []float64: One distance per site
//   - error: ErrLengthMismatch if lons and lats differ in length, or an
//     error for a polygon without an outer ring
func (a *Area) Distances(lons, lats []float64) ([]float64, error) {
	if len(lons) != len(lats) {
		return nil, fmt.Errorf("%w: %d lons, %d lats", types.ErrLengthMismatch, len(lons), len(lats))
	}
	if len(a.Polygon) == 0 || len(a.Polygon[0]) < 3 {
		return nil, fmt.Errorf("area %s: polygon needs at least three vertices", a.SourceID)
	}

	ring := a.Polygon[0]
	rb := ring.Bound()
	out := make([]float64, len(lons))
	for i := range lons {
		p := orb.Point{lons[i], lats[i]}
		// the ring may use longitudes beyond 180
		if rb.Max[0] > 180 && p[0] < rb.Min[0] && p[0]+360-rb.Max[0] < rb.Min[0]-p[0] {
			p[0] += 360
		}
		if planar.PolygonContains(a.Polygon, p) {
			continue
		}
		best := math.Inf(1)
		for j := range ring {
			q := closestOnSegment(ring[j], ring[(j+1)%len(ring)], p)
			best = min(best, geo.DistanceHaversine(p, q))
		}
		out[i] = best / 1000
	}

	return out, nil
}

// closestOnSegment projects p on the segment [a, b] in lon/lat space.
func closestOnSegment(a, b, p orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	t = max(0, min(1, t))

	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}
