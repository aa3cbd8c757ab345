package filter

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Box is a lon/lat rectangle in degrees. MinLon > MaxLon means the box
// crosses the International Date Line.
type Box struct {
	MinLon float64 `json:"minLon"`
	MinLat float64 `json:"minLat"`
	MaxLon float64 `json:"maxLon"`
	MaxLat float64 `json:"maxLat"`
}

// BoxFromBound converts an orb bound, keeping its longitude convention.
func BoxFromBound(b orb.Bound) Box {
	return Box{MinLon: b.Min[0], MinLat: b.Min[1], MaxLon: b.Max[0], MaxLat: b.Max[1]}
}

// Bound returns the box as an orb bound.
func (b Box) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.MinLon, b.MinLat}, Max: orb.Point{b.MaxLon, b.MaxLat}}
}

// CrossesIDL reports whether the box wraps around the date line.
func (b Box) CrossesIDL() bool {
	return b.MinLon > b.MaxLon
}

// Width returns the longitudinal extent in degrees.
func (b Box) Width() float64 {
	if b.CrossesIDL() {
		return b.MaxLon + 360 - b.MinLon
	}

	return b.MaxLon - b.MinLon
}

// Height returns the latitudinal extent in degrees.
func (b Box) Height() float64 {
	return b.MaxLat - b.MinLat
}

func (b Box) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

func validBound(b orb.Bound) error {
	for _, v := range []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bounding box %v", ErrInvalidGeometry, b)
		}
	}
	if b.Min[1] > b.Max[1] || b.Min[1] < -90 || b.Max[1] > 90 {
		return fmt.Errorf("%w: latitudes [%v, %v]", ErrInvalidGeometry, b.Min[1], b.Max[1])
	}
	if b.Min[0] < -180 || b.Max[0] > 360 || b.Min[0] > 360 || b.Max[0] < -180 {
		return fmt.Errorf("%w: longitudes [%v, %v]", ErrInvalidGeometry, b.Min[0], b.Max[0])
	}

	return nil
}

// wrapLon moves a longitude into [-180, 180].
func wrapLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}

	return lon
}

// enlarge pads the native box of a source by km in every direction. The
// result has longitudes in [-180, 180]; a box that wraps around the date line
// comes out with MinLon > MaxLon and a box covering every longitude comes out
// as [-180, 180].
func enlarge(b orb.Bound, km float64) (Box, error) {
	if err := validBound(b); err != nil {
		return Box{}, err
	}
	if b.Min[0] > b.Max[0] {
		b.Max[0] += 360
	}

	padded := b
	if km > 0 {
		// pad around the prime meridian so the padding never meets ±180
		shift := (b.Min[0] + b.Max[0]) / 2
		b.Min[0] -= shift
		b.Max[0] -= shift
		padded = geo.BoundPad(b, km*1000)
		padded.Min[0] += shift
		padded.Max[0] += shift
	}

	out := Box{MinLat: padded.Min[1], MaxLat: padded.Max[1]}
	width := padded.Max[0] - padded.Min[0]
	// a box reaching a pole contains every meridian
	if math.IsNaN(width) || width >= 360 || out.MaxLat >= 90 || out.MinLat <= -90 {
		out.MinLon, out.MaxLon = -180, 180
		return out, nil
	}
	out.MinLon, out.MaxLon = wrapLon(padded.Min[0]), wrapLon(padded.Max[0])
	if out.MinLon == 180 && out.MaxLon != 180 {
		out.MinLon = -180
	}

	return out, nil
}

// fixIDL re-expresses a box for a site collection indexed in [0, 360).
func fixIDL(b Box) Box {
	switch {
	case b.MinLon < 0 && b.MaxLon >= 0:
		if b.MaxLon-b.MinLon <= 180 {
			return b
		}
		// opposite signs and wider than half the globe: the box is the short
		// way around the date line
		return Box{MinLon: b.MaxLon, MinLat: b.MinLat, MaxLon: b.MinLon + 360, MaxLat: b.MaxLat}
	case b.MinLon < 0 && b.MaxLon < 0:
		if b.CrossesIDL() {
			return Box{MinLon: b.MinLon + 360, MinLat: b.MinLat, MaxLon: b.MaxLon + 720, MaxLat: b.MaxLat}
		}

		return Box{MinLon: b.MinLon + 360, MinLat: b.MinLat, MaxLon: b.MaxLon + 360, MaxLat: b.MaxLat}
	case b.MinLon >= 0 && b.MaxLon >= 0:
		if b.CrossesIDL() {
			return Box{MinLon: b.MinLon, MinLat: b.MinLat, MaxLon: b.MaxLon + 360, MaxLat: b.MaxLat}
		}

		return b
	default:
		// MinLon >= 0 > MaxLon: crosses the date line
		return Box{MinLon: b.MinLon, MinLat: b.MinLat, MaxLon: b.MaxLon + 360, MaxLat: b.MaxLat}
	}
}

// boxDistance returns the great-circle distance in km from p to the closest
// point of b; zero when p is inside b.
func boxDistance(b Box, p orb.Point) float64 {
	lat := max(b.MinLat, min(b.MaxLat, p[1]))

	width := b.Width()
	off := math.Mod(p[0]-b.MinLon, 360)
	if off < 0 {
		off += 360
	}
	lon := p[0]
	if off > width {
		// outside the longitude range: go to the nearer edge
		if off-width < 360-off {
			lon = b.MinLon + width
		} else {
			lon = b.MinLon
		}
	}

	return geo.DistanceHaversine(p, orb.Point{lon, lat}) / 1000
}
