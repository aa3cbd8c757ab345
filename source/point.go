package source

import (
	"github.com/paulmach/orb"

	"github.com/arloliu/splitkit/types"
)

// Point is a source located at a single epicenter.
type Point struct {
	SourceID string    `json:"id"`
	TRT      string    `json:"tectonicRegionType"`
	MinMag   float64   `json:"minMag"`
	MaxMag   float64   `json:"maxMag"`
	Location orb.Point `json:"location"`
}

var _ types.Source = (*Point)(nil)

// NewPoint creates a point source.
func NewPoint(id, trt string, minMag, maxMag, lon, lat float64) *Point {
	return &Point{
		SourceID: id,
		TRT:      trt,
		MinMag:   minMag,
		MaxMag:   maxMag,
		Location: orb.Point{lon, lat},
	}
}

// ID returns the source id.
func (p *Point) ID() string { return p.SourceID }

// TectonicRegionType returns the region classification.
func (p *Point) TectonicRegionType() string { return p.TRT }

// MagnitudeRange returns the minimum and maximum magnitude.
func (p *Point) MagnitudeRange() (float64, float64) { return p.MinMag, p.MaxMag }

// BoundingBox returns the degenerate box around the epicenter.
func (p *Point) BoundingBox() orb.Bound {
	return p.Location.Bound()
}
