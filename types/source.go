package types

import (
	"context"

	"github.com/paulmach/orb"
)

// Source is a candidate that can be filtered against a site collection.
//
// BoundingBox returns the native extent of the source in degrees. A box whose
// Min longitude is greater than its Max longitude crosses the International
// Date Line.
type Source interface {
	ID() string
	TectonicRegionType() string
	MagnitudeRange() (minMag, maxMag float64)
	BoundingBox() orb.Bound
}

// SiteDistancer is implemented by sources that compute their own distance
// (in km) to a set of sites. Sources that do not implement it are measured
// against their bounding box.
type SiteDistancer interface {
	Distances(lons, lats []float64) ([]float64, error)
}

// SourceLister discovers the candidate sources of a calculation.
type SourceLister interface {
	// ListSources returns the current candidates.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//
	// Returns:
	//   - []Source: Candidate sources
	//   - error: Discovery error
	ListSources(ctx context.Context) ([]Source, error)
}
