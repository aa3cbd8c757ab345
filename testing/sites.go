package testing

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/arloliu/splitkit/site"
	"github.com/arloliu/splitkit/types"
)

// SiteGrid lays sites on a regular grid over b, row by row from the south
// west corner. Ids follow the grid order starting at 0.
//
// Parameters:
//   - b: Grid extent in degrees; Max.Lon may exceed 180 for grids across the antimeridian
//   - step: Grid spacing in degrees, positive
//
// Returns:
//   - *site.Collection: The grid
//   - error: ErrInvalidConfig for a non-positive step, or a site validation error
func SiteGrid(b orb.Bound, step float64) (*site.Collection, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("%w: grid step %v must be positive", types.ErrInvalidConfig, step)
	}

	var lons, lats []float64
	for lat := b.Min.Lat(); lat <= b.Max.Lat(); lat += step {
		for lon := b.Min.Lon(); lon <= b.Max.Lon(); lon += step {
			lons = append(lons, lon)
			lats = append(lats, lat)
		}
	}

	return site.New(lons, lats)
}
