package filter

import "errors"

var (
	// ErrUnknownRegion is returned when the integration distance has no entry
	// for a tectonic region type and no "default" entry.
	ErrUnknownRegion = errors.New("no integration distance for tectonic region")

	// ErrInvalidGeometry is returned for a source bounding box that is not a
	// valid lon/lat extent.
	ErrInvalidGeometry = errors.New("invalid source geometry")
)
