// Package filter narrows a set of candidate sources to those close to a site
// collection.
//
// A SourceFilter works in one of three modes, chosen at construction:
//
//   - ModeIndexed: the sites go into an R-tree once; each source is kept when
//     its bounding box, enlarged by the integration distance of its tectonic
//     region, contains at least one site.
//   - ModeDistance: each source measures its distance to every site and keeps
//     the sites within the magnitude-dependent integration distance.
//   - ModeNoFilter: no site collection was given; every source passes.
//
// Longitudes live on a cylinder. When the site collection spans the
// International Date Line the sites are indexed in [0, 360) and the affected
// boxes are moved to the same range.
//
// The index is never serialized: a SourceFilter decoded from JSON works in
// ModeDistance until Reindex is called.
package filter
