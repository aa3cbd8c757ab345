// Package source provides built-in filter candidates and candidate lists.
//
// The package includes:
//
//   - Point: A point source at a single location
//   - Area: A source with a polygonal surface projection
//   - Static: Fixed list of candidates
//
// Custom candidates can be implemented by satisfying the types.Source
// interface; custom lists by satisfying types.SourceLister.
package source
