package source

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/arloliu/splitkit/types"
)

// Static implements a candidate list with a fixed set of sources.
type Static struct {
	mu      sync.RWMutex
	sources []types.Source
}

var _ types.SourceLister = (*Static)(nil)

// NewStatic creates a new static candidate list.
//
// Parameters:
//   - sources: Fixed list of sources
//
// Returns:
//   - *Static: Initialized static list
//
// Example:
//
//	src := source.NewStatic([]types.Source{
//	    source.NewPoint("p1", "Active Shallow Crust", 5, 7, 10.2, 45.1),
//	})
//	sf, _ := filter.New(sites, dist)
//	for m, err := range sf.Filter(src.All()) { /* ... */ }
func NewStatic(sources []types.Source) *Static {
	return &Static{
		sources: slices.Clone(sources),
	}
}

// ListSources returns a copy of the static list.
//
// Returns:
//   - []types.Source: The fixed list of sources
//   - error: Always nil (never fails)
func (s *Static) ListSources(_ context.Context) ([]types.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.sources), nil
}

// All iterates over a snapshot of the list.
func (s *Static) All() iter.Seq[types.Source] {
	s.mu.RLock()
	snapshot := slices.Clone(s.sources)
	s.mu.RUnlock()

	return slices.Values(snapshot)
}

// Len returns the number of sources.
func (s *Static) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sources)
}

// Update replaces the source list.
//
// Parameters:
//   - sources: New list of sources
func (s *Static) Update(sources []types.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sources = slices.Clone(sources)
}
