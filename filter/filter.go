package filter

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/tidwall/rtree"

	"github.com/arloliu/splitkit/internal/logging"
	"github.com/arloliu/splitkit/internal/metrics"
	"github.com/arloliu/splitkit/site"
	"github.com/arloliu/splitkit/types"
)

// Mode is the operating mode of a SourceFilter.
type Mode int

const (
	// ModeNoFilter passes every source with the full site collection.
	ModeNoFilter Mode = iota
	// ModeDistance computes per-site distances for every source.
	ModeDistance
	// ModeIndexed queries an R-tree of sites with the affected box.
	ModeIndexed
)

func (m Mode) String() string {
	switch m {
	case ModeNoFilter:
		return "no-filter"
	case ModeDistance:
		return "distance"
	case ModeIndexed:
		return "indexed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Match is a source that survived filtering, with the sites it affects.
type Match struct {
	Source   types.Source
	Sites    *site.Collection
	NumSites int
}

// Option configures a SourceFilter.
type Option func(*options)

type options struct {
	useIndex bool
	logger   types.Logger
	metrics  types.FilterMetrics
}

// WithoutIndex disables the R-tree: sources are filtered by distance.
func WithoutIndex() Option {
	return func(o *options) {
		o.useIndex = false
	}
}

// WithLogger sets a logger.
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
func WithMetrics(m types.FilterMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// SourceFilter selects the sites affected by each source.
//
// A SourceFilter is immutable after construction and safe for concurrent use.
type SourceFilter struct {
	sites   *site.Collection
	dist    *IntegrationDistance
	mode    Mode
	index   *rtree.RTreeG[int]
	idl     bool
	logger  types.Logger
	metrics types.FilterMetrics
}

// New creates a source filter over a site collection.
//
// The filter is indexed when an index is allowed (the default), a distance
// is configured and sites are given. Without an index it filters by distance
// when sites are given, and passes everything otherwise.
//
// Parameters:
//   - sites: Reference collection; nil disables filtering
//   - dist: Integration distance; nil keeps every site of every source
//   - opts: Optional configuration (WithoutIndex, WithLogger, WithMetrics)
//
// Returns:
//   - *SourceFilter: The filter
func New(sites *site.Collection, dist *IntegrationDistance, opts ...Option) *SourceFilter {
	o := options{useIndex: true}
	for _, opt := range opts {
		opt(&o)
	}

	f := &SourceFilter{
		sites:   sites,
		dist:    dist,
		logger:  logging.OrNop(o.logger),
		metrics: o.metrics,
	}
	if f.metrics == nil {
		f.metrics = metrics.NewNop()
	}

	switch {
	case sites == nil:
		f.mode = ModeNoFilter
	case o.useIndex && dist != nil:
		f.mode = ModeIndexed
		f.buildIndex()
	default:
		f.mode = ModeDistance
	}
	f.logger.Debug("source filter created", "mode", f.mode, "idl", f.idl)

	return f
}

func (f *SourceFilter) buildIndex() {
	start := time.Now()
	lons, idl := f.sites.FixedLons()
	lats := f.sites.Lats()

	f.idl = idl
	f.index = &rtree.RTreeG[int]{}
	for i := range lons {
		pt := [2]float64{lons[i], lats[i]}
		f.index.Insert(pt, pt, f.sites.ID(i))
	}
	f.metrics.RecordIndexBuild(len(lons), time.Since(start).Seconds())
}

// Mode returns the operating mode.
func (f *SourceFilter) Mode() Mode {
	return f.mode
}

// Sites returns the reference collection, nil in ModeNoFilter.
func (f *SourceFilter) Sites() *site.Collection {
	return f.sites
}

// IntegrationDistance returns the distance policy, possibly nil.
func (f *SourceFilter) IntegrationDistance() *IntegrationDistance {
	return f.dist
}

// Reindex returns a new filter over the same sites and distance, indexed
// when possible. Use it to restore ModeIndexed after decoding.
func (f *SourceFilter) Reindex(opts ...Option) *SourceFilter {
	return New(f.sites, f.dist, opts...)
}

// AffectedBox returns the native box of src enlarged by the largest
// integration distance of its region, in the longitude convention of the
// index.
//
// Returns:
//   - Box: The affected box
//   - error: ErrInvalidGeometry or ErrUnknownRegion
func (f *SourceFilter) AffectedBox(src types.Source) (Box, error) {
	km := 0.0
	if f.dist != nil {
		var err error
		if km, err = f.dist.Max(src.TectonicRegionType()); err != nil {
			return Box{}, err
		}
	}
	box, err := enlarge(src.BoundingBox(), km)
	if err != nil {
		return Box{}, err
	}
	if f.idl {
		box = fixIDL(box)
	}

	return box, nil
}

// Rectangle returns the lower-left corner, width and height of the affected
// box, for plotting.
func (f *SourceFilter) Rectangle(src types.Source) (corner [2]float64, width, height float64, err error) {
	box, err := f.AffectedBox(src)
	if err != nil {
		return corner, 0, 0, err
	}

	return [2]float64{box.MinLon, box.MinLat}, box.Width(), box.Height(), nil
}

// Filter yields every source that affects at least one site.
//
// The stream stops at the first error, which is wrapped with the id of the
// failing source.
func (f *SourceFilter) Filter(sources iter.Seq[types.Source]) iter.Seq2[Match, error] {
	return f.FilterWith(sources, nil)
}

// FilterWith is Filter against a different collection of the same sites,
// e.g. a subset. A nil sites uses the filter's own collection. Index results
// are resolved against sites.Complete().
func (f *SourceFilter) FilterWith(sources iter.Seq[types.Source], sites *site.Collection) iter.Seq2[Match, error] {
	if sites == nil {
		sites = f.sites
	}

	return func(yield func(Match, error) bool) {
		for src := range sources {
			m, ok, err := f.filterOne(src, sites)
			if err != nil {
				yield(Match{}, fmt.Errorf("source id=%s: %w", src.ID(), err))
				return
			}
			f.metrics.RecordSourceFiltered(f.mode.String(), ok, m.NumSites)
			if !ok {
				continue
			}
			if !yield(m, nil) {
				return
			}
		}
	}
}

// CloseSites returns the sites affected by src, or nil when there are none.
func (f *SourceFilter) CloseSites(src types.Source) (*site.Collection, error) {
	var found *site.Collection
	for m, err := range f.Filter(slices.Values([]types.Source{src})) {
		if err != nil {
			return nil, err
		}
		found = m.Sites
	}

	return found, nil
}

func (f *SourceFilter) filterOne(src types.Source, sites *site.Collection) (Match, bool, error) {
	switch {
	case f.mode == ModeNoFilter || sites == nil:
		return Match{Source: src, Sites: sites, NumSites: lenOf(sites)}, true, nil
	case f.mode == ModeIndexed:
		return f.filterIndexed(src, sites)
	case f.dist == nil:
		return Match{Source: src, Sites: sites, NumSites: sites.Len()}, true, nil
	default:
		return f.filterDistance(src, sites)
	}
}

// filterIndexed narrows the sites to the index hits inside the affected box,
// then keeps the hits within the magnitude-dependent distance, so it agrees
// with filterDistance.
func (f *SourceFilter) filterIndexed(src types.Source, sites *site.Collection) (Match, bool, error) {
	box, err := f.AffectedBox(src)
	if err != nil {
		return Match{}, false, err
	}
	ids := f.query(box)
	if len(ids) == 0 {
		return Match{}, false, nil
	}
	candidates, err := sites.Complete().Filter(ids)
	if err != nil {
		return Match{}, false, err
	}

	return f.filterDistance(src, candidates)
}

// query returns the sorted ids of the indexed sites inside box. The box and
// its copies shifted by ±360° are searched, so containment is correct on the
// cylinder whichever range the box and the sites use.
func (f *SourceFilter) query(box Box) []int {
	lo, hi := box.MinLon, box.MaxLon
	if lo > hi {
		hi += 360
	}

	seen := make(map[int]struct{})
	for _, shift := range [...]float64{-360, 0, 360} {
		f.index.Search(
			[2]float64{lo + shift, box.MinLat},
			[2]float64{hi + shift, box.MaxLat},
			func(_, _ [2]float64, id int) bool {
				seen[id] = struct{}{}
				return true
			},
		)
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

func (f *SourceFilter) filterDistance(src types.Source, sites *site.Collection) (Match, bool, error) {
	_, maxMag := src.MagnitudeRange()
	threshold, err := f.dist.At(src.TectonicRegionType(), maxMag)
	if err != nil {
		return Match{}, false, err
	}

	lons, lats := sites.Lons(), sites.Lats()
	var dists []float64
	if sd, ok := src.(types.SiteDistancer); ok {
		if dists, err = sd.Distances(lons, lats); err != nil {
			return Match{}, false, err
		}
		if len(dists) != len(lons) {
			return Match{}, false, fmt.Errorf("%w: %d distances for %d sites", types.ErrLengthMismatch, len(dists), len(lons))
		}
	} else {
		b := src.BoundingBox()
		if err := validBound(b); err != nil {
			return Match{}, false, err
		}
		box := BoxFromBound(b)
		dists = make([]float64, len(lons))
		for i := range lons {
			dists[i] = boxDistance(box, sites.Point(i))
		}
	}

	keep := make([]bool, len(dists))
	n := 0
	for i, d := range dists {
		if d <= threshold {
			keep[i] = true
			n++
		}
	}
	if n == 0 {
		return Match{}, false, nil
	}
	sub, err := sites.Mask(keep)
	if err != nil {
		return Match{}, false, err
	}

	return Match{Source: src, Sites: sub, NumSites: sub.Len()}, true, nil
}

func lenOf(c *site.Collection) int {
	if c == nil {
		return 0
	}

	return c.Len()
}
