package strategy

import (
	"cmp"
	"slices"

	"github.com/arloliu/splitkit/internal/hash"
	"github.com/arloliu/splitkit/internal/logging"
	"github.com/arloliu/splitkit/types"
)

const (
	defaultOverloadThreshold = 1.3
	defaultExtremeThreshold  = 2.0
	defaultBlockWeight       = 1.0

	minOverloadThreshold = 1.15
	minExtremeThreshold  = 1.5
)

// WeightedConsistentHash routes blocks by consistent hashing but keeps
// worker loads under a soft cap.
//
// Blocks heavier than extremeThreshold times the mean block weight are
// dealt round robin, heaviest first, before anything else. The rest follow
// the ring unless that would push the owner past overloadThreshold times
// the mean worker load, in which case they go to the lightest worker.
type WeightedConsistentHash struct {
	virtualNodes      int
	hashSeed          uint64
	overloadThreshold float64
	extremeThreshold  float64
	defaultWeight     float64
	logger            types.Logger
}

var _ types.AssignmentStrategy = (*WeightedConsistentHash)(nil)

// WeightedConsistentHashOption configures a WeightedConsistentHash strategy.
type WeightedConsistentHashOption func(*WeightedConsistentHash)

// NewWeightedConsistentHash creates a weighted consistent hash strategy.
//
// Out-of-range settings are clamped and reported through the logger.
//
// Parameters:
//   - opts: Optional configuration (WithWeightedVirtualNodes, WithWeightedHashSeed,
//     WithOverloadThreshold, WithExtremeThreshold, WithDefaultWeight, WithWeightedLogger)
//
// Returns:
//   - *WeightedConsistentHash: Initialized strategy
func NewWeightedConsistentHash(opts ...WeightedConsistentHashOption) *WeightedConsistentHash {
	wch := &WeightedConsistentHash{
		virtualNodes:      defaultVirtualNodes,
		overloadThreshold: defaultOverloadThreshold,
		extremeThreshold:  defaultExtremeThreshold,
		defaultWeight:     defaultBlockWeight,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(wch)
		}
	}
	wch.normalize()

	return wch
}

// WithWeightedVirtualNodes sets the number of virtual nodes per worker.
func WithWeightedVirtualNodes(nodes int) WeightedConsistentHashOption {
	return func(wch *WeightedConsistentHash) {
		wch.virtualNodes = nodes
	}
}

// WithWeightedHashSeed sets the ring hash seed.
func WithWeightedHashSeed(seed uint64) WeightedConsistentHashOption {
	return func(wch *WeightedConsistentHash) {
		wch.hashSeed = seed
	}
}

// WithOverloadThreshold sets the soft cap as a multiple of the mean worker load.
func WithOverloadThreshold(threshold float64) WeightedConsistentHashOption {
	return func(wch *WeightedConsistentHash) {
		wch.overloadThreshold = threshold
	}
}

// WithExtremeThreshold sets the multiple of the mean block weight above
// which a block is dealt round robin.
func WithExtremeThreshold(threshold float64) WeightedConsistentHashOption {
	return func(wch *WeightedConsistentHash) {
		wch.extremeThreshold = threshold
	}
}

// WithDefaultWeight sets the weight used for blocks with a non-positive weight.
func WithDefaultWeight(weight float64) WeightedConsistentHashOption {
	return func(wch *WeightedConsistentHash) {
		wch.defaultWeight = weight
	}
}

// WithWeightedLogger sets the logger for clamping warnings and overflow diagnostics.
func WithWeightedLogger(logger types.Logger) WeightedConsistentHashOption {
	return func(wch *WeightedConsistentHash) {
		wch.logger = logger
	}
}

type weightedBlock struct {
	block  types.Block
	weight float64
	pos    int
}

// Assign distributes blocks across workers.
//
// When every block has the same effective weight the result equals plain
// consistent hashing with the same ring settings.
//
// Parameters:
//   - workers: Worker ids (order does not matter)
//   - blocks: Blocks to assign
//
// Returns:
//   - map[string][]types.Block: Worker id to assigned blocks
//   - error: ErrNoWorkers when workers is empty
func (wch *WeightedConsistentHash) Assign(workers []string, blocks []types.Block) (map[string][]types.Block, error) {
	if len(workers) == 0 {
		return nil, ErrNoWorkers
	}

	sorted := slices.Clone(workers)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	out := emptyAssignments(sorted)
	if len(blocks) == 0 {
		return out, nil
	}

	entries, total, uniform := wch.entries(blocks)
	ring := hash.NewRing(sorted, wch.virtualNodes, wch.hashSeed)

	if uniform {
		for _, e := range entries {
			w := ownerOf(ring, e.block, e.pos)
			out[w] = append(out[w], e.block)
		}

		return out, nil
	}

	extremeCutoff := total / float64(len(blocks)) * wch.extremeThreshold
	softCap := total / float64(len(sorted)) * wch.overloadThreshold

	var extremes, normals []weightedBlock
	for _, e := range entries {
		if e.weight > extremeCutoff {
			extremes = append(extremes, e)
		} else {
			normals = append(normals, e)
		}
	}

	load := make(map[string]float64, len(sorted))

	slices.SortStableFunc(extremes, func(a, b weightedBlock) int {
		if c := cmp.Compare(b.weight, a.weight); c != 0 {
			return c
		}

		return a.block.Compare(b.block)
	})
	for i, e := range extremes {
		w := sorted[i%len(sorted)]
		out[w] = append(out[w], e.block)
		load[w] += e.weight
	}
	if len(extremes) > 0 {
		wch.logger.Debug("dealt extreme blocks round robin",
			"extreme_blocks", len(extremes),
			"total_blocks", len(blocks),
			"extreme_cutoff", extremeCutoff,
		)
	}

	overflow := 0
	for _, e := range normals {
		w := ownerOf(ring, e.block, e.pos)
		if load[w]+e.weight > softCap {
			w = lightest(sorted, load)
			if load[w]+e.weight > softCap {
				overflow++
			}
		}
		out[w] = append(out[w], e.block)
		load[w] += e.weight
	}
	if overflow > 0 {
		wch.logger.Debug("soft load cap exceeded",
			"overflow_count", overflow,
			"soft_cap", softCap,
			"total_weight", total,
		)
	}

	return out, nil
}

func (wch *WeightedConsistentHash) entries(blocks []types.Block) ([]weightedBlock, float64, bool) {
	out := make([]weightedBlock, len(blocks))
	total := 0.0
	uniform := true
	for i, b := range blocks {
		w := b.EffectiveWeight(wch.defaultWeight)
		out[i] = weightedBlock{block: b, weight: w, pos: i}
		total += w
		if i > 0 && w != out[0].weight {
			uniform = false
		}
	}

	return out, total, uniform
}

func (wch *WeightedConsistentHash) normalize() {
	wch.logger = logging.OrNop(wch.logger)

	if wch.virtualNodes < 1 {
		wch.logger.Warn("virtual nodes must be positive; clamping", "provided", wch.virtualNodes, "using", 1)
		wch.virtualNodes = 1
	}
	if !(wch.overloadThreshold >= minOverloadThreshold) {
		wch.logger.Warn("overload threshold too low; clamping", "provided", wch.overloadThreshold, "using", minOverloadThreshold)
		wch.overloadThreshold = minOverloadThreshold
	}
	if !(wch.extremeThreshold >= minExtremeThreshold) {
		wch.logger.Warn("extreme threshold too low; clamping", "provided", wch.extremeThreshold, "using", minExtremeThreshold)
		wch.extremeThreshold = minExtremeThreshold
	}
	if !(wch.defaultWeight > 0) {
		wch.logger.Warn("default weight must be positive; clamping", "provided", wch.defaultWeight, "using", defaultBlockWeight)
		wch.defaultWeight = defaultBlockWeight
	}
}

// lightest returns the least loaded worker, breaking ties by id.
func lightest(workers []string, load map[string]float64) string {
	best := workers[0]
	for _, w := range workers[1:] {
		if load[w] < load[best] {
			best = w
		}
	}

	return best
}
