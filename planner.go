package splitkit

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"

	"github.com/arloliu/splitkit/internal/hooks"
	"github.com/arloliu/splitkit/internal/logging"
	"github.com/arloliu/splitkit/internal/metrics"
	"github.com/arloliu/splitkit/split"
	"github.com/arloliu/splitkit/strategy"
	"github.com/arloliu/splitkit/types"
	"github.com/arloliu/splitkit/weighted"
)

// unkeyed is the block key used when items carry no classification key.
const unkeyed = "all"

// Planner splits work into chunks and assigns the chunks to workers.
//
// A Planner is immutable after construction and safe for concurrent use.
type Planner struct {
	cfg      Config
	workers  []string
	strategy AssignmentStrategy
	logger   Logger
	metrics  MetricsCollector
	hooks    *hooks.Runner
}

// NewPlanner creates a planner from a configuration.
//
// Defaults are applied to a copy of cfg before validation. Without
// WithStrategy the strategy is built from cfg.Assignment.
//
// Parameters:
//   - cfg: Planner configuration
//   - opts: Optional dependencies (WithStrategy, WithLogger, WithMetrics, WithHooks)
//
// Returns:
//   - *Planner: Ready planner
//   - error: ErrInvalidConfig or ErrAssignmentStrategyRequired
//
// Example:
//
//	cfg := splitkit.DefaultConfig()
//	cfg.Split.Hint = 16
//	planner, err := splitkit.NewPlanner(cfg, splitkit.WithLogger(logger))
func NewPlanner(cfg Config, opts ...Option) (*Planner, error) {
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o plannerOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	p := &Planner{
		cfg:     cfg,
		workers: cfg.WorkerIDs(),
		logger:  logging.OrNop(o.logger),
		metrics: metrics.OrNop(o.metrics),
	}
	p.hooks = hooks.NewRunner(o.hooks, p.logger)

	switch {
	case o.strategySet && o.strategy == nil:
		return nil, ErrAssignmentStrategyRequired
	case o.strategySet:
		p.strategy = o.strategy
	default:
		s, err := strategy.ByName(cfg.Assignment.Strategy, strategy.Settings{
			VirtualNodes: cfg.Assignment.VirtualNodes,
			HashSeed:     cfg.Assignment.HashSeed,
			Logger:       p.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		p.strategy = s
	}

	cfg.ValidateWithWarnings(p.logger)

	return p, nil
}

// Config returns the effective configuration, defaults included.
func (p *Planner) Config() Config {
	return p.cfg
}

// Workers returns the worker ids chunks are assigned to.
func (p *Planner) Workers() []string {
	return slices.Clone(p.workers)
}

func (p *Planner) splitOptions() []split.Option {
	return []split.Option{split.WithLogger(p.logger), split.WithMetrics(p.metrics)}
}

// Plan is the outcome of planning: the chunks, one block descriptor per
// chunk and the worker assignment of those blocks.
type Plan[T any] struct {
	// Chunks holds the produced chunks in emission order.
	Chunks []*weighted.Sequence[T]

	// Blocks[i] describes Chunks[i]. Keys are [key, ordinal within key].
	Blocks []Block

	// Assignment maps every worker to its blocks.
	Assignment Assignment

	byID map[string]int
}

// Workers returns the worker ids of the assignment in ascending order.
func (p *Plan[T]) Workers() []string {
	return slices.Sorted(maps.Keys(p.Assignment.Blocks))
}

// Chunk returns the chunk a block describes.
func (p *Plan[T]) Chunk(b Block) (*weighted.Sequence[T], bool) {
	i, ok := p.byID[b.ID()]
	if !ok {
		return nil, false
	}

	return p.Chunks[i], true
}

// ChunksFor returns the chunks assigned to a worker, in assignment order.
func (p *Plan[T]) ChunksFor(workerID string) []*weighted.Sequence[T] {
	blocks := p.Assignment.Blocks[workerID]
	out := make([]*weighted.Sequence[T], 0, len(blocks))
	for _, b := range blocks {
		if c, ok := p.Chunk(b); ok {
			out = append(out, c)
		}
	}

	return out
}

// TotalWeight returns the sum of all chunk weights.
func (p *Plan[T]) TotalWeight() float64 {
	total := 0.0
	for _, b := range p.Blocks {
		total += b.Weight
	}

	return total
}

// PlanBlocks splits items into about cfg.Split.Hint weight-balanced chunks
// and assigns them.
//
// Parameters:
//   - p: Planner
//   - items: Finite input, not modified
//   - weight: Per-item weight; nil means unit weight
//   - key: Per-item classification key; nil means a single key
//
// Returns:
//   - *Plan[T]: Chunks and assignment
//   - error: Split or assignment error
func PlanBlocks[T any, K cmp.Ordered](p *Planner, items []T, weight func(T) float64, key func(T) K) (*Plan[T], error) {
	chunks, err := split.SplitInBlocks(items, p.cfg.Split.Hint, weight, key, p.splitOptions()...)
	if err != nil {
		return nil, err
	}

	return newPlan(p, chunks, key)
}

// PlanWeight splits a stream into chunks of weight at most
// cfg.Split.MaxWeight, in input order, and assigns them.
//
// Parameters:
//   - p: Planner
//   - items: Input stream, consumed once
//   - weight: Per-item weight; nil means unit weight
//   - key: Per-item classification key; nil means a single key
//
// Returns:
//   - *Plan[T]: Chunks and assignment
//   - error: Split or assignment error
func PlanWeight[T any, K comparable](p *Planner, items iter.Seq[T], weight func(T) float64, key func(T) K) (*Plan[T], error) {
	chunks, err := split.BlockSplitter(items, p.cfg.Split.MaxWeight, weight, key, p.splitOptions()...)
	if err != nil {
		return nil, err
	}

	return newPlan(p, chunks, key)
}

func newPlan[T any, K comparable](p *Planner, chunks split.Chunks[T], key func(T) K) (*Plan[T], error) {
	all, err := split.Collect(chunks)
	if err != nil {
		return nil, err
	}

	plan := &Plan[T]{
		Chunks: all,
		Blocks: make([]Block, len(all)),
		byID:   make(map[string]int, len(all)),
	}
	ordinals := make(map[string]int)
	for i, c := range all {
		name := unkeyed
		if key != nil {
			name = fmt.Sprint(key(c.At(0)))
		}
		b := Block{
			Keys:   []string{name, strconv.Itoa(ordinals[name])},
			Weight: c.Weight(),
			Size:   c.Len(),
		}
		ordinals[name]++
		plan.Blocks[i] = b
		plan.byID[b.ID()] = i
	}

	assigned, err := p.strategy.Assign(p.workers, plan.Blocks)
	if err != nil {
		return nil, fmt.Errorf("assign blocks: %w", err)
	}
	plan.Assignment = types.NewAssignment(assigned)

	for _, w := range plan.Workers() {
		p.metrics.RecordAssignment(w, len(plan.Assignment.Blocks[w]), plan.Assignment.Load[w])
	}
	p.logger.Info("plan ready",
		"chunks", len(plan.Chunks),
		"workers", len(plan.Assignment.Blocks),
		"total_weight", plan.TotalWeight(),
	)

	return plan, nil
}
