package strategy

import (
	"github.com/arloliu/splitkit/internal/hash"
	"github.com/arloliu/splitkit/types"
)

const defaultVirtualNodes = 150

// ConsistentHash routes each block to a worker by hashing its keys onto a
// ring of virtual nodes. Weights are ignored.
type ConsistentHash struct {
	virtualNodes int
	hashSeed     uint64
}

var _ types.AssignmentStrategy = (*ConsistentHash)(nil)

// ConsistentHashOption configures a ConsistentHash strategy.
type ConsistentHashOption func(*ConsistentHash)

// NewConsistentHash creates a consistent hash strategy.
//
// The same (key, ordinal) block lands on the same worker across runs, and
// removing a worker only moves the blocks that worker owned.
//
// Parameters:
//   - opts: Optional configuration (WithVirtualNodes, WithHashSeed)
//
// Returns:
//   - *ConsistentHash: Initialized strategy
//
// Example:
//
//	s := strategy.NewConsistentHash(strategy.WithVirtualNodes(300))
//	planner := splitkit.NewPlanner(cfg, splitkit.WithStrategy(s))
func NewConsistentHash(opts ...ConsistentHashOption) *ConsistentHash {
	ch := &ConsistentHash{virtualNodes: defaultVirtualNodes}
	for _, opt := range opts {
		if opt != nil {
			opt(ch)
		}
	}

	return ch
}

// WithVirtualNodes sets the number of virtual nodes per worker.
//
// Higher values smooth the distribution at the cost of a larger ring.
func WithVirtualNodes(nodes int) ConsistentHashOption {
	return func(ch *ConsistentHash) {
		ch.virtualNodes = nodes
	}
}

// WithHashSeed sets the ring hash seed.
func WithHashSeed(seed uint64) ConsistentHashOption {
	return func(ch *ConsistentHash) {
		ch.hashSeed = seed
	}
}

// Assign maps every block to the ring owner of its keys.
//
// Every worker appears in the result, possibly with an empty list. Blocks
// without keys are routed by their position in the input, so they still
// land somewhere deterministic.
//
// Parameters:
//   - workers: Worker ids
//   - blocks: Blocks to assign
//
// Returns:
//   - map[string][]types.Block: Worker id to assigned blocks
//   - error: ErrNoWorkers when workers is empty
func (ch *ConsistentHash) Assign(workers []string, blocks []types.Block) (map[string][]types.Block, error) {
	if len(workers) == 0 {
		return nil, ErrNoWorkers
	}

	ring := hash.NewRing(workers, ch.virtualNodes, ch.hashSeed)
	out := emptyAssignments(workers)
	for i, b := range blocks {
		w := ownerOf(ring, b, i)
		out[w] = append(out[w], b)
	}

	return out, nil
}

func emptyAssignments(workers []string) map[string][]types.Block {
	out := make(map[string][]types.Block, len(workers))
	for _, w := range workers {
		out[w] = []types.Block{}
	}

	return out
}

// ownerOf returns the ring owner of b, falling back to positional routing
// for keyless blocks.
func ownerOf(ring *hash.Ring, b types.Block, pos int) string {
	if w := ring.LookupBlock(b); w != "" {
		return w
	}
	workers := ring.Workers()

	return workers[pos%len(workers)]
}
