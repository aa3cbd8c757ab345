package strategy

import (
	"github.com/arloliu/splitkit/types"
)

// RoundRobin deals blocks to workers in input order.
type RoundRobin struct{}

var _ types.AssignmentStrategy = (*RoundRobin)(nil)

// NewRoundRobin creates a round-robin strategy.
//
// Block counts per worker differ by at most one. Since the splitter already
// balances chunk weights, this is often enough for a single run.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Assign gives block i to workers[i % len(workers)].
//
// Parameters:
//   - workers: Worker ids
//   - blocks: Blocks to assign
//
// Returns:
//   - map[string][]types.Block: Worker id to assigned blocks
//   - error: ErrNoWorkers when workers is empty
func (rr *RoundRobin) Assign(workers []string, blocks []types.Block) (map[string][]types.Block, error) {
	if len(workers) == 0 {
		return nil, ErrNoWorkers
	}

	out := emptyAssignments(workers)
	for i, b := range blocks {
		w := workers[i%len(workers)]
		out[w] = append(out[w], b)
	}

	return out, nil
}
