package types

// AssignmentStrategy calculates block assignments for a set of workers.
//
// Strategies implement different assignment algorithms:
//   - ConsistentHash: Consistent hashing with virtual nodes (stable routing of keys)
//   - WeightedConsistentHash: Consistent hashing with soft load caps for uneven chunk weights
//   - RoundRobin: Simple round-robin distribution
//   - Custom: User-defined algorithms
//
// Strategy implementations should:
//   - Be deterministic (same input → same output)
//   - Handle edge cases (no workers, no blocks, zero weights)
//   - Be stateless (no side effects)
type AssignmentStrategy interface {
	// Assign calculates block assignments for the given workers.
	//
	// Parameters:
	//   - workers: List of worker IDs to assign blocks to
	//   - blocks: List of blocks to assign
	//
	// Returns:
	//   - map[string][]Block: Map from workerID to assigned blocks
	//   - error: Assignment error (e.g., no workers available)
	Assign(workers []string, blocks []Block) (map[string][]Block, error)
}
