// Package strategy assigns split blocks to workers.
//
// A block is the descriptor of one chunk: its keys ([classification key,
// ordinal]) and its total weight. Three strategies are built in:
//
//   - ConsistentHash: ring routing on block keys; weights ignored
//   - WeightedConsistentHash: ring routing with extreme-block round robin and a soft load cap
//   - RoundRobin: blocks dealt in input order
//
// # Choosing a strategy
//
// Chunks from the splitter are already close to equal weight, so RoundRobin
// is usually balanced enough for a one-shot run. ConsistentHash keeps the
// same block on the same worker across runs, which matters when workers
// cache per-key state. WeightedConsistentHash trades a little of that
// stability for bounded load when the last chunk of each key is much
// lighter than the rest.
//
// ByName resolves the configuration names. Custom strategies implement
// types.AssignmentStrategy.
package strategy
