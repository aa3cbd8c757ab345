package splitkit

import "github.com/arloliu/splitkit/types"

// Re-export types from the types package.
//
// Subpackages depend on types rather than on the root package, which keeps
// the import graph acyclic while users still write splitkit.Block,
// splitkit.Logger and so on.
type (
	Block      = types.Block
	Assignment = types.Assignment
	Source     = types.Source
)

// Re-export interfaces from the types package for convenience.
type (
	AssignmentStrategy = types.AssignmentStrategy
	MetricsCollector   = types.MetricsCollector
	Logger             = types.Logger
	Hooks              = types.Hooks
)
