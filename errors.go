package splitkit

import "github.com/arloliu/splitkit/types"

// Sentinel errors re-exported from the types package.
var (
	// ErrInvalidConfig is returned when the configuration or a split bound is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrAssignmentStrategyRequired is returned when WithStrategy is given nil.
	ErrAssignmentStrategyRequired = types.ErrAssignmentStrategyRequired

	// ErrNoWorkersAvailable is returned when a plan has no worker to assign to.
	ErrNoWorkersAvailable = types.ErrNoWorkersAvailable

	// ErrNegativeWeight is returned when an item reports a negative weight.
	ErrNegativeWeight = types.ErrNegativeWeight
)
