package types

import "errors"

// Sentinel errors for the splitkit library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// Components wrap them with context using fmt.Errorf("%w: ...", ErrX, ...)
// so that callers can still distinguish the error category programmatically.
//
// Error categories:
//   - Configuration errors: fatal, raised at entry, never retried
//   - Value errors: bad input data, surfaced to the caller unchanged
//   - Enrichment errors: a per-item failure wrapped with the item identifier

// Configuration errors.
var (
	// ErrInvalidConfig is returned when a bound, hint, slice count or option is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAssignmentStrategyRequired is returned when a nil assignment strategy is supplied.
	ErrAssignmentStrategyRequired = errors.New("assignment strategy is required")

	// ErrNoWorkersAvailable is returned when trying to assign blocks with no workers.
	ErrNoWorkersAvailable = errors.New("no workers available")
)

// Value errors.
var (
	// ErrNegativeWeight is returned when an item reports a negative weight.
	ErrNegativeWeight = errors.New("negative weight")

	// ErrLengthMismatch is returned when paired inputs have different lengths.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrKeyNotFound is returned when reading a missing key from an accumulator
	// that has no factory configured.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidIndex is returned when a bucket index or axis is out of range.
	ErrInvalidIndex = errors.New("invalid index")
)

// IsConfigError reports whether err belongs to the configuration category.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err wraps one of the configuration sentinels
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrAssignmentStrategyRequired) ||
		errors.Is(err, ErrNoWorkersAvailable)
}
