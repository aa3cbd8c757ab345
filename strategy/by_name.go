package strategy

import (
	"fmt"

	"github.com/arloliu/splitkit/registry"
	"github.com/arloliu/splitkit/types"
)

// Strategy names accepted by ByName and by the configuration file.
const (
	NameConsistentHash         = "consistent-hash"
	NameWeightedConsistentHash = "weighted-consistent-hash"
	NameRoundRobin             = "round-robin"
)

// Settings carries the ring parameters shared by the hashing strategies.
type Settings struct {
	VirtualNodes int
	HashSeed     uint64
	Logger       types.Logger
}

type factory func(Settings) types.AssignmentStrategy

var factories = registry.New[string, factory]("strategy").
	MustRegister(func(s Settings) types.AssignmentStrategy {
		return NewConsistentHash(WithVirtualNodes(s.VirtualNodes), WithHashSeed(s.HashSeed))
	}, NameConsistentHash).
	MustRegister(func(s Settings) types.AssignmentStrategy {
		return NewWeightedConsistentHash(
			WithWeightedVirtualNodes(s.VirtualNodes),
			WithWeightedHashSeed(s.HashSeed),
			WithWeightedLogger(s.Logger),
		)
	}, NameWeightedConsistentHash, "weighted").
	MustRegister(func(Settings) types.AssignmentStrategy {
		return NewRoundRobin()
	}, NameRoundRobin)

// ByName builds a strategy from its configuration name.
//
// Parameters:
//   - name: One of the Name* constants (or the "weighted" alias)
//   - s: Ring settings, ignored by RoundRobin
//
// Returns:
//   - types.AssignmentStrategy: The strategy
//   - error: ErrUnknownStrategy for an unregistered name
func ByName(name string, s Settings) (types.AssignmentStrategy, error) {
	f, err := factories.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	return f(s), nil
}

// Names lists the registered strategy names in registration order.
func Names() []string {
	return factories.Keys()
}
