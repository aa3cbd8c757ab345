package testing

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/arloliu/splitkit/types"
)

// WeightGenerator generates item weights following a distribution pattern.
type WeightGenerator interface {
	// Weights generates n weights.
	Weights(n int) []float64
}

// Uniform gives every item the same weight.
type Uniform struct {
	weight float64
}

// NewUniform creates a uniform generator. Non-positive weights become 1.
func NewUniform(weight float64) *Uniform {
	if !(weight > 0) {
		weight = 1
	}

	return &Uniform{weight: weight}
}

// Weights returns n equal weights.
func (g *Uniform) Weights(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.weight
	}

	return out
}

// Skewed gives a leading fraction of the items an extreme weight and the
// rest a normal weight.
type Skewed struct {
	extremeFraction float64
	extremeWeight   float64
	normalWeight    float64
}

// NewSkewed creates a skewed generator.
//
// For 1000 items with a 5% extreme fraction the first 50 items get the
// extreme weight and the remaining 950 get the normal weight.
//
// Parameters:
//   - extremeFraction: Share of extreme items, in (0, 1); defaults to 0.05
//   - extremeWeight: Weight of extreme items; defaults to 100
//   - normalWeight: Weight of the other items; defaults to 1
//
// Returns:
//   - *Skewed: Initialized skewed generator
func NewSkewed(extremeFraction, extremeWeight, normalWeight float64) *Skewed {
	if !(extremeFraction > 0 && extremeFraction < 1) {
		extremeFraction = 0.05
	}
	if !(extremeWeight > 0) {
		extremeWeight = 100
	}
	if !(normalWeight > 0) {
		normalWeight = 1
	}

	return &Skewed{
		extremeFraction: extremeFraction,
		extremeWeight:   extremeWeight,
		normalWeight:    normalWeight,
	}
}

// Weights returns n weights, the first int(n*fraction) of them extreme.
func (g *Skewed) Weights(n int) []float64 {
	out := make([]float64, n)
	extreme := int(float64(n) * g.extremeFraction)
	for i := range out {
		if i < extreme {
			out[i] = g.extremeWeight
		} else {
			out[i] = g.normalWeight
		}
	}

	return out
}

// Pareto draws heavy-tailed weights, the shape of rupture counts per source.
// The draws are reproducible for a given seed.
type Pareto struct {
	alpha float64
	scale float64
	seed  uint64
}

// NewPareto creates a Pareto generator with shape alpha and minimum scale.
// Non-positive parameters default to alpha 1.5 and scale 1.
func NewPareto(alpha, scale float64, seed uint64) *Pareto {
	if !(alpha > 0) {
		alpha = 1.5
	}
	if !(scale > 0) {
		scale = 1
	}

	return &Pareto{alpha: alpha, scale: scale, seed: seed}
}

// Weights returns n draws. Every call with the same n returns the same weights.
func (g *Pareto) Weights(n int) []float64 {
	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		// 1-U is in (0, 1], so the power is finite.
		out[i] = g.scale / math.Pow(1-rng.Float64(), 1/g.alpha)
	}

	return out
}

// Blocks wraps weights into blocks keyed [key, index], the way the planner
// keys its chunks.
func Blocks(key string, weights []float64) []types.Block {
	out := make([]types.Block, len(weights))
	for i, w := range weights {
		out[i] = types.Block{Keys: []string{key, fmt.Sprint(i)}, Weight: w, Size: 1}
	}

	return out
}
