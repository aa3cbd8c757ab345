package filter

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/splitkit/types"
)

// DefaultRegion is the fallback entry of an IntegrationDistance.
const DefaultRegion = "default"

// MagDist is one point of a magnitude-dependent distance curve.
type MagDist struct {
	Mag  float64
	Dist float64
}

// IntegrationDistance maps a tectonic region type to the maximum distance, in
// km, at which a source still affects a site.
//
// Each region holds either a scalar or a curve of (magnitude, distance)
// points that is interpolated linearly and clamped at both ends.
type IntegrationDistance struct {
	curves map[string][]MagDist
}

// NewScalar creates a distance that applies to every region.
func NewScalar(km float64) (*IntegrationDistance, error) {
	return NewIntegrationDistance(map[string]float64{DefaultRegion: km})
}

// NewIntegrationDistance creates a distance from per-region scalars.
//
// Parameters:
//   - values: Distance in km per tectonic region type, "default" as fallback
//
// Returns:
//   - *IntegrationDistance: The distance policy
//   - error: ErrInvalidConfig for a non-positive or non-finite distance
func NewIntegrationDistance(values map[string]float64) (*IntegrationDistance, error) {
	curves := make(map[string][]MagDist, len(values))
	for trt, km := range values {
		curves[trt] = []MagDist{{Dist: km}}
	}

	return NewMagnitudeDependent(curves)
}

// NewMagnitudeDependent creates a distance from per-region curves. A curve
// with a single point is a scalar.
func NewMagnitudeDependent(curves map[string][]MagDist) (*IntegrationDistance, error) {
	d := &IntegrationDistance{curves: make(map[string][]MagDist, len(curves))}
	for trt, curve := range curves {
		if len(curve) == 0 {
			return nil, fmt.Errorf("%w: empty integration distance for %q", types.ErrInvalidConfig, trt)
		}
		sorted := slices.Clone(curve)
		slices.SortStableFunc(sorted, func(a, b MagDist) int { return cmp.Compare(a.Mag, b.Mag) })
		for _, p := range sorted {
			if !(p.Dist > 0) || math.IsInf(p.Dist, 0) || math.IsNaN(p.Mag) {
				return nil, fmt.Errorf("%w: integration distance %v for %q", types.ErrInvalidConfig, p.Dist, trt)
			}
		}
		d.curves[trt] = sorted
	}

	return d, nil
}

// Regions returns the configured region types in ascending order.
func (d *IntegrationDistance) Regions() []string {
	return slices.Sorted(maps.Keys(d.curves))
}

func (d *IntegrationDistance) curve(trt string) ([]MagDist, error) {
	if c, ok := d.curves[trt]; ok {
		return c, nil
	}
	if c, ok := d.curves[DefaultRegion]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, trt)
}

// Max returns the largest distance configured for trt.
func (d *IntegrationDistance) Max(trt string) (float64, error) {
	c, err := d.curve(trt)
	if err != nil {
		return 0, err
	}
	best := 0.0
	for _, p := range c {
		best = max(best, p.Dist)
	}

	return best, nil
}

// At returns the distance for trt at magnitude mag.
func (d *IntegrationDistance) At(trt string, mag float64) (float64, error) {
	c, err := d.curve(trt)
	if err != nil {
		return 0, err
	}

	return interpolate(c, mag), nil
}

func interpolate(c []MagDist, mag float64) float64 {
	if len(c) == 1 || mag <= c[0].Mag {
		return c[0].Dist
	}
	last := c[len(c)-1]
	if mag >= last.Mag {
		return last.Dist
	}
	i, _ := slices.BinarySearchFunc(c, mag, func(p MagDist, m float64) int { return cmp.Compare(p.Mag, m) })
	if c[i].Mag == mag {
		return c[i].Dist
	}
	lo, hi := c[i-1], c[i]

	return lo.Dist + (hi.Dist-lo.Dist)*(mag-lo.Mag)/(hi.Mag-lo.Mag)
}

// encoded renders scalars as numbers and curves as [mag, dist] pairs.
func (d *IntegrationDistance) encoded() map[string]any {
	out := make(map[string]any, len(d.curves))
	for trt, c := range d.curves {
		if len(c) == 1 {
			out[trt] = c[0].Dist
			continue
		}
		pairs := make([][2]float64, len(c))
		for i, p := range c {
			pairs[i] = [2]float64{p.Mag, p.Dist}
		}
		out[trt] = pairs
	}

	return out
}

func (d *IntegrationDistance) decode(raw map[string]any) error {
	curves := make(map[string][]MagDist, len(raw))
	for trt, v := range raw {
		c, err := toCurve(v)
		if err != nil {
			return fmt.Errorf("%w: region %q: %v", types.ErrInvalidConfig, trt, err)
		}
		curves[trt] = c
	}
	decoded, err := NewMagnitudeDependent(curves)
	if err != nil {
		return err
	}
	*d = *decoded

	return nil
}

func toCurve(v any) ([]MagDist, error) {
	if f, ok := toFloat(v); ok {
		return []MagDist{{Dist: f}}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a number or a list of [mag, dist] pairs, got %T", v)
	}
	out := make([]MagDist, 0, len(list))
	for _, item := range list {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("expected a [mag, dist] pair, got %v", item)
		}
		mag, ok1 := toFloat(pair[0])
		dist, ok2 := toFloat(pair[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("non-numeric pair %v", item)
		}
		out = append(out, MagDist{Mag: mag, Dist: dist})
	}

	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// MarshalJSON encodes the distance as {"region": km | [[mag, km], ...]}.
func (d *IntegrationDistance) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.encoded())
}

// UnmarshalJSON accepts a bare number (applied to every region) or a region
// mapping.
func (d *IntegrationDistance) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		return d.decode(map[string]any{DefaultRegion: scalar})
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: integration distance: %v", types.ErrInvalidConfig, err)
	}

	return d.decode(raw)
}

// MarshalYAML encodes the distance like MarshalJSON.
func (d *IntegrationDistance) MarshalYAML() (any, error) {
	return d.encoded(), nil
}

// UnmarshalYAML accepts a bare number or a region mapping.
func (d *IntegrationDistance) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var scalar float64
		if err := node.Decode(&scalar); err != nil {
			return fmt.Errorf("%w: integration distance: %v", types.ErrInvalidConfig, err)
		}

		return d.decode(map[string]any{DefaultRegion: scalar})
	}
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("%w: integration distance: %v", types.ErrInvalidConfig, err)
	}

	return d.decode(raw)
}
