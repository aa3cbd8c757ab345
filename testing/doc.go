// Package testing provides test utilities for the splitkit library.
//
// This package offers deterministic fixtures for exercising the splitter, the
// assignment strategies and the source filter. It follows Go's convention of
// providing testing utilities in a dedicated package (similar to
// net/http/httptest).
//
// Key utilities:
//   - NewTestLogger: Logger writing through t.Logf
//   - Uniform, Skewed, Pareto: Weight generators for work items
//   - Blocks: Keyed blocks from a weight slice
//   - SiteGrid: Regular site grid over a bound
//
// Example usage:
//
//	import (
//	    "testing"
//	    splittest "github.com/arloliu/splitkit/testing"
//	)
//
//	func TestMyStrategy(t *testing.T) {
//	    blocks := splittest.Blocks("trt", splittest.NewPareto(1.5, 1, 42).Weights(1000))
//	    // Assign blocks and check the worker loads
//	}
package testing
