// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/arloliu/splitkit/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the default collector of every component.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	f, err := filter.New(sites, dist, filter.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordChunk is a no-op implementation.
func (n *NopMetrics) RecordChunk(_ string, _ float64, _ int) {}

// RecordSkippedItems is a no-op implementation.
func (n *NopMetrics) RecordSkippedItems(_ int) {}

// RecordSourceFiltered is a no-op implementation.
func (n *NopMetrics) RecordSourceFiltered(_ string, _ bool, _ int) {}

// RecordIndexBuild is a no-op implementation.
func (n *NopMetrics) RecordIndexBuild(_ int, _ float64) {}

// RecordAssignment is a no-op implementation.
func (n *NopMetrics) RecordAssignment(_ string, _ int, _ float64) {}

// RecordBlockExecution is a no-op implementation.
func (n *NopMetrics) RecordBlockExecution(_ string, _ float64, _ bool) {}

// OrNop returns collector, or a NopMetrics when collector is nil.
func OrNop(collector types.MetricsCollector) types.MetricsCollector {
	if collector == nil {
		return NewNop()
	}

	return collector
}
