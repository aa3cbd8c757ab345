package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheus_Defaults(t *testing.T) {
	p := NewPrometheus(nil, "")

	require.Equal(t, prometheus.DefaultRegisterer, p.reg)
	require.Equal(t, "splitkit", p.namespace)
}

func TestPrometheusCollector_LazyRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewPrometheus(reg, "test")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families, "nothing is registered before first use")
}

func TestPrometheusCollector_Splitter(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordChunk("crust", 3, 3)
	p.RecordChunk("crust", 2, 2)
	p.RecordChunk("slab", 1, 1)
	p.RecordSkippedItems(4)

	require.Equal(t, 2.0, testutil.ToFloat64(p.chunksTotal.WithLabelValues("crust")))
	require.Equal(t, 1.0, testutil.ToFloat64(p.chunksTotal.WithLabelValues("slab")))
	require.Equal(t, 4.0, testutil.ToFloat64(p.skippedItems))
}

func TestPrometheusCollector_Filter(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordSourceFiltered("indexed", true, 12)
	p.RecordSourceFiltered("indexed", false, 0)
	p.RecordSourceFiltered("indexed", false, 0)
	p.RecordIndexBuild(100, 0.002)

	require.Equal(t, 1.0, testutil.ToFloat64(p.sourcesTotal.WithLabelValues("indexed", "kept")))
	require.Equal(t, 2.0, testutil.ToFloat64(p.sourcesTotal.WithLabelValues("indexed", "dropped")))
	require.Equal(t, 100.0, testutil.ToFloat64(p.indexedSites))
}

func TestPrometheusCollector_Assignment(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordAssignment("worker-0", 3, 30)
	p.RecordAssignment("worker-0", 2, 20)
	p.RecordBlockExecution("worker-0", 0.5, true)
	p.RecordBlockExecution("worker-0", 0.5, false)

	require.Equal(t, 2.0, testutil.ToFloat64(p.workerBlocks.WithLabelValues("worker-0")))
	require.Equal(t, 20.0, testutil.ToFloat64(p.workerWeight.WithLabelValues("worker-0")))
	require.Equal(t, 1.0, testutil.ToFloat64(p.blockExecTotal.WithLabelValues("worker-0", "failure")))
}
