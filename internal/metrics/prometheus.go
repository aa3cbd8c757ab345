package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/splitkit/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing a
// PrometheusCollector that is never used leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Splitter metrics
	chunksTotal  *prometheus.CounterVec
	chunkWeight  *prometheus.HistogramVec
	chunkSize    prometheus.Histogram
	skippedItems prometheus.Counter

	// Filter metrics
	sourcesTotal   *prometheus.CounterVec
	affectedSites  prometheus.Histogram
	indexBuildTime prometheus.Histogram
	indexedSites   prometheus.Gauge

	// Assignment metrics
	workerBlocks   *prometheus.GaugeVec
	workerWeight   *prometheus.GaugeVec
	blockDuration  *prometheus.HistogramVec
	blockExecTotal *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "splitkit" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "splitkit"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.chunksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "splitter",
			Name:      "chunks_total",
			Help:      "Total chunks emitted by the block splitter, by classification key.",
		}, []string{"key"})
		p.chunkWeight = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "splitter",
			Name:      "chunk_weight",
			Help:      "Total weight of emitted chunks.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"key"})
		p.chunkSize = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "splitter",
			Name:      "chunk_items",
			Help:      "Number of items per emitted chunk.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		})
		p.skippedItems = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "splitter",
			Name:      "skipped_items_total",
			Help:      "Items dropped by the splitter because their weight was zero.",
		})

		p.sourcesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "filter",
			Name:      "sources_total",
			Help:      "Candidate sources processed by the source filter, by mode and result (kept,dropped).",
		}, []string{"mode", "result"})
		p.affectedSites = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "filter",
			Name:      "affected_sites",
			Help:      "Number of affected sites per kept source.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		})
		p.indexBuildTime = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "filter",
			Name:      "index_build_seconds",
			Help:      "Time spent building the site spatial index.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		})
		p.indexedSites = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "filter",
			Name:      "indexed_sites",
			Help:      "Number of sites in the most recently built spatial index.",
		})

		p.workerBlocks = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "worker_blocks",
			Help:      "Number of blocks assigned to each worker in the latest plan.",
		}, []string{"worker"})
		p.workerWeight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "worker_weight",
			Help:      "Total block weight assigned to each worker in the latest plan.",
		}, []string{"worker"})
		p.blockDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "execution",
			Name:      "block_duration_seconds",
			Help:      "Time spent by worker functions per block.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"worker"})
		p.blockExecTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "execution",
			Name:      "blocks_total",
			Help:      "Executed blocks by worker and result (success,failure).",
		}, []string{"worker", "result"})

		p.reg.MustRegister(
			p.chunksTotal, p.chunkWeight, p.chunkSize, p.skippedItems,
			p.sourcesTotal, p.affectedSites, p.indexBuildTime, p.indexedSites,
			p.workerBlocks, p.workerWeight, p.blockDuration, p.blockExecTotal,
		)
	})
}

// RecordChunk records one emitted chunk.
func (p *PrometheusCollector) RecordChunk(key string, weight float64, size int) {
	p.ensureRegistered()
	p.chunksTotal.WithLabelValues(key).Inc()
	p.chunkWeight.WithLabelValues(key).Observe(weight)
	p.chunkSize.Observe(float64(size))
}

// RecordSkippedItems records zero-weight items dropped by the splitter.
func (p *PrometheusCollector) RecordSkippedItems(count int) {
	p.ensureRegistered()
	p.skippedItems.Add(float64(count))
}

// RecordSourceFiltered records the filter outcome for one source.
func (p *PrometheusCollector) RecordSourceFiltered(mode string, kept bool, sites int) {
	p.ensureRegistered()
	if !kept {
		p.sourcesTotal.WithLabelValues(mode, "dropped").Inc()

		return
	}
	p.sourcesTotal.WithLabelValues(mode, "kept").Inc()
	p.affectedSites.Observe(float64(sites))
}

// RecordIndexBuild records the spatial index build.
func (p *PrometheusCollector) RecordIndexBuild(sites int, duration float64) {
	p.ensureRegistered()
	p.indexedSites.Set(float64(sites))
	p.indexBuildTime.Observe(duration)
}

// RecordAssignment records the load assigned to a worker.
func (p *PrometheusCollector) RecordAssignment(workerID string, blocks int, weight float64) {
	p.ensureRegistered()
	p.workerBlocks.WithLabelValues(workerID).Set(float64(blocks))
	p.workerWeight.WithLabelValues(workerID).Set(weight)
}

// RecordBlockExecution records one executed block.
func (p *PrometheusCollector) RecordBlockExecution(workerID string, duration float64, success bool) {
	p.ensureRegistered()
	p.blockDuration.WithLabelValues(workerID).Observe(duration)
	p.blockExecTotal.WithLabelValues(workerID, resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}

	return "failure"
}

