package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called from concurrent worker goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	SplitMetrics
	FilterMetrics
	AssignmentMetrics
}

// SplitMetrics defines metrics for the block splitter.
type SplitMetrics interface {
	// RecordChunk records one emitted chunk.
	//
	// Parameters:
	//   - key: Classification key shared by the chunk items
	//   - weight: Total chunk weight
	//   - size: Number of items in the chunk
	RecordChunk(key string, weight float64, size int)

	// RecordSkippedItems records items dropped because their weight was zero.
	RecordSkippedItems(count int)
}

// FilterMetrics defines metrics for the spatial source filter.
type FilterMetrics interface {
	// RecordSourceFiltered records the outcome for one candidate source.
	//
	// Parameters:
	//   - mode: Filter mode ("indexed", "distance", "none")
	//   - kept: true if the source survived filtering
	//   - sites: Number of affected sites (0 when dropped)
	RecordSourceFiltered(mode string, kept bool, sites int)

	// RecordIndexBuild records the time taken to build the spatial index.
	//
	// Parameters:
	//   - sites: Number of indexed sites
	//   - duration: Time taken in seconds
	RecordIndexBuild(sites int, duration float64)
}

// AssignmentMetrics defines metrics for block assignment and execution.
type AssignmentMetrics interface {
	// RecordAssignment records the load assigned to a worker.
	RecordAssignment(workerID string, blocks int, weight float64)

	// RecordBlockExecution records one executed block.
	//
	// Parameters:
	//   - workerID: Worker that processed the block
	//   - duration: Time taken in seconds
	//   - success: true if the worker function returned no error
	RecordBlockExecution(workerID string, duration float64, success bool)
}
