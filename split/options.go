package split

import (
	"github.com/arloliu/splitkit/internal/logging"
	"github.com/arloliu/splitkit/internal/metrics"
	"github.com/arloliu/splitkit/types"
)

// Option configures a splitting call with optional dependencies.
type Option func(*options)

type options struct {
	logger  types.Logger
	metrics types.SplitMetrics
}

// WithLogger sets a logger for chunk-level debug output.
//
// Parameters:
//   - logger: Logger implementation
//
// Returns:
//   - Option: Functional option for BlockSplitter and SplitInBlocks
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics sink for emitted chunks and skipped items.
//
// Parameters:
//   - m: SplitMetrics implementation
//
// Returns:
//   - Option: Functional option for BlockSplitter and SplitInBlocks
func WithMetrics(m types.SplitMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrNop(o.logger)
	if o.metrics == nil {
		o.metrics = metrics.NewNop()
	}

	return o
}
