package splitkit

// Option configures a Planner with optional dependencies.
type Option func(*plannerOptions)

type plannerOptions struct {
	strategy    AssignmentStrategy
	strategySet bool
	hooks       *Hooks
	metrics     MetricsCollector
	logger      Logger
}

// WithStrategy overrides the strategy named in Config.Assignment.Strategy.
//
// Parameters:
//   - strategy: AssignmentStrategy implementation
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	s := strategy.NewConsistentHash(strategy.WithVirtualNodes(300))
//	planner, err := splitkit.NewPlanner(cfg, splitkit.WithStrategy(s))
func WithStrategy(strategy AssignmentStrategy) Option {
	return func(o *plannerOptions) {
		o.strategy = strategy
		o.strategySet = true
	}
}

// WithHooks sets block execution hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	hooks := &splitkit.Hooks{
//	    OnBlockDone: func(ctx context.Context, workerID string, b splitkit.Block, err error) error {
//	        bar.Add(b.Weight)
//	        return nil
//	    },
//	}
//	planner, err := splitkit.NewPlanner(cfg, splitkit.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *plannerOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// The collector is passed down to the splitter and records assignment and
// execution metrics.
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *plannerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewPlanner
func WithLogger(logger Logger) Option {
	return func(o *plannerOptions) {
		o.logger = logger
	}
}
