package splitkit

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/splitkit/filter"
	"github.com/arloliu/splitkit/strategy"
)

// SplitConfig controls how work is cut into chunks.
type SplitConfig struct {
	// MaxWeight bounds the weight of a chunk for PlanWeight.
	// An item heavier than MaxWeight still becomes its own chunk.
	MaxWeight float64 `yaml:"maxWeight"`

	// Hint is the suggested number of chunks for PlanBlocks.
	// 0 or 1 disables weight balancing.
	Hint int `yaml:"hint"`
}

// AssignmentConfig controls how chunks are mapped to workers.
type AssignmentConfig struct {
	// Strategy names the assignment strategy: consistent-hash,
	// weighted-consistent-hash or round-robin.
	Strategy string `yaml:"strategy"`

	// VirtualNodes is the number of ring nodes per worker for the hashing strategies.
	VirtualNodes int `yaml:"virtualNodes"`

	// HashSeed seeds the ring hash. The same seed keeps block placement
	// stable across runs.
	HashSeed uint64 `yaml:"hashSeed"`
}

// ExecutionConfig controls in-process execution of a plan.
type ExecutionConfig struct {
	// Concurrency bounds the number of chunks executed at once.
	Concurrency int `yaml:"concurrency"`

	// BlockTimeout bounds a single chunk execution. 0 means no timeout.
	BlockTimeout time.Duration `yaml:"blockTimeout"`
}

// Config is the configuration for a Planner.
//
// Duration fields accept Go duration strings like "30s" or "5m".
type Config struct {
	// Workers lists worker ids explicitly. When empty, WorkerCount ids are
	// generated as "<WorkerIDPrefix>-<n>".
	Workers []string `yaml:"workers"`

	// WorkerIDPrefix is the prefix for generated worker ids.
	WorkerIDPrefix string `yaml:"workerIdPrefix"`

	// WorkerCount is the number of generated workers.
	WorkerCount int `yaml:"workerCount"`

	Split      SplitConfig      `yaml:"split"`
	Assignment AssignmentConfig `yaml:"assignment"`
	Execution  ExecutionConfig  `yaml:"execution"`

	// IntegrationDistance is the per-region cutoff used by the source filter.
	// It accepts a number, a map of region to number, or a map of region to
	// [[magnitude, distance], ...] curves.
	IntegrationDistance *filter.IntegrationDistance `yaml:"integrationDistance,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		WorkerIDPrefix: "worker",
		WorkerCount:    4,
		Split: SplitConfig{
			MaxWeight: 1000,
			Hint:      8,
		},
		Assignment: AssignmentConfig{
			Strategy:     strategy.NameWeightedConsistentHash,
			VirtualNodes: 150,
		},
		Execution: ExecutionConfig{
			Concurrency: 4,
		},
	}
}

// ApplyDefaults fills in missing configuration values.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func ApplyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.WorkerIDPrefix == "" {
		cfg.WorkerIDPrefix = defaults.WorkerIDPrefix
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = defaults.WorkerCount
	}
	if cfg.Split.MaxWeight == 0 {
		cfg.Split.MaxWeight = defaults.Split.MaxWeight
	}
	// Hint of 0 is meaningful (no balancing), so it is left alone.
	if cfg.Assignment.Strategy == "" {
		cfg.Assignment.Strategy = defaults.Assignment.Strategy
	}
	if cfg.Assignment.VirtualNodes == 0 {
		cfg.Assignment.VirtualNodes = defaults.Assignment.VirtualNodes
	}
	if cfg.Execution.Concurrency == 0 {
		cfg.Execution.Concurrency = defaults.Execution.Concurrency
	}
}

// WorkerIDs returns the explicit worker list, or the generated one.
func (cfg *Config) WorkerIDs() []string {
	if len(cfg.Workers) > 0 {
		return slices.Clone(cfg.Workers)
	}

	ids := make([]string, max(cfg.WorkerCount, 0))
	for i := range ids {
		ids[i] = cfg.WorkerIDPrefix + "-" + strconv.Itoa(i)
	}

	return ids
}

// Validate checks configuration constraints.
//
// Rules:
//   - Split.MaxWeight > 0
//   - Split.Hint >= 0
//   - at least one worker, no duplicate ids
//   - Assignment.Strategy is a known name
//   - Assignment.VirtualNodes > 0
//   - Execution.Concurrency > 0, Execution.BlockTimeout >= 0
//
// Returns:
//   - error: Error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if !(cfg.Split.MaxWeight > 0) {
		return fmt.Errorf("%w: split.maxWeight must be > 0, got %v", ErrInvalidConfig, cfg.Split.MaxWeight)
	}
	if cfg.Split.Hint < 0 {
		return fmt.Errorf("%w: split.hint must be >= 0, got %d", ErrInvalidConfig, cfg.Split.Hint)
	}

	workers := cfg.WorkerIDs()
	if len(workers) == 0 {
		return fmt.Errorf("%w: at least one worker is required", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(workers))
	for _, w := range workers {
		if w == "" {
			return fmt.Errorf("%w: empty worker id", ErrInvalidConfig)
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: duplicate worker id %q", ErrInvalidConfig, w)
		}
		seen[w] = struct{}{}
	}

	if !slices.Contains(strategy.Names(), cfg.Assignment.Strategy) {
		return fmt.Errorf("%w: unknown assignment.strategy %q", ErrInvalidConfig, cfg.Assignment.Strategy)
	}
	if cfg.Assignment.VirtualNodes <= 0 {
		return fmt.Errorf("%w: assignment.virtualNodes must be > 0, got %d", ErrInvalidConfig, cfg.Assignment.VirtualNodes)
	}

	if cfg.Execution.Concurrency <= 0 {
		return fmt.Errorf("%w: execution.concurrency must be > 0, got %d", ErrInvalidConfig, cfg.Execution.Concurrency)
	}
	if cfg.Execution.BlockTimeout < 0 {
		return fmt.Errorf("%w: execution.blockTimeout must be >= 0, got %v", ErrInvalidConfig, cfg.Execution.BlockTimeout)
	}

	return nil
}

// ValidateWithWarnings logs warnings for legal but questionable values.
//
// Parameters:
//   - logger: Logger for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	workers := len(cfg.WorkerIDs())
	if cfg.Split.Hint > 0 && cfg.Split.Hint < workers {
		logger.Warn(
			"split hint is below the worker count, some workers will stay idle",
			"hint", cfg.Split.Hint,
			"workers", workers,
		)
	}
	if cfg.Execution.Concurrency > 4*workers {
		logger.Warn(
			"execution concurrency is far above the worker count",
			"concurrency", cfg.Execution.Concurrency,
			"workers", workers,
		)
	}
}

// LoadConfig reads a YAML configuration file, applies defaults and validates it.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - Config: The loaded configuration
//   - error: Read, parse or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig is LoadConfig for in-memory YAML.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config: %w", ErrInvalidConfig, err)
	}
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
