package splitkit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/splitkit/strategy"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, "worker", cfg.WorkerIDPrefix)
	require.Equal(t, 4, cfg.WorkerCount)
	require.InDelta(t, 1000.0, cfg.Split.MaxWeight, 0)
	require.Equal(t, 8, cfg.Split.Hint)
	require.Equal(t, strategy.NameWeightedConsistentHash, cfg.Assignment.Strategy)
	require.Equal(t, 150, cfg.Assignment.VirtualNodes)
	require.Equal(t, 4, cfg.Execution.Concurrency)
	require.NoError(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		ApplyDefaults(&cfg)

		require.Equal(t, "worker", cfg.WorkerIDPrefix)
		require.Equal(t, 4, cfg.WorkerCount)
		require.Equal(t, 0, cfg.Split.Hint)
		require.Equal(t, strategy.NameWeightedConsistentHash, cfg.Assignment.Strategy)
		require.NoError(t, cfg.Validate())
	})

	t.Run("preserves custom values", func(t *testing.T) {
		cfg := Config{
			Workers:    []string{"a", "b"},
			Split:      SplitConfig{MaxWeight: 50, Hint: 3},
			Assignment: AssignmentConfig{Strategy: strategy.NameRoundRobin, VirtualNodes: 10, HashSeed: 7},
			Execution:  ExecutionConfig{Concurrency: 2, BlockTimeout: time.Second},
		}
		ApplyDefaults(&cfg)

		require.Equal(t, []string{"a", "b"}, cfg.WorkerIDs())
		require.InDelta(t, 50.0, cfg.Split.MaxWeight, 0)
		require.Equal(t, 3, cfg.Split.Hint)
		require.Equal(t, strategy.NameRoundRobin, cfg.Assignment.Strategy)
		require.Equal(t, 10, cfg.Assignment.VirtualNodes)
		require.Equal(t, uint64(7), cfg.Assignment.HashSeed)
		require.Equal(t, 2, cfg.Execution.Concurrency)
		require.Equal(t, time.Second, cfg.Execution.BlockTimeout)
	})
}

func TestConfig_WorkerIDs(t *testing.T) {
	cfg := Config{WorkerIDPrefix: "node", WorkerCount: 3}
	require.Equal(t, []string{"node-0", "node-1", "node-2"}, cfg.WorkerIDs())

	ids := cfg.WorkerIDs()
	ids[0] = "changed"
	require.Equal(t, "node-0", cfg.WorkerIDs()[0])
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max weight", func(c *Config) { c.Split.MaxWeight = -1 }},
		{"negative hint", func(c *Config) { c.Split.Hint = -2 }},
		{"duplicate worker", func(c *Config) { c.Workers = []string{"a", "a"} }},
		{"empty worker id", func(c *Config) { c.Workers = []string{"a", ""} }},
		{"no workers", func(c *Config) { c.WorkerCount = -1 }},
		{"unknown strategy", func(c *Config) { c.Assignment.Strategy = "random" }},
		{"zero virtual nodes", func(c *Config) { c.Assignment.VirtualNodes = -1 }},
		{"zero concurrency", func(c *Config) { c.Execution.Concurrency = -1 }},
		{"negative timeout", func(c *Config) { c.Execution.BlockTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_YAML(t *testing.T) {
	data := []byte(`
workers: [w0, w1, w2]
split:
  maxWeight: 250
  hint: 12
assignment:
  strategy: consistent-hash
  hashSeed: 42
execution:
  concurrency: 3
  blockTimeout: 90s
integrationDistance:
  default: 200
  Stable Shallow Crust: [[5, 100], [7, 300]]
`)

	cfg, err := ParseConfig(data)
	require.NoError(t, err)

	require.Equal(t, []string{"w0", "w1", "w2"}, cfg.WorkerIDs())
	require.InDelta(t, 250.0, cfg.Split.MaxWeight, 0)
	require.Equal(t, 12, cfg.Split.Hint)
	require.Equal(t, strategy.NameConsistentHash, cfg.Assignment.Strategy)
	require.Equal(t, 150, cfg.Assignment.VirtualNodes)
	require.Equal(t, uint64(42), cfg.Assignment.HashSeed)
	require.Equal(t, 90*time.Second, cfg.Execution.BlockTimeout)

	require.NotNil(t, cfg.IntegrationDistance)
	d, err := cfg.IntegrationDistance.At("Stable Shallow Crust", 6)
	require.NoError(t, err)
	require.InDelta(t, 200.0, d, 1e-9)
	d, err = cfg.IntegrationDistance.At("Active Shallow Crust", 6)
	require.NoError(t, err)
	require.InDelta(t, 200.0, d, 1e-9)

	t.Run("round trip", func(t *testing.T) {
		out, err := yaml.Marshal(cfg)
		require.NoError(t, err)
		again, err := ParseConfig(out)
		require.NoError(t, err)
		require.Equal(t, cfg.WorkerIDs(), again.WorkerIDs())
		require.Equal(t, cfg.Split, again.Split)
		require.Equal(t, cfg.Execution, again.Execution)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("split: [1, 2"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := ParseConfig([]byte("assignment:\n  strategy: nope\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workerCount: 2\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []string{"worker-0", "worker-1"}, cfg.WorkerIDs())

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
