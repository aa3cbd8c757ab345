package splitkit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/splitkit/accum"
	"github.com/arloliu/splitkit/weighted"
)

func countByTRT(_ context.Context, _ string, chunk *weighted.Sequence[rupture]) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, r := range chunk.Items() {
		out[r.trt] += r.sites
	}

	return out, nil
}

func TestExecute(t *testing.T) {
	p := testPlanner(t, func(c *Config) {
		c.Split.Hint = 8
		c.Execution.Concurrency = 2
	})
	plan, err := PlanBlocks(p, ruptures(), ruptureWeight, ruptureTRT)
	require.NoError(t, err)

	got, err := Execute(context.Background(), p, plan, accum.NumberOps[float64](), countByTRT)
	require.NoError(t, err)

	want := map[string]float64{}
	for _, r := range ruptures() {
		want[r.trt] += r.sites
	}
	require.Equal(t, want, got.Map())
}

func TestExecute_ConcurrencyLimit(t *testing.T) {
	p := testPlanner(t, func(c *Config) {
		c.Split.Hint = 10
		c.Execution.Concurrency = 2
	})
	plan, err := PlanBlocks(p, ruptures(), ruptureWeight, ruptureTRT)
	require.NoError(t, err)

	var running, peak atomic.Int32
	_, err = Execute(context.Background(), p, plan, accum.IntegerOps[int](),
		func(_ context.Context, _ string, chunk *weighted.Sequence[rupture]) (map[string]int, error) {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			running.Add(-1)

			return map[string]int{"items": chunk.Len()}, nil
		})
	require.NoError(t, err)
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestExecute_Hooks(t *testing.T) {
	var (
		mu      sync.Mutex
		started = map[string]string{}
		done    = map[string]string{}
	)
	hooks := &Hooks{
		OnBlockStart: func(_ context.Context, w string, b Block) error {
			mu.Lock()
			defer mu.Unlock()
			started[b.ID()] = w

			return nil
		},
		OnBlockDone: func(_ context.Context, w string, b Block, _ error) error {
			mu.Lock()
			defer mu.Unlock()
			done[b.ID()] = w

			return nil
		},
	}

	p := testPlanner(t, func(c *Config) { c.Split.Hint = 5 }, WithHooks(hooks))
	plan, err := PlanBlocks(p, ruptures(), ruptureWeight, ruptureTRT)
	require.NoError(t, err)

	_, err = Execute(context.Background(), p, plan, accum.NumberOps[float64](), countByTRT)
	require.NoError(t, err)

	require.Len(t, started, len(plan.Blocks))
	require.Equal(t, started, done)
	for w, blocks := range plan.Assignment.Blocks {
		for _, b := range blocks {
			require.Equal(t, w, started[b.ID()])
		}
	}
}

func TestExecute_Failure(t *testing.T) {
	boom := errors.New("boom")
	var reported atomic.Int32
	hooks := &Hooks{
		OnError: func(_ context.Context, err error) error {
			reported.Add(1)
			return nil
		},
	}

	p := testPlanner(t, func(c *Config) {
		c.Split.Hint = 6
		c.Execution.Concurrency = 1
	}, WithHooks(hooks))
	plan, err := PlanBlocks(p, ruptures(), ruptureWeight, ruptureTRT)
	require.NoError(t, err)

	var calls atomic.Int32
	_, err = Execute(context.Background(), p, plan, accum.NumberOps[float64](),
		func(context.Context, string, *weighted.Sequence[rupture]) (map[string]float64, error) {
			calls.Add(1)
			return nil, boom
		})
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "block ")
	require.Less(t, int(calls.Load()), len(plan.Blocks), "remaining blocks are skipped")
	require.Equal(t, calls.Load(), reported.Load())
}

func TestExecute_BlockTimeout(t *testing.T) {
	p := testPlanner(t, func(c *Config) {
		c.Split.Hint = 0
		c.Execution.BlockTimeout = 10 * time.Millisecond
	})
	plan, err := PlanBlocks(p, ruptures(), ruptureWeight, ruptureTRT)
	require.NoError(t, err)

	_, err = Execute(context.Background(), p, plan, accum.NumberOps[float64](),
		func(ctx context.Context, _ string, _ *weighted.Sequence[rupture]) (map[string]float64, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecute_Canceled(t *testing.T) {
	p := testPlanner(t, nil)
	plan, err := PlanBlocks(p, ruptures(), ruptureWeight, ruptureTRT)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Execute(ctx, p, plan, accum.NumberOps[float64](), countByTRT)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecute_ForeignBlock(t *testing.T) {
	p := testPlanner(t, nil)
	plan, err := PlanBlocks(p, ruptures(), ruptureWeight, ruptureTRT)
	require.NoError(t, err)

	workers := plan.Workers()
	last := workers[len(workers)-1]
	plan.Assignment.Blocks[last] = append(plan.Assignment.Blocks[last], Block{Keys: []string{"stray", "0"}, Weight: 1})

	var calls atomic.Int32
	_, err = Execute(context.Background(), p, plan, accum.NumberOps[float64](),
		func(ctx context.Context, w string, chunk *weighted.Sequence[rupture]) (map[string]float64, error) {
			calls.Add(1)
			return countByTRT(ctx, w, chunk)
		})

	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorContains(t, err, "stray-0")
	require.Zero(t, calls.Load(), "no block may start when the plan is malformed")
}
