package splitkit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/splitkit/accum"
	"github.com/arloliu/splitkit/weighted"
)

// WorkFunc processes one chunk on behalf of a worker and returns a partial
// result keyed by K.
type WorkFunc[T any, K comparable, V any] func(ctx context.Context, workerID string, chunk *weighted.Sequence[T]) (map[K]V, error)

// Execute runs fn once per chunk of the plan and merges the partial results.
//
// Chunks run in-process on at most cfg.Execution.Concurrency goroutines,
// visiting workers in ascending id order. Partial results are combined with
// ops.Add as they arrive, so the merged value must not depend on completion
// order. The first failure cancels the context passed to the remaining
// calls; chunks not yet started are skipped.
//
// Parameters:
//   - ctx: Context for cancellation
//   - p: Planner providing concurrency, timeout, hooks and metrics
//   - plan: Plan produced by PlanBlocks or PlanWeight
//   - ops: Value algebra used to merge partial results
//   - fn: Work function
//
// Returns:
//   - *accum.Dict[K, V]: Merged result
//   - error: First work function error, wrapped with worker and block id
//
// Example:
//
//	counts, err := splitkit.Execute(ctx, planner, plan, accum.NumberOps[int](),
//	    func(ctx context.Context, worker string, chunk *weighted.Sequence[Rupture]) (map[string]int, error) {
//	        return countBySource(chunk.Items()), nil
//	    })
func Execute[T any, K comparable, V any](
	ctx context.Context,
	p *Planner,
	plan *Plan[T],
	ops accum.Ops[V],
	fn WorkFunc[T, K, V],
) (*accum.Dict[K, V], error) {
	acc, err := accum.NewConcurrent[K](ops)
	if err != nil {
		return nil, err
	}

	// resolve every chunk before starting work, so a malformed plan fails
	// without leaving goroutines behind
	type job struct {
		worker string
		block  Block
		chunk  *weighted.Sequence[T]
	}
	var jobs []job
	for _, w := range plan.Workers() {
		for _, b := range plan.Assignment.Blocks[w] {
			chunk, ok := plan.Chunk(b)
			if !ok {
				return nil, fmt.Errorf("%w: block %s is not part of the plan", ErrInvalidConfig, b.ID())
			}
			jobs = append(jobs, job{worker: w, block: b, chunk: chunk})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Execution.Concurrency)

	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return runBlock(gctx, p, j.worker, j.block, j.chunk, acc, fn)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return acc.Snapshot(), nil
}

func runBlock[T any, K comparable, V any](
	ctx context.Context,
	p *Planner,
	workerID string,
	b Block,
	chunk *weighted.Sequence[T],
	acc *accum.Concurrent[K, V],
	fn WorkFunc[T, K, V],
) error {
	if timeout := p.cfg.Execution.BlockTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	p.hooks.BlockStart(ctx, workerID, b)
	start := time.Now()
	partial, err := fn(ctx, workerID, chunk)
	elapsed := time.Since(start)

	p.metrics.RecordBlockExecution(workerID, elapsed.Seconds(), err == nil)
	p.hooks.BlockDone(ctx, workerID, b, err)

	if err != nil {
		p.logger.Error("block failed", "worker", workerID, "block", b.ID(), "error", err)
		return fmt.Errorf("worker %s block %s: %w", workerID, b.ID(), err)
	}
	acc.AddMap(accum.Map[K, V](partial))
	p.logger.Debug("block done", "worker", workerID, "block", b.ID(), "items", chunk.Len(), "elapsed", elapsed)

	return nil
}
