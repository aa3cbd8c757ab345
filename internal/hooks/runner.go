// Package hooks invokes user-supplied execution callbacks.
package hooks

import (
	"context"

	"github.com/arloliu/splitkit/internal/logging"
	"github.com/arloliu/splitkit/types"
)

// Runner calls the optional callbacks of a types.Hooks value.
//
// Unset callbacks are skipped. Callback errors are logged and swallowed so
// a failing hook never fails a block.
type Runner struct {
	hooks  types.Hooks
	logger types.Logger
}

// NewRunner wraps hooks; a nil hooks value runs nothing.
//
// Parameters:
//   - hooks: Callbacks to run, may be nil
//   - logger: Logger for hook errors, nil for no-op
//
// Returns:
//   - *Runner: Runner safe for concurrent use
func NewRunner(hooks *types.Hooks, logger types.Logger) *Runner {
	r := &Runner{logger: logging.OrNop(logger)}
	if hooks != nil {
		r.hooks = *hooks
	}

	return r
}

// BlockStart runs OnBlockStart.
func (r *Runner) BlockStart(ctx context.Context, workerID string, b types.Block) {
	if r.hooks.OnBlockStart == nil {
		return
	}
	if err := r.hooks.OnBlockStart(ctx, workerID, b); err != nil {
		r.logger.Warn("OnBlockStart hook failed", "worker", workerID, "block", b.ID(), "error", err)
	}
}

// BlockDone runs OnBlockDone, then OnError when execErr is not nil.
func (r *Runner) BlockDone(ctx context.Context, workerID string, b types.Block, execErr error) {
	if r.hooks.OnBlockDone != nil {
		if err := r.hooks.OnBlockDone(ctx, workerID, b, execErr); err != nil {
			r.logger.Warn("OnBlockDone hook failed", "worker", workerID, "block", b.ID(), "error", err)
		}
	}
	if execErr != nil {
		r.Error(ctx, execErr)
	}
}

// Error runs OnError.
func (r *Runner) Error(ctx context.Context, execErr error) {
	if r.hooks.OnError == nil {
		return
	}
	if err := r.hooks.OnError(ctx, execErr); err != nil {
		r.logger.Warn("OnError hook failed", "error", err)
	}
}
