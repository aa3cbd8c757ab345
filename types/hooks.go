package types

import "context"

// Hooks defines callbacks for block execution events.
//
// All hooks are optional. They are called synchronously from the goroutine
// that executes the block, so they must be safe for concurrent use and should
// complete quickly. Hook errors are logged but never fail an execution.
//
// Example:
//
//	hooks := &splitkit.Hooks{
//	    OnBlockDone: func(ctx context.Context, workerID string, block splitkit.Block, err error) error {
//	        progress.Add(block.Weight)
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnBlockStart is called before a block is handed to the worker function.
	OnBlockStart func(ctx context.Context, workerID string, block Block) error

	// OnBlockDone is called after the worker function returned; err is its result.
	OnBlockDone func(ctx context.Context, workerID string, block Block, err error) error

	// OnError is called when a worker function fails.
	OnError func(ctx context.Context, err error) error
}
