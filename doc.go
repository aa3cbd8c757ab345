// Package splitkit partitions weighted work into balanced chunks and hands
// the chunks to workers.
//
// The building blocks live in subpackages:
//
//   - weighted: ordered item sequences carrying a running total weight
//   - split: block splitting by weight bound or chunk hint, integer range slicing
//   - group: group-by and fast aggregation over indices and columns
//   - accum: additive dictionaries for merging partial results
//   - filter: spatial pre-filtering of sources against a site collection
//   - strategy: chunk-to-worker assignment
//
// This package ties them together: a Planner splits items into chunks,
// describes each chunk as a Block, assigns the blocks to workers and can
// execute a work function per chunk while merging the partial results.
//
// # Quick Start
//
//	cfg := splitkit.DefaultConfig()
//	cfg.Split.Hint = 32
//
//	planner, err := splitkit.NewPlanner(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plan, err := splitkit.PlanBlocks(planner, ruptures,
//	    func(r Rupture) float64 { return float64(r.NumSites) },
//	    func(r Rupture) string { return r.TRT },
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	curves, err := splitkit.Execute(ctx, planner, plan, accum.NumberOps[float64](), computeCurves)
//
// # Configuration
//
// Config is YAML friendly; LoadConfig reads a file, applies defaults and
// validates it:
//
//	workerCount: 8
//	split:
//	  hint: 64
//	assignment:
//	  strategy: consistent-hash
//	  hashSeed: 42
//	execution:
//	  concurrency: 8
//	  blockTimeout: 5m
//	integrationDistance:
//	  default: 300
//	  Stable Continental Crust: [[5, 100], [7, 300]]
package splitkit
