// Package types provides core type definitions and interfaces for the splitkit library.
//
// This package contains shared types that are used across multiple packages.
// By keeping these types in a separate package, we avoid import cycles between
// the root splitkit package and its internal implementations.
//
// Key types:
//   - Block: Chunk descriptor used for worker assignment
//   - Assignment: Worker → blocks mapping with per-worker load
//   - AssignmentStrategy: Block assignment interface
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
//   - Hooks: Block execution callbacks
//   - Source, SiteDistancer, SourceLister: Filter candidates and their discovery
package types
