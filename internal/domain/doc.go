// Package domain contains the core entities of the touch pipeline.
//
// This package represents the innermost layer of the module. It has no
// dependencies on infrastructure concerns (scheduling, logging, I/O) and
// contains only the event model and its invariants.
//
// # Entities
//
//   - [MotionEvent]: A touch event carrying one or more time-ordered samples
//   - [Sample]: A single pointer sample (coordinates, pressure, timestamp)
//   - [MergePolicy]: The compatibility rule for coalescing move samples
//   - [EventRecord]: The JSON representation used by trace recordings
//
// # Design Principles
//
// Domain entities are:
//   - Mutated only through AddBatch, which extends a move event in place
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
