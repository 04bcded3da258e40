// Package ports defines the interfaces that connect the pipeline core to its
// host environment.
//
// The pipeline depends only on these interfaces. The host (an input service,
// a replay harness, a test) provides concrete implementations.
//
// # Port Interfaces
//
//   - [Stage]: One link in the event transformation chain
//   - [FrameScheduler]: "Run this callback once before the next display frame"
//   - [EventInjector]: Final delivery into the real input stream
//   - [ActivityMonitor]: Power-management notification of user activity
//
// This separation enables testing the pipeline with fakes and swapping the
// frame-timing or delivery mechanism without touching pipeline logic.
package ports
