// Package ports defines the interfaces (ports) that connect the lifecycle
// core to the host environment.
//
// The coordinator in internal/app depends only on these interfaces. The
// reference window set in internal/windows implements [WindowSet]; embedders
// with real windowing can supply their own implementation.
//
// This separation enables:
//   - Testing the lifecycle state machine with fake window sets
//   - Swapping window mechanics without changing termination logic
//   - Clear boundaries and dependency direction
package ports
