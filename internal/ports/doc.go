// Package ports defines the interfaces that connect the runeguard
// application layer to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Source]: yields the raw bytes of one input (file, stdin, HTTP body)
//   - [ResultSink]: receives scan results as they are produced
//   - [StateRepository]: persists last-known verdicts per source
//   - [Logger]: structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The scanner and watcher depend only on these interfaces. Adapters in
// internal/adapters provide the concrete implementations.
package ports
