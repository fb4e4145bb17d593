// Package domain contains the core entities and sentinel errors for runeguard.
//
// This package has no dependencies on infrastructure concerns (HTTP, file
// system, logging). It describes what a scan produced, not how the bytes
// were obtained or how the outcome is rendered.
//
// # Entities
//
//   - [ScanResult]: the verdict for one byte source
//   - [DecodeFailure]: the first decoding violation found in a source
package domain
