package ports

import "github.com/bft-labs/runeguard/internal/domain"

// ResultSink receives scan results as they are produced.
// Scanner and Watcher serialize their calls to a sink.
type ResultSink interface {
	OnResult(result domain.ScanResult)
}

// ResultSinkFunc adapts a function to ResultSink.
type ResultSinkFunc func(domain.ScanResult)

// OnResult calls f(result).
func (f ResultSinkFunc) OnResult(result domain.ScanResult) { f(result) }
