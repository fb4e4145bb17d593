// Package runeguard validates byte sources as strict UTF-8.
//
// Example usage:
//
//	results := runeguard.ScanFiles(ctx, []string{"a.txt", "b.txt"},
//	    runeguard.WithWorkers(4),
//	    runeguard.WithLogger(myLogger),
//	)
//	for _, r := range results {
//	    if r.Failed() {
//	        fmt.Println(r.Source, r.Failure.Message)
//	    }
//	}
//
// The decoder itself lives in pkg/utf8dec and can be imported on its own.
package runeguard

import (
	"context"

	"github.com/bft-labs/runeguard/internal/adapters/fs"
	"github.com/bft-labs/runeguard/internal/app"
	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/internal/ports"
	"github.com/bft-labs/runeguard/pkg/log"
	"github.com/bft-labs/runeguard/pkg/utf8dec"
)

// Re-export types from sub-packages for convenient access.
type (
	// Result is the verdict for one source.
	Result = domain.ScanResult

	// Failure is the serializable form of a decoding error.
	Failure = domain.DecodeFailure

	// Error is the structured decoder error.
	Error = utf8dec.Error

	// Logger is the interface for structured logging.
	Logger = log.Logger
)

// Decoder entry points.
var (
	Decode      = utf8dec.Decode
	DecodeBytes = utf8dec.DecodeBytes
	DecodeAll   = utf8dec.DecodeAll
	Valid       = utf8dec.Valid
)

// Option configures ScanFiles and ScanBytes.
type Option func(*options)

type options struct {
	logger      log.Logger
	workers     int
	startOffset int
	maxBytes    int64
	onResult    func(Result)
}

func defaultOptions() options {
	return options{
		logger:  log.Discard,
		workers: 1,
	}
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWorkers sets how many files are validated at once.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithStartOffset starts decoding at the given byte offset.
func WithStartOffset(off int) Option {
	return func(o *options) { o.startOffset = off }
}

// WithMaxBytes refuses files larger than n bytes. Zero means no limit.
func WithMaxBytes(n int64) Option {
	return func(o *options) { o.maxBytes = n }
}

// WithResultHandler calls fn with each result as soon as its file is done,
// in completion order. Calls are serialized.
func WithResultHandler(fn func(Result)) Option {
	return func(o *options) { o.onResult = fn }
}

// ScanFiles validates the files at paths and returns one Result per path,
// in order.
func ScanFiles(ctx context.Context, paths []string, opts ...Option) []Result {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sources := make([]ports.Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, fs.NewFileSource(p, o.maxBytes))
	}
	var sink ports.ResultSink
	if o.onResult != nil {
		sink = ports.ResultSinkFunc(o.onResult)
	}
	s := app.NewScanner(app.ScannerConfig{
		Workers:     o.workers,
		StartOffset: o.startOffset,
	}, o.logger, sink)
	return s.Scan(ctx, sources)
}

// ScanBytes validates an in-memory buffer. Only WithStartOffset applies.
func ScanBytes(name string, data []byte, opts ...Option) Result {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return app.DecodeBuffer(name, data, o.startOffset)
}
