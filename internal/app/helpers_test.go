package app

import (
	"context"
	"errors"
	"sync"

	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// memSource is an in-memory ports.Source.
type memSource struct {
	name string
	data []byte
}

func (s memSource) Name() string { return s.name }

func (s memSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.data, nil
}

// flakySource fails a fixed number of times before succeeding.
type flakySource struct {
	mu       sync.Mutex
	failures int
	calls    int
	err      error
	data     []byte
}

func (s *flakySource) Name() string { return "flaky" }

func (s *flakySource) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return nil, s.err
	}
	return s.data, nil
}

// collectSink records results.
type collectSink struct {
	mu      sync.Mutex
	results []domain.ScanResult
	ch      chan domain.ScanResult
}

func newCollectSink() *collectSink {
	return &collectSink{ch: make(chan domain.ScanResult, 64)}
}

func (c *collectSink) OnResult(r domain.ScanResult) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
	c.ch <- r
}

func (c *collectSink) Results() []domain.ScanResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ScanResult{}, c.results...)
}

var errTransient = errors.New("connection reset")
