package app

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/internal/ports"
	"github.com/bft-labs/runeguard/pkg/utf8dec"
)

// ScannerConfig contains configuration for the scanner.
type ScannerConfig struct {
	// Workers bounds how many sources are loaded and decoded at once.
	Workers int

	// StartOffset is the byte offset decoding starts from in every source.
	StartOffset int

	// LoadRetries is how many times a failed load is retried.
	// Missing files, oversized sources, domain.ErrPermanent failures and
	// cancellation are never retried.
	LoadRetries int

	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// Scanner loads byte sources and validates them with the strict decoder.
type Scanner struct {
	config ScannerConfig
	logger ports.Logger
	sink   ports.ResultSink
	sinkMu sync.Mutex
}

// NewScanner creates a scanner. sink may be nil.
func NewScanner(config ScannerConfig, logger ports.Logger, sink ports.ResultSink) *Scanner {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Scanner{
		config: config,
		logger: logger,
		sink:   sink,
	}
}

// Scan validates every source and returns results in input order.
// Sources not reached before ctx is canceled carry the context error.
func (s *Scanner) Scan(ctx context.Context, sources []ports.Source) []domain.ScanResult {
	results := make([]domain.ScanResult, len(sources))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := min(s.config.Workers, len(sources))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.ScanOne(ctx, sources[i])
			}
		}()
	}

	next := 0
feed:
	for ; next < len(sources); next++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(sources); i++ {
		results[i] = domain.ScanResult{
			Source:    sources[i].Name(),
			Start:     s.config.StartOffset,
			LoadError: ctx.Err().Error(),
		}
	}

	s.logger.Info("scan complete",
		ports.Int("sources", len(sources)),
		ports.Int("failed", countFailed(results)))
	return results
}

// ScanOne loads and validates a single source.
func (s *Scanner) ScanOne(ctx context.Context, src ports.Source) domain.ScanResult {
	began := time.Now()

	data, err := s.load(ctx, src)
	if err != nil {
		s.logger.Error("load failed",
			ports.String("source", src.Name()),
			ports.Err(err))
		res := domain.ScanResult{
			Source:    src.Name(),
			Start:     s.config.StartOffset,
			LoadError: err.Error(),
			Elapsed:   time.Since(began),
		}
		s.emit(res)
		return res
	}

	res := DecodeBuffer(src.Name(), data, s.config.StartOffset)
	res.Elapsed = time.Since(began)

	if res.Valid {
		s.logger.Debug("source valid",
			ports.String("source", res.Source),
			ports.Int("bytes", res.Bytes),
			ports.Int("code_points", res.CodePoints))
	} else {
		fields := []ports.Field{
			ports.String("source", res.Source),
			ports.String("reason", res.Failure.Reason),
			ports.Int("offset", res.Failure.Offset),
		}
		if res.Failure.CodePoint {
			fields = append(fields, ports.Rune("code_point", rune(res.Failure.Value)))
		}
		s.logger.Warn("source invalid", fields...)
	}
	s.emit(res)
	return res
}

func (s *Scanner) load(ctx context.Context, src ports.Source) ([]byte, error) {
	b := newBackoff(s.config.BackoffInitial, s.config.BackoffMax)
	for attempt := 0; ; attempt++ {
		data, err := src.Load(ctx)
		if err == nil {
			return data, nil
		}
		if attempt >= s.config.LoadRetries || !retryable(err) {
			return nil, err
		}
		s.logger.Warn("load failed, retrying",
			ports.String("source", src.Name()),
			ports.Int("attempt", attempt+1),
			ports.Duration("backoff", b.Current()),
			ports.Err(err))
		if werr := b.Wait(ctx); werr != nil {
			return nil, werr
		}
	}
}

func (s *Scanner) emit(res domain.ScanResult) {
	if s.sink == nil {
		return
	}
	s.sinkMu.Lock()
	defer s.sinkMu.Unlock()
	s.sink.OnResult(res)
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return false
	case errors.Is(err, domain.ErrSourceTooLarge), errors.Is(err, domain.ErrPermanent):
		return false
	}
	return true
}

// DecodeBuffer validates data from start and summarizes the outcome.
func DecodeBuffer(name string, data []byte, start int) domain.ScanResult {
	res := domain.ScanResult{
		Source: name,
		Bytes:  len(data),
		Start:  start,
	}
	n, err := utf8dec.Count(utf8dec.Bytes(data), start)
	res.CodePoints = n
	if err != nil {
		res.Failure = domain.NewDecodeFailure(err)
		return res
	}
	res.Valid = true
	return res
}

func countFailed(results []domain.ScanResult) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}
