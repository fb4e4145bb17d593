package app

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/internal/ports"
	"github.com/bft-labs/runeguard/pkg/utf8dec"
)

func TestDecodeBuffer(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		start      int
		wantValid  bool
		wantCount  int
		wantReason utf8dec.Reason
		wantKind   utf8dec.Kind
	}{
		{name: "valid", data: []byte("a€😀"), wantValid: true, wantCount: 3},
		{name: "empty", data: nil, wantValid: true, wantCount: 0},
		{name: "offset", data: []byte("héllo"), start: 3, wantValid: true, wantCount: 3},
		{
			name:       "surrogate after text",
			data:       []byte{'o', 'k', 0xED, 0xA0, 0x80},
			wantCount:  2,
			wantKind:   utf8dec.KindUnicode,
			wantReason: utf8dec.ReasonSurrogate,
		},
		{
			name:       "offset past end",
			data:       []byte("ab"),
			start:      3,
			wantKind:   utf8dec.KindIndexOutOfBounds,
			wantReason: utf8dec.ReasonAboveLength,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := DecodeBuffer("buf", tt.data, tt.start)
			if res.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", res.Valid, tt.wantValid)
			}
			if res.CodePoints != tt.wantCount {
				t.Errorf("CodePoints = %d, want %d", res.CodePoints, tt.wantCount)
			}
			if res.Bytes != len(tt.data) || res.Start != tt.start || res.Source != "buf" {
				t.Errorf("summary = %+v", res)
			}
			if tt.wantValid {
				if res.Failure != nil {
					t.Errorf("Failure = %+v, want nil", res.Failure)
				}
				return
			}
			if res.Failure == nil {
				t.Fatal("Failure = nil")
			}
			if res.Failure.Kind != string(tt.wantKind) || res.Failure.Reason != string(tt.wantReason) {
				t.Errorf("Failure = %+v", res.Failure)
			}
		})
	}
}

func TestScanner_ScanPreservesOrder(t *testing.T) {
	var sources []ports.Source
	for i := 0; i < 20; i++ {
		data := []byte(fmt.Sprintf("source %d é", i))
		if i%5 == 0 {
			data = append(data, 0xFF)
		}
		sources = append(sources, memSource{name: fmt.Sprintf("s%d", i), data: data})
	}

	sink := newCollectSink()
	s := NewScanner(ScannerConfig{Workers: 4}, mockLogger{}, sink)
	results := s.Scan(context.Background(), sources)

	if len(results) != len(sources) {
		t.Fatalf("got %d results, want %d", len(results), len(sources))
	}
	for i, r := range results {
		if r.Source != sources[i].Name() {
			t.Errorf("result %d source = %q, want %q", i, r.Source, sources[i].Name())
		}
		wantValid := i%5 != 0
		if r.Valid != wantValid {
			t.Errorf("result %d valid = %v, want %v", i, r.Valid, wantValid)
		}
	}
	if got := len(sink.Results()); got != len(sources) {
		t.Errorf("sink saw %d results, want %d", got, len(sources))
	}
	if !domain.AnyFailed(results) {
		t.Error("AnyFailed() = false")
	}
}

func TestScanner_LoadError(t *testing.T) {
	s := NewScanner(ScannerConfig{LoadRetries: 3}, mockLogger{}, nil)
	missing := &flakySource{failures: 100, err: os.ErrNotExist}

	res := s.ScanOne(context.Background(), missing)
	if res.LoadError == "" || !res.Failed() {
		t.Errorf("result = %+v, want load error", res)
	}
	if missing.calls != 1 {
		t.Errorf("missing file loaded %d times, want 1 (not retryable)", missing.calls)
	}
}

func TestScanner_PermanentNotRetried(t *testing.T) {
	s := NewScanner(ScannerConfig{
		LoadRetries:    3,
		BackoffInitial: time.Millisecond,
		BackoffMax:     2 * time.Millisecond,
	}, mockLogger{}, nil)

	for _, err := range []error{
		fmt.Errorf("server returned 404: %w", domain.ErrPermanent),
		fmt.Errorf("%w: unexpected EOF", domain.ErrPermanent),
	} {
		src := &flakySource{failures: 100, err: err}
		res := s.ScanOne(context.Background(), src)
		if res.LoadError == "" {
			t.Errorf("%v: result = %+v, want load error", err, res)
		}
		if src.calls != 1 {
			t.Errorf("%v: loaded %d times, want 1", err, src.calls)
		}
	}
}

func TestScanner_RetriesTransient(t *testing.T) {
	s := NewScanner(ScannerConfig{
		LoadRetries:    2,
		BackoffInitial: time.Millisecond,
		BackoffMax:     2 * time.Millisecond,
	}, mockLogger{}, nil)

	src := &flakySource{failures: 2, err: errTransient, data: []byte("ok")}
	res := s.ScanOne(context.Background(), src)
	if !res.Valid || res.LoadError != "" {
		t.Errorf("result = %+v, want valid after retries", res)
	}
	if src.calls != 3 {
		t.Errorf("calls = %d, want 3", src.calls)
	}

	src = &flakySource{failures: 5, err: errTransient}
	res = s.ScanOne(context.Background(), src)
	if res.LoadError == "" {
		t.Error("expected load error after exhausting retries")
	}
	if src.calls != 3 {
		t.Errorf("calls = %d, want 3", src.calls)
	}
}

func TestScanner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScanner(ScannerConfig{Workers: 2}, mockLogger{}, nil)
	results := s.Scan(ctx, []ports.Source{
		memSource{name: "a", data: []byte("a")},
		memSource{name: "b", data: []byte("b")},
	})
	for _, r := range results {
		if r.LoadError == "" {
			t.Errorf("result %q = %+v, want context error", r.Source, r)
		}
	}
}

func TestScanner_StartOffset(t *testing.T) {
	s := NewScanner(ScannerConfig{StartOffset: 1}, mockLogger{}, nil)
	res := s.ScanOne(context.Background(), memSource{name: "e", data: []byte("é")})
	if res.Valid {
		t.Error("decoding from inside a sequence should fail")
	}
	if res.Failure == nil || res.Failure.Reason != string(utf8dec.ReasonUnknownByte) {
		t.Errorf("Failure = %+v", res.Failure)
	}
}

func TestScanner_Empty(t *testing.T) {
	s := NewScanner(ScannerConfig{Workers: 3}, mockLogger{}, nil)
	if got := s.Scan(context.Background(), nil); len(got) != 0 {
		t.Errorf("Scan(nil) = %v", got)
	}
}
