package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/internal/ports"
	"github.com/bft-labs/runeguard/pkg/state"
)

// DefaultDebounce is the quiet period after a file event before re-scanning.
const DefaultDebounce = 100 * time.Millisecond

// WatcherConfig contains configuration for the watch loop.
type WatcherConfig struct {
	// Debounce is the delay after the last write before a file is re-scanned.
	Debounce time.Duration
}

// Watcher re-validates files whenever they change and reports verdict
// transitions.
type Watcher struct {
	config  WatcherConfig
	scanner *Scanner
	repo    ports.StateRepository
	logger  ports.Logger
	sink    ports.ResultSink

	mu     sync.Mutex
	sinkMu sync.Mutex
	state  state.State
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher. sink receives results whose verdict is new
// or changed; it may be nil.
func NewWatcher(config WatcherConfig, scanner *Scanner, repo ports.StateRepository, logger ports.Logger, sink ports.ResultSink) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	return &Watcher{
		config:  config,
		scanner: scanner,
		repo:    repo,
		logger:  logger,
		sink:    sink,
		timers:  make(map[string]*time.Timer),
	}
}

// Run scans every source once, then re-scans a source each time its file
// is written or re-created. Sources are keyed by their Name, which must be
// a file path. Run blocks until ctx is canceled and returns ctx.Err().
func (w *Watcher) Run(ctx context.Context, sources []ports.Source) error {
	if len(sources) == 0 {
		return domain.ErrNoSources
	}

	st, err := w.repo.Load(ctx)
	if err != nil {
		w.logger.Error("failed to load state", ports.Err(err))
		// Continue with empty state
		st = state.State{}
	}
	if st.IsEmpty() {
		w.logger.Debug("no stored verdicts")
	} else {
		w.logger.Debug("loaded stored verdicts", ports.Int("sources", len(st.Sources)))
	}
	w.mu.Lock()
	w.state = st
	w.mu.Unlock()

	byPath := make(map[string]ports.Source, len(sources))
	dirs := make(map[string]struct{})
	for _, src := range sources {
		abs, err := filepath.Abs(src.Name())
		if err != nil {
			return fmt.Errorf("resolve %s: %w", src.Name(), err)
		}
		byPath[abs] = src
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Watch directories rather than files so editors that replace the
	// file on save keep being tracked.
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	for _, src := range sources {
		w.check(ctx, src)
	}
	w.logger.Info("watching", ports.Int("files", len(sources)), ports.Int("dirs", len(dirs)))

	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			src, watched := byPath[filepath.Clean(event.Name)]
			if !watched {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				w.debounce(ctx, src)
			case event.Op&fsnotify.Remove != 0:
				w.forget(ctx, src)
			case event.Op&fsnotify.Rename != 0:
				w.logger.Warn("watched file renamed", ports.String("source", src.Name()))
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) debounce(ctx context.Context, src ports.Source) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[src.Name()]; ok {
		if t.Stop() {
			w.wg.Done()
		}
	}
	w.wg.Add(1)
	w.timers[src.Name()] = time.AfterFunc(w.config.Debounce, func() {
		defer w.wg.Done()
		if ctx.Err() != nil {
			return
		}
		w.check(ctx, src)
	})
}

// forget drops the stored verdict of a deleted file so that a file
// re-created later is reported afresh.
func (w *Watcher) forget(ctx context.Context, src ports.Source) {
	w.mu.Lock()
	if t, ok := w.timers[src.Name()]; ok {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, src.Name())
	}
	_, seen := w.state.Get(src.Name())
	w.state.Forget(src.Name())
	var err error
	if seen {
		err = w.repo.Save(ctx, w.state)
	}
	w.mu.Unlock()

	w.logger.Warn("watched file removed", ports.String("source", src.Name()))
	if err != nil {
		w.logger.Error("failed to save state", ports.Err(err))
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	for name, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, name)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

// check scans src and records the verdict, reporting it when it differs
// from the last one seen.
func (w *Watcher) check(ctx context.Context, src ports.Source) {
	res := w.scanner.ScanOne(ctx, src)
	if ctx.Err() != nil {
		return
	}
	v := verdictOf(res)

	w.mu.Lock()
	prev, seen := w.state.Get(res.Source)
	w.state.Put(res.Source, v)
	changed := !seen || v.Changed(prev)
	var saveErr error
	if changed {
		saveErr = w.repo.Save(ctx, w.state)
	}
	w.mu.Unlock()

	if !changed {
		return
	}
	if saveErr != nil {
		w.logger.Error("failed to save state", ports.Err(saveErr))
	}

	if v.Valid {
		w.logger.Info("verdict: valid", ports.String("source", res.Source), ports.Int("bytes", res.Bytes))
	} else {
		w.logger.Warn("verdict: invalid",
			ports.String("source", res.Source),
			ports.String("reason", v.Reason),
			ports.Int("offset", v.Offset))
	}
	if w.sink != nil {
		w.sinkMu.Lock()
		w.sink.OnResult(res)
		w.sinkMu.Unlock()
	}
}

func verdictOf(res domain.ScanResult) state.Verdict {
	v := state.Verdict{
		Valid:     !res.Failed(),
		Bytes:     res.Bytes,
		CheckedAt: time.Now(),
	}
	switch {
	case res.LoadError != "":
		v.Reason = res.LoadError
	case res.Failure != nil:
		v.Reason = res.Failure.Reason
		v.Offset = res.Failure.Offset
	}
	return v
}
