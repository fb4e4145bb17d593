package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bft-labs/runeguard/internal/domain"
)

// FileSource implements ports.Source for a file on disk.
type FileSource struct {
	path     string
	maxBytes int64
}

// NewFileSource creates a source for path. maxBytes <= 0 disables the limit.
func NewFileSource(path string, maxBytes int64) *FileSource {
	return &FileSource{path: path, maxBytes: maxBytes}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Load reads the whole file.
func (s *FileSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", s.path)
	}
	if s.maxBytes > 0 && info.Size() > s.maxBytes {
		return nil, fmt.Errorf("%s: %d bytes: %w", s.path, info.Size(), domain.ErrSourceTooLarge)
	}
	return os.ReadFile(s.path)
}

// ReaderSource implements ports.Source over an io.Reader such as stdin.
// It can be loaded once; read failures and later loads fail with
// domain.ErrPermanent since the stream cannot be rewound.
type ReaderSource struct {
	name     string
	r        io.Reader
	maxBytes int64

	mu       sync.Mutex
	consumed bool
}

// NewReaderSource creates a source reading from r. maxBytes <= 0 disables the limit.
func NewReaderSource(name string, r io.Reader, maxBytes int64) *ReaderSource {
	return &ReaderSource{name: name, r: r, maxBytes: maxBytes}
}

// Name returns the configured name.
func (s *ReaderSource) Name() string {
	return s.name
}

// Load reads until EOF.
func (s *ReaderSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed {
		return nil, fmt.Errorf("%s: already read: %w", s.name, domain.ErrPermanent)
	}
	s.consumed = true

	data, err := readLimited(s.name, s.r, s.maxBytes)
	if err != nil && !errors.Is(err, domain.ErrSourceTooLarge) {
		return nil, fmt.Errorf("%s: read: %w: %w", s.name, domain.ErrPermanent, err)
	}
	return data, err
}

// readLimited reads all of r, failing with ErrSourceTooLarge past max bytes.
func readLimited(name string, r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%s: more than %d bytes: %w", name, max, domain.ErrSourceTooLarge)
	}
	return data, nil
}
