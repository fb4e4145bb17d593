package state

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

const stateFileName = "verdicts.json"

// FileRepository implements Repository using a JSON file.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a new FileRepository for the given directory.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Load retrieves the last saved state from disk.
// Returns an empty state and nil error if no state file exists.
func (r *FileRepository) Load(ctx context.Context) (State, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, err
	}

	var st State
	if err := json.UnmarshalContext(ctx, data, &st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Save persists the state atomically (temp file, then rename).
func (r *FileRepository) Save(ctx context.Context, st State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the state file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, stateFileName)
}

// MemoryRepository keeps state in memory. Used when no state directory is
// configured.
type MemoryRepository struct {
	mu sync.Mutex
	st State
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Load returns a copy of the stored state.
func (m *MemoryRepository) Load(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.clone(), nil
}

// Save replaces the stored state with a copy of st.
func (m *MemoryRepository) Save(ctx context.Context, st State) error {
	m.mu.Lock()
	m.st = st.clone()
	m.mu.Unlock()
	return nil
}

func (s State) clone() State {
	out := State{UpdatedAt: s.UpdatedAt}
	if len(s.Sources) > 0 {
		out.Sources = make(map[string]Verdict, len(s.Sources))
		for k, v := range s.Sources {
			out.Sources[k] = v
		}
	}
	return out
}
