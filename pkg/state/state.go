package state

import "time"

// Verdict is the outcome of the most recent scan of one source.
type Verdict struct {
	// Valid is true when the source decoded without error.
	Valid bool `json:"valid"`

	// Bytes is the size of the source at scan time.
	Bytes int `json:"bytes"`

	// Reason is the decoder failure reason, empty when valid.
	Reason string `json:"reason,omitempty"`

	// Offset is the byte index of the failure, zero when valid.
	Offset int `json:"offset,omitempty"`

	// CheckedAt is when the scan finished.
	CheckedAt time.Time `json:"checked_at"`
}

// Changed reports whether v differs from prev in a way worth announcing:
// validity flipped, or the failure moved.
func (v Verdict) Changed(prev Verdict) bool {
	if v.Valid != prev.Valid {
		return true
	}
	if v.Valid {
		return false
	}
	return v.Reason != prev.Reason || v.Offset != prev.Offset
}

// State holds verdicts keyed by source name.
type State struct {
	Sources   map[string]Verdict `json:"sources"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// IsEmpty returns true if no verdict has been recorded.
func (s State) IsEmpty() bool {
	return len(s.Sources) == 0
}

// Get returns the verdict for name and whether one was recorded.
func (s State) Get(name string) (Verdict, bool) {
	v, ok := s.Sources[name]
	return v, ok
}

// Put records a verdict and bumps UpdatedAt.
func (s *State) Put(name string, v Verdict) {
	if s.Sources == nil {
		s.Sources = make(map[string]Verdict)
	}
	s.Sources[name] = v
	s.UpdatedAt = time.Now()
}

// Forget drops the verdict for name.
func (s *State) Forget(name string) {
	delete(s.Sources, name)
}
