package ports

import (
	"context"

	"github.com/bft-labs/runeguard/pkg/state"
)

// StateRepository persists the last-known verdict for each source.
// Implementations persist state atomically.
type StateRepository interface {
	// Load retrieves the last saved state.
	// Returns an empty state and nil error if no state exists.
	Load(ctx context.Context) (state.State, error)

	// Save persists the current state atomically.
	Save(ctx context.Context, st state.State) error
}
