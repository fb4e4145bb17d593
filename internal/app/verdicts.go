package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/internal/ports"
)

// RecordVerdicts merges the verdicts of results into the stored state and
// saves it. It returns the sources whose verdict is new or changed.
func RecordVerdicts(ctx context.Context, repo ports.StateRepository, results []domain.ScanResult) ([]string, error) {
	st, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	var changed []string
	for _, res := range results {
		v := verdictOf(res)
		prev, seen := st.Get(res.Source)
		if !seen || v.Changed(prev) {
			changed = append(changed, res.Source)
		}
		st.Put(res.Source, v)
	}

	if err := repo.Save(ctx, st); err != nil {
		return changed, fmt.Errorf("save state: %w", err)
	}
	return changed, nil
}
