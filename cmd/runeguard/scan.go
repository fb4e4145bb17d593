package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bft-labs/runeguard/internal/adapters"
	"github.com/bft-labs/runeguard/internal/app"
	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/internal/report"
	"github.com/bft-labs/runeguard/pkg/log"
)

func newScanCommand(a *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <source>...",
		Short: "Validate many sources and print a report",
		Long: "Validate files, URLs and stdin (-) concurrently and print a text, JSON or YAML report.\n" +
			"Exits 1 when any source fails to load or is not valid UTF-8.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			return a.scan(ctx, os.Stdout, args)
		},
	}

	cmd.Flags().IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "sources validated concurrently")
	return cmd
}

// scan validates args and renders the report to w. An interrupted scan
// stops without a report.
func (a *cli) scan(ctx context.Context, w io.Writer, args []string) error {
	scanner := app.NewScanner(app.ScannerConfig{
		Workers:     a.cfg.Workers,
		StartOffset: a.cfg.StartOffset,
		LoadRetries: a.cfg.Retries,
	}, a.log, nil)

	sources := adapters.FromArgs(args, a.httpClient(), a.cfg.MaxBytes)
	results := scanner.Scan(ctx, sources)
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			a.log.Info("received signal, stopping...")
			return nil
		}
		return err
	}

	color := false
	if f, ok := w.(*os.File); ok {
		color = a.color(f)
	}
	if err := report.Render(w, a.cfg.Format, results, report.Options{Color: color}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if a.cfg.StateDir != "" {
		changed, err := app.RecordVerdicts(ctx, a.repository(), results)
		if err != nil {
			return err
		}
		for _, name := range changed {
			a.log.Info("verdict changed", log.String("source", name))
		}
	}

	if domain.AnyFailed(results) {
		return domain.ErrInvalidInput
	}
	return nil
}
