package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/bft-labs/runeguard/internal/adapters/fs"
	"github.com/bft-labs/runeguard/internal/app"
	"github.com/bft-labs/runeguard/internal/ports"
	"github.com/bft-labs/runeguard/internal/report"
)

func newWatchCommand(a *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Re-validate files whenever they change",
		Long: "Validate the given files, then re-validate each one after it is written.\n" +
			"Only new or changed verdicts are printed. Stops on SIGINT or SIGTERM.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			stream, err := report.NewStream(os.Stdout, a.cfg.Format, report.Options{Color: a.color(os.Stdout)})
			if err != nil {
				return err
			}

			scanner := app.NewScanner(app.ScannerConfig{
				Workers:     1,
				StartOffset: a.cfg.StartOffset,
				LoadRetries: a.cfg.Retries,
			}, a.log, nil)
			watcher := app.NewWatcher(app.WatcherConfig{Debounce: a.cfg.Debounce}, scanner, a.repository(), a.log, stream)

			sources := make([]ports.Source, 0, len(args))
			for _, p := range args {
				sources = append(sources, fs.NewFileSource(p, a.cfg.MaxBytes))
			}

			err = watcher.Run(ctx, sources)
			if errors.Is(err, context.Canceled) {
				a.log.Info("received signal, stopping...")
				err = nil
			}
			if err == nil {
				err = stream.Err()
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "quiet period after a write before re-validating")
	return cmd
}
