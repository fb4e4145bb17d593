package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bft-labs/runeguard/internal/cliconfig"
	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/internal/ports"
	"github.com/bft-labs/runeguard/pkg/log"
	"github.com/bft-labs/runeguard/pkg/state"
)

const helpDescription = `
Strict UTF-8 validation for files, stdin and HTTP responses.

Every byte is checked: overlong lead bytes, code points beyond U+10FFFF,
stray or missing continuation bytes and UTF-16 surrogate halves are all
rejected at the exact offset where they occur. Nothing is repaired or
replaced.

Configure via $HOME/.runeguard/config.toml, RUNEGUARD_* variables or flags
(flags win over environment, environment wins over the file).
`

var exampleUsage = strings.TrimSpace(`
  runeguard decode --offset 3 notes.txt
  runeguard scan --format json ./testdata/*.txt https://example.com/feed.xml
  cat dump.bin | runeguard scan -
  runeguard watch --state-dir /var/lib/runeguard config/*.yaml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries what every subcommand needs once flags are resolved.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	log     log.Logger
}

func main() {
	a := &cli{cfg: cliconfig.DefaultConfig(), log: log.NewNoopLogger()}

	root := &cobra.Command{
		Use:           "runeguard",
		Short:         "Strict UTF-8 validation for files, stdin and HTTP responses",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.runeguard/config.toml)")
	f.StringVar(&a.cfg.Format, "format", a.cfg.Format, "report format: text, json or yaml")
	f.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "log format: console or json")
	f.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn or error")
	f.StringVar(&a.cfg.Color, "color", a.cfg.Color, "colored text output: auto, always or never")
	f.IntVar(&a.cfg.StartOffset, "offset", a.cfg.StartOffset, "byte offset to start decoding from")
	f.Int64Var(&a.cfg.MaxBytes, "max-bytes", a.cfg.MaxBytes, "maximum bytes read per source (0 for no limit)")
	f.IntVar(&a.cfg.Retries, "retries", a.cfg.Retries, "retries for sources that fail to load")
	f.DurationVar(&a.cfg.HTTPTimeout, "timeout", a.cfg.HTTPTimeout, "HTTP timeout")
	f.StringVar(&a.cfg.StateDir, "state-dir", a.cfg.StateDir, "directory for verdicts.json (empty keeps verdicts in memory)")

	root.AddCommand(
		newDecodeCommand(a),
		newScanCommand(a),
		newWatchCommand(a),
	)

	err := root.Execute()
	if zl, ok := a.log.(*log.ZapAdapter); ok {
		_ = zl.Sync()
	}
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidInput):
		os.Exit(1)
	default:
		a.log.Error("runeguard", log.Err(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// load resolves configuration: defaults, then the TOML file, then RUNEGUARD_*
// variables, with explicitly set flags winning over both.
func (a *cli) load(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	} else if a.cfgPath != "" {
		return fmt.Errorf("load config: %s does not exist", a.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger, err := log.New(a.cfg.LogFormat, a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.log = logger
	a.log.Debug("configuration", log.Any("config", a.cfg), log.String("file", cfgFile))
	return nil
}

func (a *cli) httpClient() ports.HTTPClient {
	return &http.Client{Timeout: a.cfg.HTTPTimeout}
}

func (a *cli) repository() ports.StateRepository {
	if a.cfg.StateDir == "" {
		return state.NewMemoryRepository()
	}
	return state.NewFileRepository(a.cfg.StateDir)
}

// color decides whether text output to f is styled.
func (a *cli) color(f *os.File) bool {
	switch a.cfg.Color {
	case cliconfig.ColorAlways:
		return true
	case cliconfig.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
