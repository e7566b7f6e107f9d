package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dgallion1/dox/internal/config"
)

// app carries state shared by all subcommands.
type app struct {
	cfg config.Config
	log *slog.Logger

	includeDirs []string
	strictLinks bool
	workers     int
	logLevel    string
	logFormat   string
}

func main() {
	a := &app{}
	if err := a.rootCmd().Execute(); err != nil {
		if a.log == nil {
			a.log = slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen}))
		}
		a.log.Error("dox failed", "error", err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dox",
		Short:         "Process C++ API documentation into a cross-referenced manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringArrayVarP(&a.includeDirs, "include", "I", nil, "directory searched for @include and @snippet files (repeatable)")
	flags.BoolVar(&a.strictLinks, "strict-links", false, "fail the build on unresolved links")
	flags.IntVar(&a.workers, "workers", 0, "number of sources loaded concurrently")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(a.buildCmd(), a.checkCmd(), a.showCmd(), a.sigCmd())
	return root
}

// setup loads the environment config, applies flag overrides and builds
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("include") {
		cfg.IncludeDirs = a.includeDirs
	}
	if flags.Changed("strict-links") {
		cfg.StrictLinks = a.strictLinks
	}
	if flags.Changed("workers") {
		cfg.LoadWorkers = a.workers
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		a.log = newLogger(cfg, cmd.ErrOrStderr())
		return err
	}
	a.cfg = cfg
	a.log = newLogger(cfg, cmd.ErrOrStderr())
	return nil
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	level, _ := cfg.SlogLevel()
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}
