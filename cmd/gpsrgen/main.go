// Package main provides the gpsrgen binary entry point.
// gpsrgen extracts arena vocabulary from markdown reference documents and
// generates a saturated corpus of unique robot commands.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/gpsrgen/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "gpsrgen"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds flag values. Only flags set on the command line override the
// loaded config.
type options struct {
	configPath    string
	logLevel      string
	baseDir       string
	output        string
	maxDuplicates int
	seed          uint64
	category      string
	metricsFile   string
	extended      bool
}

// bind registers the persistent flags on cmd.
func (o *options) bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&o.baseDir, "base-dir", "", "Directory the document paths are relative to")
	flags.StringVarP(&o.output, "output", "o", "", "Corpus output file")
	flags.IntVar(&o.maxDuplicates, "max-duplicates", 0, "Consecutive duplicate draws that end generation")
	flags.Uint64Var(&o.seed, "seed", 0, "Random seed (0 = time based)")
	flags.StringVar(&o.category, "category", "", "Restrict generation to one command category")
	flags.StringVar(&o.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	flags.BoolVar(&o.extended, "extended", false, "Include the extended command categories")
}

// apply copies every flag the user set onto cfg, including zero values.
func (o *options) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("base-dir") {
		cfg.Documents.BaseDir = o.baseDir
	}
	if changed("output") {
		cfg.Output.Path = o.output
	}
	if changed("max-duplicates") {
		cfg.Generation.MaxConsecutiveDuplicates = o.maxDuplicates
	}
	if changed("seed") {
		cfg.Generation.Seed = o.seed
	}
	if changed("category") {
		cfg.Generation.CategoryHint = o.category
	}
	if changed("metrics-file") {
		cfg.Output.MetricsFile = o.metricsFile
	}
	if changed("extended") {
		cfg.Generation.Extended = o.extended
	}
	if changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
}

func rootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate a saturated corpus of robot commands",
		Long: `gpsrgen reads the names, locations, rooms and objects reference documents
(markdown pipe-tables), fills command templates with that vocabulary and keeps
drawing commands until 10000 draws in a row produce nothing new.

The unique commands are written one per line to the output file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, stdout, stderr)
		},
	}

	opts.bind(cmd)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "generate",
			Short: "Generate the command corpus (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGenerate(cmd, opts, stdout, stderr)
			},
		},
		&cobra.Command{
			Use:   "inspect",
			Short: "Show what is parsed from each reference document",
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp(cmd, opts, stdout, stderr)
				if err != nil {
					return err
				}
				return app.Inspect(stdout)
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Regenerate the corpus whenever a reference document changes",
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp(cmd, opts, stdout, stderr)
				if err != nil {
					return err
				}
				ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()
				return app.Watch(ctx)
			},
		},
		&cobra.Command{
			Use:   "init-config [dir]",
			Short: "Write a default " + config.ProjectConfigFile,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := "."
				if len(args) == 1 {
					dir = args[0]
				}
				path, created, err := config.NewLoader(newLogger(opts.logLevel, stderr)).EnsureProjectConfig(dir)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(stdout, "Wrote %s\n", path)
				} else {
					fmt.Fprintf(stdout, "%s already exists, left unchanged\n", path)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(stdout, "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) error {
	app, err := newApp(cmd, opts, stdout, stderr)
	if err != nil {
		return err
	}
	_, err = app.Generate()
	return err
}

// newApp loads the layered config, applies flag overrides and configures
// logging.
func newApp(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) (*App, error) {
	cfg, err := config.NewLoader(newLogger(opts.logLevel, stderr)).Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.Log.Level, stderr)
	slog.SetDefault(logger)

	return NewApp(cfg, logger, stdout), nil
}

func newLogger(logLevel string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
