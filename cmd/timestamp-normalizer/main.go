package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/quidome/timestamp-normalizer-go/pkg/config"
	"github.com/quidome/timestamp-normalizer-go/pkg/dispatch"
	"github.com/quidome/timestamp-normalizer-go/pkg/imagefile"
	"github.com/quidome/timestamp-normalizer-go/pkg/textfile"
)

const version = "0.1.0"

type options struct {
	timezone       string
	sourceTimezone string
	dateOrder      string
	configPath     string
	dryRun         bool
	verbose        bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:     "timestamp-normalizer [file]",
		Short:   "Rewrite timestamps in a file from one timezone to another",
		Long:    "Timestamp Normalizer rewrites the timestamp fields of a single file (EXIF datetime tags of an image, or date tokens in text content) by converting them from a source timezone to a target timezone.",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.Flags().StringVar(&opts.timezone, "timezone", defaults.Timezone, "target IANA timezone")
	rootCmd.Flags().StringVar(&opts.sourceTimezone, "source-timezone", defaults.SourceTimezone, "IANA timezone embedded timestamps are assumed to be in")
	rootCmd.Flags().StringVar(&opts.dateOrder, "date-order", defaults.DateOrder, "interpretation of ambiguous slash dates (mdy or dmy)")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "path to a TOML configuration file")
	rootCmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "compute and log changes without writing")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable per-tag and per-token trace logging")

	return rootCmd
}

func run(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	level := log.InfoLevel
	if opts.verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	// Processor failures are logged, never fatal: a no-op or a skipped file
	// still exits zero.
	switch kind := dispatch.Classify(path, cfg.DispatchOptions()); kind {
	case dispatch.KindImage:
		if err := imagefile.Process(logger, path, imagefile.Options{
			SourceTimezone: cfg.SourceTimezone,
			TargetTimezone: cfg.Timezone,
			DryRun:         opts.dryRun,
			Normalize:      cfg.NormalizeOptions(),
		}); err != nil {
			logger.Error("image processing failed", "path", path, "err", err)
		}
	case dispatch.KindText:
		if err := textfile.Process(logger, path, textfile.Options{
			SourceTimezone: cfg.SourceTimezone,
			TargetTimezone: cfg.Timezone,
			DryRun:         opts.dryRun,
			Normalize:      cfg.NormalizeOptions(),
		}); err != nil {
			logger.Error("text processing failed", "path", path, "err", err)
		}
	default:
		logger.Warn("unsupported file type", "path", path)
	}

	return nil
}

// resolveConfig merges the optional config file with command-line flags.
// Flags the user set explicitly win over file values.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("timezone") {
		cfg.Timezone = opts.timezone
	}
	if cmd.Flags().Changed("source-timezone") {
		cfg.SourceTimezone = opts.sourceTimezone
	}
	if cmd.Flags().Changed("date-order") {
		cfg.DateOrder = opts.dateOrder
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
