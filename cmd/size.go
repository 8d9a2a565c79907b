package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mocsize/pkg/config"
	"mocsize/pkg/logging"
	"mocsize/pkg/sizecheck"
)

type sizeOptions struct {
	preset      string
	limit       string
	compression string
	ignore      []string
	noColor     bool
	workers     int
}

// addSizeFlags wires the size check as the root command's action.
func addSizeFlags(rootCmd *cobra.Command, env Env) {
	opts := &sizeOptions{}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.preset, "preset", "", "measurement preset: app, big-lib (big), small-lib (small)")
	flags.StringVar(&opts.limit, "limit", "", `size budget, e.g. "50kb", "10 KB", "500b" (no unit means kB)`)
	flags.StringVar(&opts.compression, "compression", "", "compression applied before counting: brotli, gzip, none")
	flags.StringArrayVar(&opts.ignore, "ignore", nil, "extra gitignore-style exclusion pattern (repeatable)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	flags.IntVar(&opts.workers, "workers", 0, "files processed in parallel (default: number of CPUs)")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runSize(cmd, args, env, opts)
	}
}

// runSize loads the project config, resolves the effective configuration and runs the check.
func runSize(cmd *cobra.Command, args []string, env Env, opts *sizeOptions) error {
	logger := logging.Logger

	project, err := config.LoadProject(env.WorkDir, logger)
	if err != nil {
		return err
	}

	cfg := config.Resolve(config.Overrides{
		Paths:       args,
		Preset:      opts.preset,
		Limit:       opts.limit,
		Compression: opts.compression,
		Ignore:      opts.ignore,
	}, project, env.WorkDir)
	cfg.GlobalIgnoreFile = env.GlobalIgnoreFile

	source := "none"
	if project != nil {
		source = project.Source
	}

	limitBytes, hasLimit := cfg.Limit.Bytes()
	logger.Debug("Resolved configuration",
		zap.String("projectConfig", source),
		zap.Strings("paths", cfg.Paths),
		zap.String("preset", string(cfg.Preset)),
		zap.Bool("hasLimit", hasLimit),
		zap.Float64("limitBytes", limitBytes),
		zap.String("compression", string(cfg.Compression)),
		zap.Strings("ignore", cfg.Ignore))

	return sizecheck.Run(cmd.Context(), &sizecheck.Arguments{
		Config:  cfg,
		Output:  cmd.OutOrStdout(),
		Color:   env.Color && !opts.noColor,
		Workers: opts.workers,
	}, logger)
}
