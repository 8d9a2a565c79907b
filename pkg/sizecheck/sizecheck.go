// Package sizecheck runs one report cycle: expand paths, measure, print, decide.
package sizecheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"mocsize/pkg/config"
	"mocsize/pkg/expand"
	"mocsize/pkg/ignore"
	"mocsize/pkg/measure"
	"mocsize/pkg/report"
)

// ErrBudgetExceeded is returned after the report has been printed when a result is over the limit.
var ErrBudgetExceeded = errors.New("size limit exceeded")

// Arguments holds everything one run needs.
type Arguments struct {
	Config   config.Config    // Effective configuration.
	Registry measure.Registry // Preset dispatch table; DefaultRegistry when nil.
	Output   io.Writer        // Report destination.
	Color    bool             // Colourise the report.
	Workers  int              // Worker bound for the measurement pipeline.
}

// Run resolves the preset, expands paths, measures and prints. It returns ErrBudgetExceeded
// when a limit is set and any result is over it. Failures are logged at debug level only;
// the caller reports the returned error.
func Run(ctx context.Context, args *Arguments, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()
	cfg := args.Config

	registry := args.Registry
	if registry == nil {
		registry = measure.DefaultRegistry
	}

	strategy, err := registry.Lookup(cfg.Preset, measure.Options{
		Name:        cfg.Name,
		Compression: cfg.Compression,
		Workers:     args.Workers,
		Logger:      logger.With(zap.String("preset", string(cfg.Preset))),
	})
	if err != nil {
		logger.Debug("Failed to load preset", zap.String("preset", string(cfg.Preset)), zap.Error(err))
		return err
	}

	matcher, err := ignore.LoadIgnoreFiles(
		cfg.WorkDir,
		filepath.Join(cfg.WorkDir, ignore.FileName),
		cfg.GlobalIgnoreFile,
		cfg.Ignore,
		logger,
	)
	if err != nil {
		logger.Debug("Failed to load ignore patterns", zap.Error(err))
		return fmt.Errorf("failed to load ignore patterns: %w", err)
	}

	files, err := expand.Expand(cfg.Paths, cfg.WorkDir, matcher, logger)
	if err != nil {
		logger.Debug("Failed to collect files", zap.Strings("paths", cfg.Paths), zap.Error(err))
		return err
	}

	results, err := strategy.Measure(ctx, files)
	if err != nil {
		logger.Debug("Failed to measure files", zap.Error(err))
		return fmt.Errorf("measurement failed: %w", err)
	}

	report.NewPrinter(args.Output, args.Color).Print(results, cfg.Limit)

	for _, r := range results {
		logger.Info("Measured target",
			zap.String("name", r.Name),
			zap.Int("files", r.Files),
			zap.Int64("sizeBytes", r.Size),
			zap.Bool("withinLimit", report.Within(r, cfg.Limit)))
	}

	logger.Info("Size check completed",
		zap.Int("files", len(files)),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(startTime)))

	if report.ExitCode(results, cfg.Limit) != report.ExitSuccess {
		return ErrBudgetExceeded
	}
	return nil
}
