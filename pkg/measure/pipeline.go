package measure

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"mocsize/pkg/config"
)

// pipeline is the built-in Strategy: load, optionally minify, compress, sum per file.
type pipeline struct {
	opts   Options
	minify bool
	timing bool
}

func newPipeline(opts Options, minify, timing bool) *pipeline {
	return &pipeline{opts: opts, minify: minify, timing: timing}
}

// Measure returns a single aggregate result for all files. Each file is compressed on its
// own, so the total does not depend on file order or on content shared between files.
func (p *pipeline) Measure(ctx context.Context, files []string) ([]Result, error) {
	logger := p.opts.Logger
	start := time.Now()

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	sizes, err := measureAll(ctx, sorted, p.minify, p.opts.Compression, p.opts.Workers, logger)
	if err != nil {
		return nil, err
	}

	var size int64
	var loaded int
	for _, s := range sizes {
		size += s.compressed
		loaded += s.loaded
	}

	result := Result{
		Name:        p.opts.Name,
		Size:        size,
		Files:       len(sorted),
		Description: p.describe(),
	}
	if p.timing {
		result.LoadingTime = LoadingTime(size)
	}

	logger.Debug("Measured bundle",
		zap.Int("files", len(sorted)),
		zap.Int("uncompressedBytes", loaded),
		zap.Int64("sizeBytes", size),
		zap.String("compression", string(p.opts.Compression)),
		zap.Duration("elapsed", time.Since(start)))

	return []Result{result}, nil
}

func (p *pipeline) describe() string {
	var compressed string
	switch p.opts.Compression {
	case config.CompressionGzip:
		compressed = "gzipped"
	case config.CompressionNone:
		compressed = ""
	default:
		compressed = "brotlied"
	}

	switch {
	case p.minify && compressed != "":
		return "with all dependencies, minified and " + compressed
	case p.minify:
		return "with all dependencies, minified"
	case compressed != "":
		return compressed
	default:
		return "uncompressed"
	}
}
