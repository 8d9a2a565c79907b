// Package measure computes the minified and compressed size of a set of files.
//
// A preset selects a pipeline: whether files are minified, how the result is compressed,
// and whether a loading time estimate is attached. Presets are looked up in a Registry,
// so adding one means extending config.PresetID and the dispatch table below.
package measure

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mocsize/pkg/config"
)

// Result is one measured target.
type Result struct {
	Name        string        // Label shown in the report.
	Size        int64         // Bytes after minification and compression.
	Files       int           // Number of files that contributed.
	LoadingTime time.Duration // Zero when the preset does not estimate timing.
	Description string        // What Size includes, e.g. "minified and brotlied".
}

// Strategy measures a file set. Implementations may return one aggregate result or several.
type Strategy interface {
	Measure(ctx context.Context, files []string) ([]Result, error)
}

// Options tune a pipeline regardless of preset.
type Options struct {
	Name        string
	Compression config.Compression
	Workers     int // <= 0 means runtime.NumCPU().
	Logger      *zap.Logger
}

// Factory builds a Strategy for one preset.
type Factory func(opts Options) Strategy

// Registry is the preset dispatch table.
type Registry map[config.PresetID]Factory

// DefaultRegistry holds the built-in presets.
var DefaultRegistry = Registry{
	config.PresetApp: func(opts Options) Strategy {
		return newPipeline(opts, false, true)
	},
	config.PresetBigLib: func(opts Options) Strategy {
		return newPipeline(opts, true, true)
	},
	config.PresetSmallLib: func(opts Options) Strategy {
		return newPipeline(opts, true, false)
	},
}

// MissingDependencyError is returned when a preset has no registered pipeline.
type MissingDependencyError struct {
	Preset config.PresetID
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("failed to load preset %q. Ensure the build registers a pipeline for it", e.Preset)
}

// Lookup returns the Strategy for id.
func (r Registry) Lookup(id config.PresetID, opts Options) (Strategy, error) {
	factory, ok := r[id]
	if !ok || factory == nil {
		return nil, &MissingDependencyError{Preset: id}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return factory(opts), nil
}
