// File: pkg/config/config.go
package config

import (
	"strings"
)

// DefaultPath is measured when neither the command line nor the project names any path.
const DefaultPath = "dist"

// PresetID names a measurement pipeline.
type PresetID string

const (
	PresetApp      PresetID = "app"
	PresetBigLib   PresetID = "big-lib"
	PresetSmallLib PresetID = "small-lib"
)

// presetAliases maps accepted spellings to a preset.
var presetAliases = map[string]PresetID{
	"app":       PresetApp,
	"big":       PresetBigLib,
	"big-lib":   PresetBigLib,
	"small":     PresetSmallLib,
	"small-lib": PresetSmallLib,
}

// ParsePreset resolves a preset name case-insensitively.
// Unknown or empty names fall back to PresetSmallLib.
func ParsePreset(name string) PresetID {
	if id, ok := presetAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return id
	}
	return PresetSmallLib
}

// Presets lists every preset in display order.
func Presets() []PresetID {
	return []PresetID{PresetApp, PresetBigLib, PresetSmallLib}
}

// Compression selects how minified output is compressed before it is counted.
type Compression string

const (
	CompressionBrotli Compression = "brotli"
	CompressionGzip   Compression = "gzip"
	CompressionNone   Compression = "none"
)

// ParseCompression resolves a compression name. Unknown names fall back to brotli.
func ParseCompression(name string) Compression {
	switch Compression(strings.ToLower(strings.TrimSpace(name))) {
	case CompressionGzip:
		return CompressionGzip
	case CompressionNone:
		return CompressionNone
	default:
		return CompressionBrotli
	}
}

// Overrides holds the values given on the command line. Empty fields are unset.
type Overrides struct {
	Paths       []string // Positional path specs.
	Preset      string   // --preset
	Limit       string   // --limit
	Compression string   // --compression
	Ignore      []string // --ignore
}

// Project is the first size-limit entry found in the project configuration.
type Project struct {
	Source      string   // File the entry was read from.
	Paths       []string // "path", string or list.
	Preset      string   // "preset"
	Limit       string   // "limit", numbers are kept in their string form.
	Name        string   // "name"
	Compression string   // "compression"
}

// Config is the effective configuration for one invocation. It is built once and never mutated.
type Config struct {
	WorkDir          string      // Directory path specs are resolved against.
	Paths            []string    // Path specs to expand.
	Preset           PresetID    // Measurement pipeline.
	Limit            Limit       // Optional threshold.
	Compression      Compression // Compression applied before counting.
	Name             string      // Label used in the report.
	Ignore           []string    // Extra exclusion patterns.
	GlobalIgnoreFile string      // Optional global ignore file.
}

// Resolve merges command-line values over the project entry over the defaults.
// Each field comes from exactly one source.
func Resolve(cli Overrides, project *Project, workDir string) Config {
	if project == nil {
		project = &Project{}
	}

	paths := cli.Paths
	if len(paths) == 0 {
		paths = project.Paths
	}
	if len(paths) == 0 {
		paths = []string{DefaultPath}
	}

	name := project.Name
	if name == "" {
		name = strings.Join(paths, ", ")
	}

	return Config{
		WorkDir:     workDir,
		Paths:       append([]string(nil), paths...),
		Preset:      ParsePreset(firstNonEmpty(cli.Preset, project.Preset)),
		Limit:       ParseLimit(firstNonEmpty(cli.Limit, project.Limit)),
		Compression: ParseCompression(firstNonEmpty(cli.Compression, project.Compression)),
		Name:        name,
		Ignore:      append([]string(nil), cli.Ignore...),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
