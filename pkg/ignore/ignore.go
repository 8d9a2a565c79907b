// Package ignore matches paths against gitignore-style exclusion patterns.
package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FileName is the per-project ignore file read from the working directory.
const FileName = ".sizeignore"

// DefaultPatterns are always excluded from measurement: source maps and vendored dependencies.
var DefaultPatterns = []string{
	"*.map",
	"node_modules/",
}

// Matcher reports whether a path is excluded.
type Matcher interface {
	MatchesPath(path string) bool
	MatchesDir(path string) bool
}

// IgnorePattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type IgnorePattern struct {
	Pattern *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Indicates if the pattern is a negation (starts with '!').
	Line    string         // Original pattern line.
	Source  string         // File the pattern came from, empty for inline patterns.
}

// SizeIgnore is an ordered collection of ignore patterns evaluated relative to Root.
// The last matching pattern decides.
type SizeIgnore struct {
	Root     string
	Patterns []*IgnorePattern
	logger   *zap.Logger
}

// New returns a SizeIgnore holding DefaultPatterns.
func New(root string, logger *zap.Logger) *SizeIgnore {
	if logger == nil {
		logger = zap.NewNop()
	}
	si := &SizeIgnore{Root: root, logger: logger}
	si.CompileIgnoreLines(DefaultPatterns...)
	return si
}

// LoadIgnoreFiles builds a matcher for root from the defaults, the global ignore file,
// the local ignore file and any inline patterns, in that order.
// Missing files are skipped.
func LoadIgnoreFiles(root, localPath, globalPath string, extra []string, logger *zap.Logger) (*SizeIgnore, error) {
	si := New(root, logger)

	for _, path := range []string{globalPath, localPath} {
		if path == "" {
			continue
		}
		if err := si.CompileIgnoreFile(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	si.CompileIgnoreLines(extra...)
	si.logger.Debug("Finished loading ignore patterns", zap.Int("totalPatterns", len(si.Patterns)))
	return si, nil
}

// CompileIgnoreLines compiles pattern lines given inline.
func (si *SizeIgnore) CompileIgnoreLines(lines ...string) {
	si.compile("", lines)
}

// CompileIgnoreFile reads an ignore file and compiles its lines.
func (si *SizeIgnore) CompileIgnoreFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			si.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
		} else {
			si.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		}
		return err
	}

	lines := strings.Split(string(content), "\n")
	si.compile(path, lines)
	si.logger.Debug("Compiled ignore file", zap.String("filePath", path), zap.Int("lineCount", len(lines)))
	return nil
}

func (si *SizeIgnore) compile(source string, lines []string) {
	for _, line := range lines {
		pattern, negate := parsePatternLine(line)
		if pattern == nil {
			continue
		}
		si.Patterns = append(si.Patterns, &IgnorePattern{
			Pattern: pattern,
			Negate:  negate,
			Line:    strings.TrimSpace(line),
			Source:  source,
		})
	}
}

// MatchesPath reports whether the file at path is excluded.
func (si *SizeIgnore) MatchesPath(path string) bool {
	matches, _ := si.MatchesPathWithPattern(si.relative(path))
	return matches
}

// MatchesDir reports whether the directory at path is excluded, along with everything below it.
func (si *SizeIgnore) MatchesDir(path string) bool {
	rel := si.relative(path)
	if rel == "." {
		return false
	}
	matches, _ := si.MatchesPathWithPattern(rel + "/")
	return matches
}

// MatchesPathWithPattern checks a root-relative, slash-separated path and returns
// the deciding pattern if any.
func (si *SizeIgnore) MatchesPathWithPattern(path string) (bool, *IgnorePattern) {
	var matchedPattern *IgnorePattern
	matches := false

	for _, pattern := range si.Patterns {
		if pattern.Pattern.MatchString(path) {
			matchedPattern = pattern
			matches = !pattern.Negate
		}
	}

	if matchedPattern != nil {
		si.logger.Debug("Path matches pattern",
			zap.String("path", path),
			zap.String("pattern", matchedPattern.Line),
			zap.Bool("excluded", matches))
	}
	return matches, matchedPattern
}

// relative converts path to the slash-separated form patterns are evaluated against.
func (si *SizeIgnore) relative(path string) string {
	if filepath.IsAbs(path) && si.Root != "" {
		if rel, err := filepath.Rel(si.Root, path); err == nil {
			path = rel
		}
	}
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}
