// Package expand turns path specs into the concrete set of files to measure.
package expand

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"mocsize/pkg/ignore"
)

// EmptyMatchError is returned when no file survives expansion.
type EmptyMatchError struct {
	Specs []string
}

func (e *EmptyMatchError) Error() string {
	return fmt.Sprintf("no files matched %s. Build first or adjust your path/glob", strings.Join(e.Specs, ", "))
}

// Expand resolves every spec against workDir and returns the sorted, de-duplicated absolute
// paths of the matched files. A directory spec matches every file below it, an existing file
// matches itself, and anything else is treated as a glob. Excluded paths never match, and
// dot-prefixed names are only matched when named explicitly.
func Expand(specs []string, workDir string, matcher ignore.Matcher, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Starting path expansion", zap.Strings("specs", specs), zap.String("workDir", workDir))

	seen := make(map[string]struct{})
	add := func(path string) {
		if matcher.MatchesPath(path) {
			logger.Debug("Skipping excluded file", zap.String("file", path))
			return
		}
		seen[path] = struct{}{}
	}

	for _, spec := range specs {
		abs := spec
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, spec)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		switch {
		case err == nil && info.IsDir():
			files, err := walkDir(abs, matcher, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to traverse %s: %w", abs, err)
			}
			for _, f := range files {
				add(f)
			}
		case err == nil:
			add(abs)
		default:
			files, err := glob(abs)
			if err != nil {
				return nil, fmt.Errorf("invalid path spec %q: %w", spec, err)
			}
			for _, f := range files {
				add(f)
			}
		}
	}

	if len(seen) == 0 {
		return nil, &EmptyMatchError{Specs: specs}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)

	logger.Debug("Completed path expansion", zap.Int("files", len(files)))
	return files, nil
}

// walkDir collects every file under root, skipping excluded and hidden directories entirely.
// Symlinked directories are followed like real ones, so a directory spec matches the same
// files as its "<dir>/**/*" glob. A link back to a directory on the current path is not
// entered again.
func walkDir(root string, matcher ignore.Matcher, logger *zap.Logger) ([]string, error) {
	var files []string

	var walk func(dir string, ancestors map[string]struct{}) error
	walk = func(dir string, ancestors map[string]struct{}) error {
		target, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return err
		}
		if _, ok := ancestors[target]; ok {
			logger.Debug("Skipping symlink cycle", zap.String("directory", dir), zap.String("target", target))
			return nil
		}
		chain := make(map[string]struct{}, len(ancestors)+1)
		for a := range ancestors {
			chain[a] = struct{}{}
		}
		chain[target] = struct{}{}

		// WalkDir does not descend through a symlinked root, so walk the target and
		// report paths under dir.
		return filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == target {
				return nil
			}
			rel, err := filepath.Rel(target, path)
			if err != nil {
				return err
			}
			logical := filepath.Join(dir, rel)

			if isHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			switch {
			case d.IsDir():
				if matcher.MatchesDir(logical) {
					logger.Debug("Skipping excluded directory", zap.String("directory", logical))
					return filepath.SkipDir
				}
			case d.Type().IsRegular():
				files = append(files, logical)
			case d.Type()&fs.ModeSymlink != 0:
				info, err := os.Stat(path)
				if err != nil {
					logger.Debug("Skipping dangling symlink", zap.String("file", logical))
					return nil
				}
				if info.IsDir() {
					if matcher.MatchesDir(logical) {
						logger.Debug("Skipping excluded directory", zap.String("directory", logical))
						return nil
					}
					return walk(logical, chain)
				}
				if info.Mode().IsRegular() {
					files = append(files, logical)
				}
			}
			return nil
		})
	}

	err := walk(root, nil)
	return files, err
}

// glob expands a pattern with '**' support, matching files only. Wildcards never match
// dot-prefixed names; a dot-prefixed name in the pattern itself still matches.
func glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	out := matches[:0]
	for _, m := range matches {
		if !hiddenByWildcard(pattern, m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// hiddenByWildcard reports whether match has a dot-prefixed segment that no dot-prefixed
// segment of pattern names explicitly.
func hiddenByWildcard(pattern, match string) bool {
	var explicit []string
	for _, seg := range strings.Split(filepath.ToSlash(pattern), "/") {
		if isHidden(seg) {
			explicit = append(explicit, seg)
		}
	}
	for _, seg := range strings.Split(filepath.ToSlash(match), "/") {
		if !isHidden(seg) {
			continue
		}
		named := false
		for _, p := range explicit {
			if ok, _ := doublestar.Match(p, seg); ok {
				named = true
				break
			}
		}
		if !named {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
