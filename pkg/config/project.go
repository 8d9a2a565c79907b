// File: pkg/config/project.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ManifestKey is the key holding the size-limit entry inside package.json and TOML files.
const ManifestKey = "size-limit"

// projectFile describes one place a project entry may live.
type projectFile struct {
	name   string
	decode func([]byte) (any, error)
	keyed  bool // The entry sits under ManifestKey rather than at the document root.
}

var projectFiles = []projectFile{
	{name: "package.json", decode: decodeJSON, keyed: true},
	{name: ".size-limit.json", decode: decodeJSON},
	{name: ".size-limit.yml", decode: decodeYAML},
	{name: ".size-limit.yaml", decode: decodeYAML},
	{name: ".size-limit.toml", decode: decodeTOML},
}

// LoadProject returns the first size-limit entry found in dir, or nil when there is none.
// Files that cannot be parsed are logged and skipped.
func LoadProject(dir string, logger *zap.Logger) (*Project, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, pf := range projectFiles {
		path := filepath.Join(dir, pf.name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		doc, err := pf.decode(data)
		if err != nil {
			logger.Warn("Ignoring unreadable project config", zap.String("file", path), zap.Error(err))
			continue
		}

		value := doc
		if pf.keyed || hasManifestKey(doc) {
			m, ok := doc.(map[string]any)
			if !ok {
				continue
			}
			if value, ok = m[ManifestKey]; !ok {
				logger.Debug("Project file has no size-limit entry", zap.String("file", path))
				continue
			}
		}

		project := projectFromValue(value)
		if project == nil {
			logger.Warn("Ignoring malformed size-limit entry", zap.String("file", path))
			continue
		}
		project.Source = path
		logger.Debug("Loaded project config",
			zap.String("file", path),
			zap.Strings("paths", project.Paths),
			zap.String("preset", project.Preset),
			zap.String("limit", project.Limit))
		return project, nil
	}

	return nil, nil
}

func hasManifestKey(doc any) bool {
	m, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[ManifestKey]
	return ok
}

// projectFromValue turns an entry or a list of entries into a Project. The first entry wins.
func projectFromValue(v any) *Project {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}
	// go-toml decodes arrays of tables as []map[string]any.
	if list, ok := v.([]map[string]any); ok {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}

	entry, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	return &Project{
		Paths:       stringList(entry["path"]),
		Preset:      scalarString(entry["preset"]),
		Limit:       scalarString(entry["limit"]),
		Name:        scalarString(entry["name"]),
		Compression: scalarString(entry["compression"]),
	}
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

func decodeJSON(data []byte) (any, error) {
	var v any
	err := json.Unmarshal(data, &v)
	return v, err
}

func decodeYAML(data []byte) (any, error) {
	var v any
	err := yaml.Unmarshal(data, &v)
	return v, err
}

func decodeTOML(data []byte) (any, error) {
	var v map[string]any
	err := toml.Unmarshal(data, &v)
	return v, err
}
