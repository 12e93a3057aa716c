package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// discoveryNames are the configuration file names probed in the working
// directory, in priority order.
var discoveryNames = []string{
	"foilmesh.yaml",
	"foilmesh.yml",
	"foilmesh.jsonc",
	"foilmesh.json",
}

// Load reads a configuration file on top of the defaults. The format is
// chosen by extension: .yaml/.yml parse as YAML, .json/.jsonc have
// comments and trailing commas stripped (JSONC) before JSON parsing, the
// same way editor config files are handled.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension (want .yaml, .yml, .json or .jsonc)", path)
	}

	return cfg, nil
}

// Discover returns the first configuration file found in dir, or ok=false
// when the directory has none.
func Discover(dir string) (path string, ok bool) {
	for _, name := range discoveryNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// LoadOrDefault loads the explicit path when given, otherwise discovers a
// file in the working directory, otherwise returns the defaults. Only an
// explicitly named file that fails to load is an error; a broken
// discovered file is also an error, since silently ignoring it would be
// worse than failing.
func LoadOrDefault(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	if path, ok := Discover(cwd); ok {
		return Load(path)
	}
	return Default(), nil
}
