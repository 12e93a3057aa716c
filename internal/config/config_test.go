package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefault verifies the defaults match the CLI's flag defaults.
func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.0, cfg.Mesh.CharacteristicLength)
	assert.Equal(t, 10000, cfg.Mesh.BinaryThreshold)
	assert.False(t, cfg.Mesh.Recombine)
	assert.Empty(t, cfg.Engine.GmshPath)
	assert.Equal(t, 2, cfg.Engine.Verbosity)
	assert.Equal(t, "info", cfg.Logging.Level)
}

// TestLoad_YAML verifies YAML loading layers the file over the defaults.
func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "foilmesh.yaml", `
mesh:
  characteristic_length: 0.05
  recombine: true
engine:
  gmsh_path: /opt/gmsh/bin/gmsh
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Mesh.CharacteristicLength)
	assert.True(t, cfg.Mesh.Recombine)
	assert.Equal(t, "/opt/gmsh/bin/gmsh", cfg.Engine.GmshPath)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Settings absent from the file keep their defaults.
	assert.Equal(t, 10000, cfg.Mesh.BinaryThreshold)
	assert.Equal(t, 2, cfg.Engine.Verbosity)
}

// TestLoad_JSONC verifies comments and trailing commas are tolerated in
// .jsonc files.
func TestLoad_JSONC(t *testing.T) {
	path := writeFile(t, t.TempDir(), "foilmesh.jsonc", `{
  // sizing for the coarse preview meshes
  "mesh": {
    "binaryThreshold": 500,
  },
  "engine": {
    "verbosity": 5, // full gmsh debug output
  },
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Mesh.BinaryThreshold)
	assert.Equal(t, 5, cfg.Engine.Verbosity)
	assert.Equal(t, "info", cfg.Logging.Level, "untouched settings keep defaults")
}

// TestLoad_Errors covers unreadable, unparsable and unknown-extension
// paths.
func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "foilmesh.yaml", "mesh: [not a mapping")
	_, err = Load(bad)
	assert.Error(t, err)

	toml := writeFile(t, dir, "foilmesh.toml", "[mesh]")
	_, err = Load(toml)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported extension")
}

// TestDiscover verifies the priority order of the probed file names.
func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	_, ok := Discover(dir)
	assert.False(t, ok, "empty directory has nothing to discover")

	jsonPath := writeFile(t, dir, "foilmesh.json", "{}")
	found, ok := Discover(dir)
	require.True(t, ok)
	assert.Equal(t, jsonPath, found)

	yamlPath := writeFile(t, dir, "foilmesh.yaml", "")
	found, ok = Discover(dir)
	require.True(t, ok)
	assert.Equal(t, yamlPath, found, "yaml outranks json")
}

// TestLoadOrDefault verifies the three-way fallback: explicit path, then
// discovery, then defaults.
func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	explicit := writeFile(t, dir, "custom.yml", "mesh:\n  binary_threshold: 42\n")

	cfg, err := LoadOrDefault(explicit)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Mesh.BinaryThreshold)

	_, err = LoadOrDefault(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err, "an explicitly named missing file is an error")
}
