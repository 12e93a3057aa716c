package config

// Config holds all foilmesh settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh" json:"mesh"`
	Engine  EngineConfig  `yaml:"engine" json:"engine"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// MeshConfig holds mesh sizing and output encoding settings.
type MeshConfig struct {
	// CharacteristicLength is the target mesh size at each boundary
	// point. Zero scales the default with the chord length.
	CharacteristicLength float64 `yaml:"characteristic_length" json:"characteristicLength"`

	// BinaryThreshold is the node count at which auto encoding switches
	// from the text to the binary artifact format.
	BinaryThreshold int `yaml:"binary_threshold" json:"binaryThreshold"`

	// Recombine enables triangle-to-quad recombination by default.
	Recombine bool `yaml:"recombine" json:"recombine"`
}

// EngineConfig holds settings for the external meshing engine.
type EngineConfig struct {
	// GmshPath is the explicit gmsh executable location. Empty means
	// auto-detection (FOILMESH_GMSH, then PATH).
	GmshPath string `yaml:"gmsh_path" json:"gmshPath"`

	// Verbosity is gmsh's console verbosity level.
	Verbosity int `yaml:"verbosity" json:"verbosity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Default returns a Config with the settings the CLI uses when no
// configuration file is present.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			CharacteristicLength: 0,
			BinaryThreshold:      10000,
		},
		Engine: EngineConfig{
			Verbosity: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
