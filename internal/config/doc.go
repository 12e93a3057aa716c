// Package config handles foilmesh configuration loading.
//
// Configuration is optional: every setting has a default that matches the
// CLI's flag defaults. A project can pin its meshing settings in a
// foilmesh.yaml (or foilmesh.jsonc, for teams that prefer commented JSON)
// in the working directory, and individual flags still override the file.
package config
