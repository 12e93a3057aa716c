// Package main is the entry point for the foilmesh CLI.
//
// The binary generates 2D computational meshes around parametric airfoil
// profiles. It delegates all functionality to the internal/cli package,
// which defines the cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process and default to development placeholders.
package main

import (
	"github.com/mmr-tortoise/foilmesh/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package, keeping the
	// build system decoupled from the CLI framework.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
