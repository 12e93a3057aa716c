// Package cli implements the cobra-based CLI commands for foilmesh.
//
// Each subcommand (generate, points, inspect) is defined in its own file
// within this package. This file defines the root command, the global
// flags, and the Execute entry point that translates errors into process
// exit codes.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/foilmesh/internal/config"
	"github.com/mmr-tortoise/foilmesh/internal/logger"
	"github.com/mmr-tortoise/foilmesh/internal/model"
)

// Global flag variables shared across all subcommands. They are bound to
// persistent flags on the root command, which makes them available to
// every subcommand automatically.
var (
	// jsonOutput switches command output to structured JSON for machine
	// consumption; the default is human-readable text.
	jsonOutput bool

	// verbose raises the console log level to debug.
	verbose bool

	// configPath is an explicit configuration file; empty means discover
	// foilmesh.yaml / foilmesh.jsonc in the working directory.
	configPath string
)

// Version, Commit, and Date are injected from the main package, which
// receives them from ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command. The root
// itself performs no action; functionality lives in the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "foilmesh",
		Short: "2D mesh generator for parametric airfoil profiles",
		Long: `foilmesh generates 2D unstructured meshes around NACA 4-digit airfoil
profiles for downstream numerical simulation.

The airfoil contour is evaluated analytically, registered with the gmsh
meshing engine, and meshed with triangles (optionally recombined into
quads). Mesh artifacts are written in the MSH 2.2 format, as text or as
the compact binary flavor depending on mesh size.`,

		// Errors are formatted by Execute, not by cobra, for consistent
		// text/JSON output handling.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: discover foilmesh.yaml/.jsonc)")

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewPointsCommand())
	rootCmd.AddCommand(NewInspectCommand())

	return rootCmd
}

// Execute runs the root command under an interrupt-aware context and
// handles exit codes: 0 on success, 130 when the user interrupted the
// run, 1 on any other failure.
//
// An interrupt can only abort the in-flight engine operation as a whole;
// there is no mid-mesh cancellation hook, so no partial mesh state
// survives past whatever the engine's own teardown provides.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	logger.Sync()
	if err == nil {
		return
	}

	if errors.Is(err, context.Canceled) {
		printError("interrupted", nil)
		os.Exit(int(model.ExitInterrupted))
	}
	printError(err.Error(), nil)
	os.Exit(int(model.ExitFailure))
}

// printError outputs an error message in the format selected by --json.
// Errors go to stderr in both modes; stdout is reserved for successful
// command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// setupRun loads configuration and initializes logging for a subcommand.
// The console level follows --verbose; the optional log file comes from
// the configuration.
func setupRun() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger.Init(level, cfg.Logging.File)
	return cfg, nil
}
