// Package cli — generate.go implements the "foilmesh generate" command,
// the primary user-facing operation: evaluate the airfoil, register it
// with the engine, mesh it, and report statistics.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mmr-tortoise/foilmesh/internal/config"
	"github.com/mmr-tortoise/foilmesh/internal/engine"
	"github.com/mmr-tortoise/foilmesh/internal/logger"
	"github.com/mmr-tortoise/foilmesh/internal/model"
	"github.com/mmr-tortoise/foilmesh/internal/pipeline"
)

// generateFlags holds the flag values for the generate command.
type generateFlags struct {
	naca      string  // --naca: 4-digit designation
	chord     float64 // --chord: chord length
	thickness float64 // --thickness: override the designation's thickness
	camber    float64 // --camber: override the designation's camber
	camberPos float64 // --camber-pos: override the camber position
	samples   int     // --samples: points per surface
	output    string  // --output: mesh artifact path
	format    string  // --format: auto|text|binary
	lc        float64 // --lc: characteristic mesh length
	recombine bool    // --recombine: recombine triangles into quads
}

// NewGenerateCommand creates the "generate" cobra command.
func NewGenerateCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a 2D mesh around an airfoil profile",
		Long: `Generate a 2D unstructured mesh around a NACA 4-digit airfoil.

The profile is taken from the --naca designation; individual parameters
can be overridden with --thickness, --camber and --camber-pos. Without
--output the mesh is generated in the engine session only and discarded.

Examples:
  foilmesh generate --naca 0012 --samples 200 --output airfoil.msh
  foilmesh generate --naca 2412 --chord 0.5 -o wing.msh --format binary
  foilmesh generate -n 1000 --recombine -o quads.msh`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.naca, "naca", "0012", "4-digit NACA designation")
	cmd.Flags().Float64Var(&flags.chord, "chord", 1.0, "Chord length")
	cmd.Flags().Float64Var(&flags.thickness, "thickness", 0, "Max thickness ratio (overrides --naca)")
	cmd.Flags().Float64Var(&flags.camber, "camber", 0, "Max camber ratio (overrides --naca)")
	cmd.Flags().Float64Var(&flags.camberPos, "camber-pos", 0, "Chordwise position of max camber (overrides --naca)")
	cmd.Flags().IntVarP(&flags.samples, "samples", "n", 100, "Points per airfoil surface (min 3)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Mesh artifact path (omit to skip writing)")
	cmd.Flags().StringVar(&flags.format, "format", pipeline.EncodingAuto, "Artifact encoding: auto, text or binary")
	cmd.Flags().Float64Var(&flags.lc, "lc", 0, "Characteristic mesh length (default: 0.1 x chord)")
	cmd.Flags().BoolVar(&flags.recombine, "recombine", false, "Recombine triangles into quadrilaterals")

	return cmd
}

// runGenerate assembles the pipeline inputs from flags and configuration
// and executes one run against a fresh engine session.
func runGenerate(cmd *cobra.Command, flags *generateFlags) error {
	cfg, err := setupRun()
	if err != nil {
		return err
	}

	params, err := buildParams(cmd, flags)
	if err != nil {
		return err
	}
	logger.Debug("airfoil parameters resolved",
		zap.String("naca", flags.naca),
		zap.Float64("chord", params.Chord),
		zap.Float64("thickness", params.Thickness),
		zap.Int("samples", params.Samples))

	// The engine session is created here and owned by this call for its
	// entire duration; nothing heavy happens until Generate runs.
	eng := engine.NewGmsh(engine.GmshConfig{
		Path:      cfg.Engine.GmshPath,
		Verbosity: cfg.Engine.Verbosity,
	})
	defer func() { _ = eng.Close() }()

	orch := pipeline.New(eng, pipelineOptions(cmd, flags, cfg))

	// The spinner is pure presentation: it runs on its own goroutine,
	// never touches engine state, and is told to stop over a channel.
	spin := startSpinner(os.Stderr, "Generating mesh")
	result, err := orch.Run(cmd.Context(), params)
	spin.Stop()
	if err != nil {
		return err
	}

	if result.OutputPath == "" {
		logger.Warn("no output path given; mesh was generated but not saved (use --output)")
	}
	printGenerateResult(flags.naca, params, result)
	return nil
}

// buildParams derives the airfoil parameters from the NACA designation
// and applies explicit flag overrides on top.
func buildParams(cmd *cobra.Command, flags *generateFlags) (model.AirfoilParams, error) {
	params, err := model.ParseNACA4(flags.naca)
	if err != nil {
		return model.AirfoilParams{}, err
	}
	params.Chord = flags.chord
	params.Samples = flags.samples

	// Only flags the user actually set override the designation, so
	// "--naca 2412" keeps its camber unless asked otherwise.
	if cmd.Flags().Changed("thickness") {
		params.Thickness = flags.thickness
	}
	if cmd.Flags().Changed("camber") {
		params.Camber = flags.camber
	}
	if cmd.Flags().Changed("camber-pos") {
		params.CamberPos = flags.camberPos
	}
	return params, nil
}

// pipelineOptions merges flags over configuration defaults.
func pipelineOptions(cmd *cobra.Command, flags *generateFlags, cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		CharacteristicLength: cfg.Mesh.CharacteristicLength,
		Encoding:             flags.format,
		BinaryThreshold:      cfg.Mesh.BinaryThreshold,
		Recombine:            cfg.Mesh.Recombine,
		OutputPath:           flags.output,
	}
	if cmd.Flags().Changed("lc") {
		opts.CharacteristicLength = flags.lc
	}
	if cmd.Flags().Changed("recombine") {
		opts.Recombine = flags.recombine
	}
	return opts
}

// printGenerateResult outputs the run results in text or JSON format.
func printGenerateResult(naca string, params model.AirfoilParams, result *pipeline.Result) {
	if jsonOutput {
		out := struct {
			NACA       string               `json:"naca"`
			Params     model.AirfoilParams  `json:"params"`
			Statistics model.MeshStatistics `json:"statistics"`
			OutputPath string               `json:"outputPath,omitempty"`
			Format     string               `json:"format"`
		}{naca, params, result.Statistics, result.OutputPath, result.Format.String()}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	s := result.Statistics
	fmt.Printf("Generated mesh for NACA %s (%d boundary points)\n", naca, 2*params.Samples-1)
	fmt.Printf("  Nodes:     %d\n", s.Nodes)
	fmt.Printf("  Triangles: %d\n", s.Triangles)
	fmt.Printf("  Quads:     %d\n", s.Quads)
	fmt.Printf("  Bounds:    x [%g, %g]  y [%g, %g]\n", s.Min[0], s.Max[0], s.Min[1], s.Max[1])
	if result.OutputPath != "" {
		fmt.Printf("  Output:    %s (%s)\n", result.OutputPath, result.Format)
	}
}
