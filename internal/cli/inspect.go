// Package cli — inspect.go implements the "foilmesh inspect" command,
// which decodes an existing mesh artifact and reports its statistics.
// Unlike the pipeline's extraction path, inspect has no engine session to
// query, so it pays for the full decode deliberately.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/foilmesh/internal/msh"
)

// NewInspectCommand creates the "inspect" cobra command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <mesh-file>",
		Short: "Report the statistics of an existing mesh artifact",
		Long: `Decode a MSH 2.2 artifact (text or binary) and report its node count,
cell counts and bounding box.

Examples:
  foilmesh inspect airfoil.msh
  foilmesh inspect --json wing.msh`,
		Args: cobra.ExactArgs(1),

		RunE: func(_ *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
	return cmd
}

// runInspect decodes the artifact fully and prints its summary.
func runInspect(path string) error {
	if _, err := setupRun(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	mesh, err := msh.Decode(f)
	if err != nil {
		return err
	}
	summary := msh.Summarize(mesh)

	if jsonOutput {
		out := struct {
			Path      string     `json:"path"`
			Nodes     int        `json:"nodes"`
			Triangles int        `json:"triangles"`
			Quads     int        `json:"quads"`
			Lines     int        `json:"lines"`
			Min       [3]float64 `json:"min"`
			Max       [3]float64 `json:"max"`
		}{path, summary.Nodes, summary.Triangles, summary.Quads, summary.Lines, summary.Min, summary.Max}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Mesh %s\n", path)
	fmt.Printf("  Nodes:     %d\n", summary.Nodes)
	fmt.Printf("  Triangles: %d\n", summary.Triangles)
	fmt.Printf("  Quads:     %d\n", summary.Quads)
	if summary.Lines > 0 {
		fmt.Printf("  Lines:     %d\n", summary.Lines)
	}
	fmt.Printf("  Bounds:    x [%g, %g]  y [%g, %g]\n",
		summary.Min[0], summary.Max[0], summary.Min[1], summary.Max[1])
	return nil
}
