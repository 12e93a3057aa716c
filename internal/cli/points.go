// Package cli — points.go implements the "foilmesh points" command, which
// runs only the evaluation and assembly stages and dumps the resulting
// point cloud as CSV. Useful for plotting a profile or feeding the
// contour into other tools without meshing anything.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/foilmesh/internal/model"
	"github.com/mmr-tortoise/foilmesh/internal/pointcloud"
	"github.com/mmr-tortoise/foilmesh/internal/profile"
)

// pointsFlags holds the flag values for the points command.
type pointsFlags struct {
	naca    string
	chord   float64
	samples int
	output  string
}

// NewPointsCommand creates the "points" cobra command.
func NewPointsCommand() *cobra.Command {
	flags := &pointsFlags{}

	cmd := &cobra.Command{
		Use:   "points",
		Short: "Evaluate the airfoil contour and print it as CSV",
		Long: `Evaluate a NACA 4-digit airfoil contour and print the closed point
cloud as "x,y,z" CSV lines, ordered lower surface trailing edge to
leading edge, then upper surface back to the trailing edge.

Examples:
  foilmesh points --naca 0012 -n 50
  foilmesh points --naca 2412 --chord 2 -o contour.csv`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPoints(flags)
		},
	}

	cmd.Flags().StringVar(&flags.naca, "naca", "0012", "4-digit NACA designation")
	cmd.Flags().Float64Var(&flags.chord, "chord", 1.0, "Chord length")
	cmd.Flags().IntVarP(&flags.samples, "samples", "n", 100, "Points per airfoil surface (min 3)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "CSV output path (default: stdout)")

	return cmd
}

// runPoints evaluates and assembles the cloud, then streams it out.
func runPoints(flags *pointsFlags) error {
	if _, err := setupRun(); err != nil {
		return err
	}

	params, err := model.ParseNACA4(flags.naca)
	if err != nil {
		return err
	}
	params.Chord = flags.chord
	params.Samples = flags.samples

	surfaces, err := profile.Evaluate(params)
	if err != nil {
		return err
	}
	cloud, err := pointcloud.Assemble(surfaces, 0)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return &model.WriteError{Path: flags.output, Err: err}
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	return writeCSV(out, cloud)
}

// writeCSV streams the cloud as "x,y,z" lines with full round-trip float
// precision. The constant z is expanded here, at the presentation edge,
// rather than stored per point upstream.
func writeCSV(w io.Writer, cloud *model.PointCloud) error {
	bw := bufio.NewWriter(w)
	z := strconv.FormatFloat(cloud.Z, 'g', -1, 64)
	for i := 0; i < cloud.Len(); i++ {
		fmt.Fprintf(bw, "%s,%s,%s\n",
			strconv.FormatFloat(cloud.X[i], 'g', -1, 64),
			strconv.FormatFloat(cloud.Y[i], 'g', -1, 64),
			z)
	}
	return bw.Flush()
}
