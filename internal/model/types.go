package model

import (
	"fmt"
	"math"
	"strconv"
)

// CloseTolerance is the distance within which the first and last point of
// a point cloud are considered the same trailing-edge point. The sharp
// trailing-edge coefficient set closes the contour analytically, so any
// residual gap is pure floating-point noise, far below this tolerance.
const CloseTolerance = 1e-9

// AirfoilParams holds the parametric description of a NACA 4-digit airfoil
// profile plus the surface sampling resolution. The value is supplied once
// per invocation and treated as immutable after Validate passes.
type AirfoilParams struct {
	// Chord is the straight-line distance from leading to trailing edge.
	// All generated coordinates are scaled by this length. Must be > 0.
	Chord float64 `json:"chord"`

	// Thickness is the maximum thickness as a fraction of the chord
	// (0.12 for a NACA 0012). Valid range is (0, 0.5].
	Thickness float64 `json:"thickness"`

	// Camber is the maximum camber as a fraction of the chord
	// (0.02 for a NACA 2412). Zero gives a symmetric profile.
	// Valid range is [0, 0.1].
	Camber float64 `json:"camber"`

	// CamberPos is the chordwise position of maximum camber as a fraction
	// of the chord (0.4 for a NACA 2412). Required to be in (0, 1) when
	// Camber > 0; ignored for symmetric profiles.
	CamberPos float64 `json:"camberPos"`

	// Samples is the number of points evaluated per surface. The closed
	// contour has 2*Samples-1 points, so 3 is the minimum that still
	// forms a closed polygon.
	Samples int `json:"samples"`
}

// Validate checks the physical and numerical validity of the parameters.
// It returns an *InvalidParameterError naming the offending field, so
// bad input is reported before any engine interaction takes place.
func (p AirfoilParams) Validate() error {
	if p.Chord <= 0 || math.IsNaN(p.Chord) || math.IsInf(p.Chord, 0) {
		return &InvalidParameterError{
			Param:  "chord",
			Value:  p.Chord,
			Reason: "must be a positive finite length",
		}
	}
	if p.Thickness <= 0 || p.Thickness > 0.5 || math.IsNaN(p.Thickness) {
		return &InvalidParameterError{
			Param:  "thickness",
			Value:  p.Thickness,
			Reason: "must be in (0, 0.5] as a fraction of the chord",
		}
	}
	if p.Camber < 0 || p.Camber > 0.1 || math.IsNaN(p.Camber) {
		return &InvalidParameterError{
			Param:  "camber",
			Value:  p.Camber,
			Reason: "must be in [0, 0.1] as a fraction of the chord",
		}
	}
	if p.Camber > 0 && (p.CamberPos <= 0 || p.CamberPos >= 1) {
		return &InvalidParameterError{
			Param:  "camber-pos",
			Value:  p.CamberPos,
			Reason: "must be in (0, 1) when camber is non-zero",
		}
	}
	if p.Samples < 3 {
		return &InvalidParameterError{
			Param:  "samples",
			Value:  p.Samples,
			Reason: "need at least 3 samples per surface to close the contour",
		}
	}
	return nil
}

// ParseNACA4 decodes a 4-digit NACA designation ("0012", "2412") into
// airfoil parameters. The first digit is the maximum camber in percent of
// chord, the second the camber position in tenths, and the last two the
// maximum thickness in percent.
//
// Chord defaults to 1 and Samples to 100; callers typically override both.
func ParseNACA4(code string) (AirfoilParams, error) {
	if len(code) != 4 {
		return AirfoilParams{}, &InvalidParameterError{
			Param:  "naca",
			Value:  code,
			Reason: "designation must be exactly 4 digits",
		}
	}
	digits := make([]int, 4)
	for i, r := range code {
		d, err := strconv.Atoi(string(r))
		if err != nil {
			return AirfoilParams{}, &InvalidParameterError{
				Param:  "naca",
				Value:  code,
				Reason: "designation must contain only digits",
			}
		}
		digits[i] = d
	}

	p := AirfoilParams{
		Chord:     1.0,
		Camber:    float64(digits[0]) / 100,
		CamberPos: float64(digits[1]) / 10,
		Thickness: float64(digits[2]*10+digits[3]) / 100,
		Samples:   100,
	}
	if p.Camber > 0 && p.CamberPos == 0 {
		return AirfoilParams{}, &InvalidParameterError{
			Param:  "naca",
			Value:  code,
			Reason: "cambered designation needs a non-zero camber position digit",
		}
	}
	return p, nil
}

// SurfacePoint is a single (x, y, z) coordinate on the airfoil contour.
// z is constant across a point cloud since the profile is planar.
type SurfacePoint struct {
	X, Y, Z float64
}

// PointCloud is the closed airfoil contour as an ordered point sequence.
//
// The layout traverses the lower surface from trailing edge to leading
// edge, then the upper surface from leading edge back to the trailing
// edge. The leading-edge point is shared between the two surfaces, so a
// cloud built from N samples per surface has exactly 2N-1 points, with
// the first and last point both at the trailing edge.
//
// Coordinates are stored as two flat float64 slices plus a single planar
// z offset. Storing z once instead of as a third per-point column keeps
// the memory footprint and copy cost down; the constant is injected when
// points are registered with the engine.
type PointCloud struct {
	X []float64
	Y []float64
	Z float64
}

// Len returns the number of points in the cloud.
func (c *PointCloud) Len() int {
	return len(c.X)
}

// At returns the i-th point with the planar z offset applied.
func (c *PointCloud) At(i int) SurfacePoint {
	return SurfacePoint{X: c.X[i], Y: c.Y[i], Z: c.Z}
}

// IsClosed reports whether the first and last point coincide within
// CloseTolerance, i.e. whether the contour wraps back onto its own
// trailing edge.
func (c *PointCloud) IsClosed() bool {
	n := c.Len()
	if n < 2 {
		return false
	}
	dx := c.X[n-1] - c.X[0]
	dy := c.Y[n-1] - c.Y[0]
	return math.Hypot(dx, dy) <= CloseTolerance
}

// MeshStatistics holds the aggregate counters and coordinate extents of a
// generated mesh. The value is computed once at the end of the pipeline
// and owned by the caller; it carries no reference to engine state.
type MeshStatistics struct {
	// Nodes is the total mesh node count.
	Nodes int `json:"nodes"`

	// Triangles is the number of 3-node triangular cells.
	Triangles int `json:"triangles"`

	// Quads is the number of 4-node quadrilateral cells. Zero under the
	// default pure-triangle meshing policy.
	Quads int `json:"quads"`

	// Min and Max are the per-axis bounding-box extremes of the mesh nodes.
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Cells returns the total number of 2D cells of any type.
func (s MeshStatistics) Cells() int {
	return s.Triangles + s.Quads
}

// String renders the statistics as a compact single line, suitable for
// plain CLI output and log messages.
func (s MeshStatistics) String() string {
	return fmt.Sprintf("%d nodes, %d triangles, %d quads, bbox [%g %g %g]..[%g %g %g]",
		s.Nodes, s.Triangles, s.Quads,
		s.Min[0], s.Min[1], s.Min[2], s.Max[0], s.Max[1], s.Max[2])
}
