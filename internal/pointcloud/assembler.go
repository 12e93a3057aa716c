package pointcloud

import (
	"fmt"

	"github.com/mmr-tortoise/foilmesh/internal/model"
	"github.com/mmr-tortoise/foilmesh/internal/profile"
)

// Assemble combines the lower and upper surface sequences into one closed
// point cloud at the planar offset z.
//
// Both coordinate buffers are allocated once at their final size (2N-1 for
// N samples per surface) and filled by indexed assignment. The assembler
// never grows a slice incrementally or concatenates partial sequences;
// a single allocation-and-fill of the final container is the performance
// contract this package exists to keep.
//
// Ordering: lower surface from trailing edge to leading edge, then upper
// surface from leading edge back to the trailing edge. The leading-edge
// sample is shared between the surfaces and written only once. The first
// and last point are both the trailing edge; they coincide and close the
// contour.
func Assemble(s *profile.Surfaces, z float64) (*model.PointCloud, error) {
	n := len(s.X)
	if n < 3 || len(s.Lower) != n || len(s.Upper) != n {
		return nil, fmt.Errorf("assemble point cloud: surfaces must hold at least 3 samples of equal length, got x=%d lower=%d upper=%d",
			n, len(s.Lower), len(s.Upper))
	}

	total := 2*n - 1
	cloud := &model.PointCloud{
		X: make([]float64, total),
		Y: make([]float64, total),
		Z: z,
	}

	// Lower surface, reversed: trailing edge (x=chord) down to the leading
	// edge (x=0).
	for i := 0; i < n; i++ {
		cloud.X[i] = s.X[n-1-i]
		cloud.Y[i] = s.Lower[n-1-i]
	}

	// Upper surface, ascending, skipping index 0: the leading-edge sample
	// is already in place at cloud index n-1.
	for i := 1; i < n; i++ {
		cloud.X[n-1+i] = s.X[i]
		cloud.Y[n-1+i] = s.Upper[i]
	}

	if err := checkConsecutive(cloud); err != nil {
		return nil, err
	}
	return cloud, nil
}

// checkConsecutive enforces the ordering invariant: no two consecutive
// points may be numerically identical. The deliberate closure point (last
// vs first) is not a consecutive pair and is therefore exempt.
func checkConsecutive(c *model.PointCloud) error {
	for i := 1; i < c.Len(); i++ {
		if c.X[i] == c.X[i-1] && c.Y[i] == c.Y[i-1] {
			return fmt.Errorf("assemble point cloud: duplicate consecutive point at index %d (%g, %g)",
				i, c.X[i], c.Y[i])
		}
	}
	return nil
}
