package engine

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/mmr-tortoise/foilmesh/internal/msh"
)

// duplicateTolerance is the distance below which the Fake's coherence
// check treats two registered points as the same entity, mirroring the
// real engine's geometric tolerance.
const duplicateTolerance = 1e-12

// Fake is an in-memory Engine used by tests. It implements the full
// capability surface deterministically: registration with an optional
// coherence (duplicate-point) check, a trivial centroid-fan
// "mesh generation" over the registered loop, O(1) aggregate counters,
// and artifact writing through the msh codec.
//
// The fan produces one interior node at the loop centroid and one
// triangle per boundary curve. That is nowhere near a real unstructured
// mesh, but it exercises every pipeline contract: counts, extents,
// encodings and the state machine, with bit-for-bit reproducible output.
type Fake struct {
	// FailGenerate forces Generate to report a meshing failure, for
	// exercising the pipeline's error path.
	FailGenerate bool

	points    []msh.Node
	curves    [][2]PointTag
	loops     map[LoopTag][]CurveTag
	surfaces  []LoopTag
	coherence bool

	// AddPointCalls counts registration calls, letting tests assert that
	// validation failures never reach the engine.
	AddPointCalls int

	generated bool
	mesh      *msh.Mesh
	summary   msh.Summary
}

var _ Engine = (*Fake)(nil)

// NewFake creates an empty fake session with coherence checking enabled,
// matching the real engine's default.
func NewFake() *Fake {
	return &Fake{
		coherence: true,
		loops:     make(map[LoopTag][]CurveTag),
	}
}

// AddPoint registers a point. With coherence checking enabled, a point
// within tolerance of an existing one is rejected the way the real
// engine's duplicate detection would.
func (f *Fake) AddPoint(x, y, z, lc float64) (PointTag, error) {
	f.AddPointCalls++
	if lc <= 0 {
		return 0, fmt.Errorf("characteristic length must be positive, got %g", lc)
	}
	if f.coherence {
		for _, p := range f.points {
			if math.Hypot(p.X-x, p.Y-y) <= duplicateTolerance && math.Abs(p.Z-z) <= duplicateTolerance {
				return 0, fmt.Errorf("duplicate point within tolerance of point %d", p.Tag)
			}
		}
	}
	tag := len(f.points) + 1
	f.points = append(f.points, msh.Node{Tag: tag, X: x, Y: y, Z: z})
	return PointTag(tag), nil
}

// AddLine registers a curve between two existing points.
func (f *Fake) AddLine(a, b PointTag) (CurveTag, error) {
	if !f.validPoint(a) || !f.validPoint(b) {
		return 0, fmt.Errorf("unknown point tag in line (%d, %d)", a, b)
	}
	if a == b {
		return 0, fmt.Errorf("degenerate line: both endpoints are point %d", a)
	}
	f.curves = append(f.curves, [2]PointTag{a, b})
	return CurveTag(len(f.curves)), nil
}

// AddCurveLoop verifies the curves form one closed chain and registers
// the loop. A broken chain is a non-manifold boundary and is rejected.
func (f *Fake) AddCurveLoop(curves []CurveTag) (LoopTag, error) {
	if len(curves) < 3 {
		return 0, fmt.Errorf("curve loop needs at least 3 curves, got %d", len(curves))
	}
	for i, c := range curves {
		if int(c) < 1 || int(c) > len(f.curves) {
			return 0, fmt.Errorf("unknown curve tag %d", c)
		}
		cur := f.curves[c-1]
		next := f.curves[curves[(i+1)%len(curves)]-1]
		if cur[1] != next[0] {
			return 0, fmt.Errorf("non-manifold boundary: curve %d ends at point %d but curve %d starts at point %d",
				c, cur[1], curves[(i+1)%len(curves)], next[0])
		}
	}
	tag := LoopTag(len(f.loops) + 1)
	f.loops[tag] = append([]CurveTag(nil), curves...)
	return tag, nil
}

// AddPlaneSurface registers a surface over an existing loop.
func (f *Fake) AddPlaneSurface(loop LoopTag) (SurfaceTag, error) {
	if _, ok := f.loops[loop]; !ok {
		return 0, fmt.Errorf("unknown loop tag %d", loop)
	}
	f.surfaces = append(f.surfaces, loop)
	return SurfaceTag(len(f.surfaces)), nil
}

// Synchronize is a no-op for the in-memory model.
func (f *Fake) Synchronize() error {
	return nil
}

// SetCoherenceCheck toggles duplicate-point detection and returns the
// previous setting.
func (f *Fake) SetCoherenceCheck(enabled bool) bool {
	previous := f.coherence
	f.coherence = enabled
	return previous
}

// CoherenceCheck reports the current duplicate-detection setting. Tests
// use it to verify the scoped toggle discipline.
func (f *Fake) CoherenceCheck() bool {
	return f.coherence
}

// Generate builds the deterministic centroid fan over the first
// registered surface's loop.
func (f *Fake) Generate(ctx context.Context, opts GenerateOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.FailGenerate {
		return fmt.Errorf("meshing did not converge")
	}
	if len(f.surfaces) == 0 {
		return fmt.Errorf("no plane surface registered")
	}

	boundary := f.loopPoints(f.surfaces[0])
	n := len(boundary)
	if n < 3 {
		return fmt.Errorf("degenerate loop with %d points", n)
	}

	mesh := &msh.Mesh{
		Nodes:    make([]msh.Node, 0, n+1),
		Elements: make([]msh.Element, 0, n),
	}

	var cx, cy, cz float64
	for i, pt := range boundary {
		node := f.points[pt-1]
		mesh.Nodes = append(mesh.Nodes, msh.Node{Tag: i + 1, X: node.X, Y: node.Y, Z: node.Z})
		cx += node.X
		cy += node.Y
		cz += node.Z
	}
	center := n + 1
	mesh.Nodes = append(mesh.Nodes, msh.Node{
		Tag: center,
		X:   cx / float64(n),
		Y:   cy / float64(n),
		Z:   cz / float64(n),
	})

	for i := 0; i < n; i++ {
		mesh.Elements = append(mesh.Elements, msh.Element{
			Tag:   i + 1,
			Type:  msh.ElementTriangle,
			Tags:  []int{0, 1},
			Nodes: []int{i + 1, (i+1)%n + 1, center},
		})
	}

	f.mesh = mesh
	f.summary = msh.Summarize(mesh)
	f.generated = true
	return nil
}

// NodeCount returns the generated node count in constant time.
func (f *Fake) NodeCount() int {
	return f.summary.Nodes
}

// ElementCount returns the generated cell count for one type in constant
// time.
func (f *Fake) ElementCount(t msh.ElementType) int {
	switch t {
	case msh.ElementTriangle:
		return f.summary.Triangles
	case msh.ElementQuad:
		return f.summary.Quads
	case msh.ElementLine:
		return f.summary.Lines
	case msh.ElementPoint:
		return f.summary.Points
	default:
		return 0
	}
}

// Extent returns the generated node coordinate extents.
func (f *Fake) Extent() (min, max [3]float64) {
	return f.summary.Min, f.summary.Max
}

// Write encodes the generated mesh to path through the msh codec.
func (f *Fake) Write(ctx context.Context, path string, format msh.Format) error {
	if !f.generated {
		return fmt.Errorf("no mesh generated yet")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := msh.Encode(f.mesh, out, format); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Close discards all session state.
func (f *Fake) Close() error {
	f.points = nil
	f.curves = nil
	f.loops = nil
	f.surfaces = nil
	f.mesh = nil
	return nil
}

// Mesh exposes the generated mesh for test assertions.
func (f *Fake) Mesh() *msh.Mesh {
	return f.mesh
}

// loopPoints flattens a loop's curves into the ordered boundary point
// sequence (each curve contributes its start point).
func (f *Fake) loopPoints(loop LoopTag) []PointTag {
	curves := f.loops[loop]
	pts := make([]PointTag, 0, len(curves))
	for _, c := range curves {
		pts = append(pts, f.curves[c-1][0])
	}
	return pts
}

// validPoint reports whether the tag was issued by this session.
func (f *Fake) validPoint(p PointTag) bool {
	return int(p) >= 1 && int(p) <= len(f.points)
}
