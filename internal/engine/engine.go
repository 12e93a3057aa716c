package engine

import (
	"context"

	"github.com/mmr-tortoise/foilmesh/internal/msh"
)

// Opaque entity handles assigned by the engine during registration.
// Tags are valid only within the session that produced them and are never
// reused across sessions.
type (
	// PointTag identifies a registered geometry point.
	PointTag int

	// CurveTag identifies a registered boundary curve.
	CurveTag int

	// LoopTag identifies a closed curve loop.
	LoopTag int

	// SurfaceTag identifies a plane surface bounded by a loop.
	SurfaceTag int
)

// GenerateOptions controls the 2D mesh generation call.
type GenerateOptions struct {
	// Recombine asks the engine to recombine triangles into quadrilaterals
	// where possible. Off by default: the standard policy is a pure
	// triangle mesh.
	Recombine bool
}

// Engine is the capability surface the pipeline requires from a geometry
// and meshing engine. Registration calls mutate the session state; the
// counter and extent accessors after Generate are constant-time reads of
// aggregates the engine already holds, never full data exports.
type Engine interface {
	// AddPoint registers a geometry point with a characteristic mesh
	// length and returns its tag.
	AddPoint(x, y, z, lc float64) (PointTag, error)

	// AddLine registers a straight boundary curve between two points.
	AddLine(a, b PointTag) (CurveTag, error)

	// AddCurveLoop closes an ordered curve sequence into a loop. The
	// curves must form a single closed chain; anything else is a
	// non-manifold boundary and is rejected.
	AddCurveLoop(curves []CurveTag) (LoopTag, error)

	// AddPlaneSurface registers the plane surface bounded by a loop,
	// making it available for 2D meshing.
	AddPlaneSurface(loop LoopTag) (SurfaceTag, error)

	// Synchronize flushes pending registrations into the engine's model.
	Synchronize() error

	// SetCoherenceCheck toggles the engine's automatic duplicate-entity
	// detection during registration and returns the previous setting, so
	// callers can restore it in a scoped manner. The check is redundant
	// work when the caller has already guaranteed point uniqueness.
	SetCoherenceCheck(enabled bool) (previous bool)

	// Generate runs 2D mesh generation over the registered geometry.
	// This is the single long-blocking call of a session; it honors
	// context cancellation only by aborting the whole operation, as the
	// engine exposes no mid-operation cancellation hook.
	Generate(ctx context.Context, opts GenerateOptions) error

	// NodeCount returns the generated mesh's node count. O(1); zero
	// before Generate succeeds.
	NodeCount() int

	// ElementCount returns the number of generated cells of one type.
	// O(1); zero before Generate succeeds.
	ElementCount(t msh.ElementType) int

	// Extent returns the per-axis min and max over all mesh nodes.
	Extent() (min, max [3]float64)

	// Write persists the generated mesh to path in the given encoding.
	Write(ctx context.Context, path string, format msh.Format) error

	// Close releases all session state. The session must not be used
	// afterwards.
	Close() error
}
