package geometry

import (
	"math"

	"github.com/mmr-tortoise/foilmesh/internal/engine"
	"github.com/mmr-tortoise/foilmesh/internal/model"
)

// Build registers every element of the cloud with the engine and closes
// the contour into a meshable plane surface, returning its tag.
//
// The assembler guarantees point uniqueness (interior points never repeat;
// only the wrap point coincides with the first point), so the engine's
// automatic coherence check is pure redundant work during registration.
// Build disables it for the registration phase and restores the previous
// setting on every exit path, including failures. The throughput gain is
// measurable at high sample counts because the coherence check is
// quadratic in registered points.
//
// When the cloud's last point coincides with its first (the closed
// trailing edge), it is not registered twice; the final curve wraps back
// to the first point's tag instead, which is what keeps the loop manifold.
//
// lc is the engine's characteristic mesh length at each registered point.
// Any engine rejection is returned as a *model.RegistrationError naming
// the registration call that failed.
func Build(eng engine.Engine, cloud *model.PointCloud, lc float64) (engine.SurfaceTag, error) {
	unique := cloud.Len()
	if cloud.IsClosed() {
		unique--
	}

	previous := eng.SetCoherenceCheck(false)
	defer eng.SetCoherenceCheck(previous)

	points := make([]engine.PointTag, unique)
	for i := 0; i < unique; i++ {
		tag, err := eng.AddPoint(cloud.X[i], cloud.Y[i], cloud.Z, lc)
		if err != nil {
			return 0, &model.RegistrationError{Op: "point", Err: err}
		}
		points[i] = tag
	}

	curves := make([]engine.CurveTag, unique)
	for i := 0; i < unique; i++ {
		tag, err := eng.AddLine(points[i], points[(i+1)%unique])
		if err != nil {
			return 0, &model.RegistrationError{Op: "curve", Err: err}
		}
		curves[i] = tag
	}

	loop, err := eng.AddCurveLoop(curves)
	if err != nil {
		return 0, &model.RegistrationError{Op: "loop", Err: err}
	}

	surface, err := eng.AddPlaneSurface(loop)
	if err != nil {
		return 0, &model.RegistrationError{Op: "surface", Err: err}
	}

	if err := eng.Synchronize(); err != nil {
		return 0, &model.RegistrationError{Op: "synchronize", Err: err}
	}
	return surface, nil
}

// DefaultCharacteristicLength scales the default mesh sizing with the
// chord so meshes keep a comparable cell count across chord lengths.
// The 0.1 factor matches the sizing the tool has always used at unit
// chord.
func DefaultCharacteristicLength(chord float64) float64 {
	if chord <= 0 || math.IsNaN(chord) {
		return 0.1
	}
	return 0.1 * chord
}
