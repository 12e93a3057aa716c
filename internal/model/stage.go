package model

// Stage identifies the pipeline's position in its linear state machine:
//
//	Uninitialized → ParametersValidated → PointCloudReady →
//	GeometryRegistered → MeshGenerated → StatisticsComputed
//
// There are no cycles and no re-entrant transitions. Any validation or
// engine-reported failure moves the pipeline to the terminal StageFailed,
// carrying the originating error with it.
type Stage string

const (
	// StageUninitialized is the state before any input has been checked.
	StageUninitialized Stage = "uninitialized"

	// StageParametersValidated means the airfoil parameters passed
	// validation and the engine may now be touched.
	StageParametersValidated Stage = "parameters-validated"

	// StagePointCloudReady means the contour has been evaluated and
	// assembled into a closed point cloud.
	StagePointCloudReady Stage = "point-cloud-ready"

	// StageGeometryRegistered means all entities (points, curves, loop,
	// surface) are registered in the engine session.
	StageGeometryRegistered Stage = "geometry-registered"

	// StageMeshGenerated means the engine produced a non-degenerate mesh.
	StageMeshGenerated Stage = "mesh-generated"

	// StageStatisticsComputed is the successful terminal state.
	StageStatisticsComputed Stage = "statistics-computed"

	// StageFailed is the failure terminal state.
	StageFailed Stage = "failed"
)

// String returns the stage name, satisfying fmt.Stringer for log output.
func (s Stage) String() string {
	return string(s)
}

// Terminal reports whether the pipeline can make no further transitions
// out of this stage.
func (s Stage) Terminal() bool {
	return s == StageStatisticsComputed || s == StageFailed
}
