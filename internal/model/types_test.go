package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseNACA4 verifies designation decoding for symmetric and cambered
// profiles, plus rejection of malformed codes.
func TestParseNACA4(t *testing.T) {
	tests := []struct {
		code      string
		camber    float64
		camberPos float64
		thickness float64
		hasError  bool
	}{
		{"0012", 0, 0, 0.12, false},
		{"2412", 0.02, 0.4, 0.12, false},
		{"4415", 0.04, 0.4, 0.15, false},
		{"0006", 0, 0, 0.06, false},
		{"12", 0, 0, 0, true},    // too short
		{"00123", 0, 0, 0, true}, // too long
		{"00a2", 0, 0, 0, true},  // non-digit
		{"2012", 0, 0, 0, true},  // camber without position
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			p, err := ParseNACA4(tt.code)
			if tt.hasError {
				var invalid *InvalidParameterError
				require.Error(t, err)
				assert.True(t, errors.As(err, &invalid), "should be an InvalidParameterError")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.camber, p.Camber)
			assert.Equal(t, tt.camberPos, p.CamberPos)
			assert.Equal(t, tt.thickness, p.Thickness)
			assert.Equal(t, 1.0, p.Chord, "chord should default to 1")
			assert.Equal(t, 100, p.Samples, "samples should default to 100")
		})
	}
}

// TestAirfoilParams_Validate checks that each out-of-range field is
// rejected with an InvalidParameterError naming that field.
func TestAirfoilParams_Validate(t *testing.T) {
	valid := AirfoilParams{Chord: 1, Thickness: 0.12, Samples: 100}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*AirfoilParams)
		param  string
	}{
		{"zero chord", func(p *AirfoilParams) { p.Chord = 0 }, "chord"},
		{"negative chord", func(p *AirfoilParams) { p.Chord = -1 }, "chord"},
		{"zero thickness", func(p *AirfoilParams) { p.Thickness = 0 }, "thickness"},
		{"thickness too large", func(p *AirfoilParams) { p.Thickness = 0.6 }, "thickness"},
		{"negative camber", func(p *AirfoilParams) { p.Camber = -0.01 }, "camber"},
		{"camber too large", func(p *AirfoilParams) { p.Camber = 0.2 }, "camber"},
		{"camber without position", func(p *AirfoilParams) { p.Camber = 0.02; p.CamberPos = 0 }, "camber-pos"},
		{"two samples", func(p *AirfoilParams) { p.Samples = 2 }, "samples"},
		{"zero samples", func(p *AirfoilParams) { p.Samples = 0 }, "samples"},
		{"negative samples", func(p *AirfoilParams) { p.Samples = -5 }, "samples"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			var invalid *InvalidParameterError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.param, invalid.Param)
		})
	}
}

// TestAirfoilParams_Validate_MinimumSamples verifies that 3 samples,
// the smallest contour that still closes, passes validation.
func TestAirfoilParams_Validate_MinimumSamples(t *testing.T) {
	p := AirfoilParams{Chord: 1, Thickness: 0.12, Samples: 3}
	assert.NoError(t, p.Validate())
}

// TestPointCloud_IsClosed verifies wrap detection within and outside the
// closure tolerance.
func TestPointCloud_IsClosed(t *testing.T) {
	closed := &PointCloud{
		X: []float64{1, 0.5, 0, 0.5, 1},
		Y: []float64{0, -0.1, 0, 0.1, 1e-12},
	}
	assert.True(t, closed.IsClosed())

	open := &PointCloud{
		X: []float64{1, 0.5, 0, 0.5, 1},
		Y: []float64{0, -0.1, 0, 0.1, 0.01},
	}
	assert.False(t, open.IsClosed())

	tiny := &PointCloud{X: []float64{1}, Y: []float64{0}}
	assert.False(t, tiny.IsClosed(), "single point is not a closed contour")
}

// TestPointCloud_At verifies the constant z offset is injected on access.
func TestPointCloud_At(t *testing.T) {
	c := &PointCloud{X: []float64{1, 2}, Y: []float64{3, 4}, Z: 0.5}
	assert.Equal(t, SurfacePoint{X: 2, Y: 4, Z: 0.5}, c.At(1))
	assert.Equal(t, 2, c.Len())
}

// TestStage_Terminal verifies only the two end states are terminal.
func TestStage_Terminal(t *testing.T) {
	assert.True(t, StageStatisticsComputed.Terminal())
	assert.True(t, StageFailed.Terminal())
	assert.False(t, StageUninitialized.Terminal())
	assert.False(t, StageMeshGenerated.Terminal())
}

// TestErrorKinds_Unwrap verifies the error chain is visible to errors.Is
// for every wrapping error kind.
func TestErrorKinds_Unwrap(t *testing.T) {
	root := errors.New("engine said no")

	reg := &RegistrationError{Op: "point", Err: root}
	assert.ErrorIs(t, reg, root)
	assert.Contains(t, reg.Error(), "point")

	gen := &GenerationError{Reason: "non-convergence", Err: root}
	assert.ErrorIs(t, gen, root)
	assert.Contains(t, gen.Error(), "non-convergence")

	genBare := &GenerationError{Reason: "zero cells"}
	assert.Contains(t, genBare.Error(), "zero cells")

	wr := &WriteError{Path: "/tmp/mesh.msh", Err: root}
	assert.ErrorIs(t, wr, root)
	assert.Contains(t, wr.Error(), "/tmp/mesh.msh")
}

// TestMeshStatistics_String sanity-checks the compact rendering.
func TestMeshStatistics_String(t *testing.T) {
	s := MeshStatistics{Nodes: 10, Triangles: 8, Quads: 1, Max: [3]float64{1, 0.2, 0}}
	out := s.String()
	assert.Contains(t, out, "10 nodes")
	assert.Contains(t, out, "8 triangles")
	assert.Contains(t, out, "1 quads")
	assert.Equal(t, 9, s.Cells())
}
