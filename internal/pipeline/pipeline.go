package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmr-tortoise/foilmesh/internal/engine"
	"github.com/mmr-tortoise/foilmesh/internal/geometry"
	"github.com/mmr-tortoise/foilmesh/internal/logger"
	"github.com/mmr-tortoise/foilmesh/internal/model"
	"github.com/mmr-tortoise/foilmesh/internal/msh"
	"github.com/mmr-tortoise/foilmesh/internal/pointcloud"
	"github.com/mmr-tortoise/foilmesh/internal/profile"
)

// EncodingAuto selects the output encoding from the mesh size: text below
// the binary threshold, binary at or above it. The binary format's fixed
// header overhead exceeds its per-element savings for small meshes, so
// text wins there and binary wins at scale.
const EncodingAuto = "auto"

// DefaultBinaryThreshold is the node count at which auto encoding
// switches from text to binary.
const DefaultBinaryThreshold = 10000

// Options configures one pipeline run.
type Options struct {
	// CharacteristicLength is the engine's target mesh size at each
	// boundary point. Zero means scale the default with the chord.
	CharacteristicLength float64

	// Encoding is "text", "binary", or EncodingAuto.
	Encoding string

	// BinaryThreshold is the auto-encoding node-count cutoff. Zero means
	// DefaultBinaryThreshold.
	BinaryThreshold int

	// Recombine asks the engine to recombine triangles into quads.
	Recombine bool

	// OutputPath is where the mesh artifact is written. Empty means the
	// mesh stays in the engine session only and no artifact is produced.
	OutputPath string
}

// Result is the outcome of a successful run.
type Result struct {
	// Statistics is the extracted aggregate mesh data.
	Statistics model.MeshStatistics

	// OutputPath is the written artifact path; empty if no write was
	// requested.
	OutputPath string

	// Format is the encoding actually used for the artifact. Set even
	// when no artifact was written, reflecting what the policy chose.
	Format msh.Format
}

// Orchestrator runs the pipeline over a single engine session. It is not
// reusable: one orchestrator drives one session through one run, so no
// entity handles can leak between unrelated invocations.
type Orchestrator struct {
	eng   engine.Engine
	opts  Options
	stage model.Stage
}

// New creates an orchestrator over the given engine session.
func New(eng engine.Engine, opts Options) *Orchestrator {
	return &Orchestrator{eng: eng, opts: opts, stage: model.StageUninitialized}
}

// Stage returns the pipeline's current state-machine position.
func (o *Orchestrator) Stage() model.Stage {
	return o.stage
}

// Run executes the full pipeline. Validation failures are reported before
// the engine is touched; everything after that is an engine-originated
// failure and is wrapped with the stage it occurred in. No stage is ever
// retried: meshing failures are structural, so retrying with the same
// parameters cannot succeed.
func (o *Orchestrator) Run(ctx context.Context, params model.AirfoilParams) (*Result, error) {
	if o.stage != model.StageUninitialized {
		return nil, o.fail(fmt.Errorf("pipeline already ran (stage %s)", o.stage))
	}

	if err := params.Validate(); err != nil {
		return nil, o.fail(err)
	}
	o.stage = model.StageParametersValidated

	surfaces, err := profile.Evaluate(params)
	if err != nil {
		return nil, o.fail(err)
	}
	cloud, err := pointcloud.Assemble(surfaces, 0)
	if err != nil {
		return nil, o.fail(err)
	}
	o.stage = model.StagePointCloudReady
	logger.Debug("point cloud assembled",
		zap.Int("points", cloud.Len()), zap.Bool("closed", cloud.IsClosed()))

	lc := o.opts.CharacteristicLength
	if lc <= 0 {
		lc = geometry.DefaultCharacteristicLength(params.Chord)
	}
	if _, err := geometry.Build(o.eng, cloud, lc); err != nil {
		return nil, o.fail(err)
	}
	o.stage = model.StageGeometryRegistered

	if err := o.eng.Generate(ctx, engine.GenerateOptions{Recombine: o.opts.Recombine}); err != nil {
		if ctx.Err() != nil {
			// Interruption is an ordinary abort of the in-flight call,
			// not a meshing failure; surface the context error so the
			// CLI maps it to the interrupt exit code.
			return nil, o.fail(fmt.Errorf("mesh generation: %w", ctx.Err()))
		}
		return nil, o.fail(&model.GenerationError{Reason: "engine reported failure", Err: err})
	}

	stats := Extract(o.eng)
	if stats.Cells() == 0 {
		return nil, o.fail(&model.GenerationError{Reason: "degenerate result: zero cells produced"})
	}
	o.stage = model.StageMeshGenerated

	format := ResolveEncoding(o.opts.Encoding, stats.Nodes, o.opts.BinaryThreshold)
	if o.opts.OutputPath != "" {
		if err := o.eng.Write(ctx, o.opts.OutputPath, format); err != nil {
			return nil, o.fail(&model.WriteError{Path: o.opts.OutputPath, Err: err})
		}
		logger.Debug("mesh artifact written",
			zap.String("path", o.opts.OutputPath), zap.String("format", format.String()))
	}

	o.stage = model.StageStatisticsComputed
	return &Result{
		Statistics: stats,
		OutputPath: o.opts.OutputPath,
		Format:     format,
	}, nil
}

// fail moves the pipeline into its terminal failure state and annotates
// the error with the stage it was in when the failure happened.
func (o *Orchestrator) fail(err error) error {
	from := o.stage
	o.stage = model.StageFailed
	return fmt.Errorf("pipeline stage %s: %w", from, err)
}

// ResolveEncoding applies the output encoding policy. Explicit "text" or
// "binary" requests are honored as given; EncodingAuto (or empty) picks
// text below the threshold and binary at or above it.
func ResolveEncoding(requested string, nodes, threshold int) msh.Format {
	switch requested {
	case string(msh.FormatText):
		return msh.FormatText
	case string(msh.FormatBinary):
		return msh.FormatBinary
	}
	if threshold <= 0 {
		threshold = DefaultBinaryThreshold
	}
	if nodes >= threshold {
		return msh.FormatBinary
	}
	return msh.FormatText
}
