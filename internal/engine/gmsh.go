package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mmr-tortoise/foilmesh/internal/msh"
)

// gmshEnvVar names the environment variable that overrides the gmsh
// executable location, checked after the explicit config path and before
// the PATH probe.
const gmshEnvVar = "FOILMESH_GMSH"

// GmshConfig configures the gmsh-backed engine session.
type GmshConfig struct {
	// Path is the explicit gmsh executable path. Empty means auto-detect
	// via FOILMESH_GMSH and then PATH.
	Path string

	// Verbosity is gmsh's console verbosity level (0 silent, 2 warnings,
	// 5 debug). The default of 2 keeps meshing noise out of CLI output.
	Verbosity int
}

// Gmsh drives the gmsh meshing engine as a subprocess. Registration calls
// accumulate geometry statements for a .geo script; Generate writes the
// script into a per-session scratch directory and runs gmsh over it,
// then summarizes the resulting artifact in one streaming pass.
//
// Construction is deliberately cheap: the executable is resolved and the
// scratch directory created only on the first Generate, so commands that
// never mesh (help, points) pay nothing for the engine.
type Gmsh struct {
	cfg GmshConfig

	// stmts is the accumulated .geo script body, one statement per entry.
	stmts []string

	nextPoint   int
	nextCurve   int
	nextLoop    int
	nextSurface int

	// coherence mirrors gmsh's Geometry.AutoCoherence option. Toggles are
	// emitted into the script at the position they were requested, which
	// preserves their scoped nature across the registration phase.
	coherence bool

	workDir   string
	meshPath  string
	generated bool
	summary   msh.Summary
}

// assert interface compliance at compile time.
var _ Engine = (*Gmsh)(nil)

// NewGmsh creates a fresh gmsh session. Each session owns its own tag
// space and scratch directory; nothing is shared between sessions.
func NewGmsh(cfg GmshConfig) *Gmsh {
	if cfg.Verbosity == 0 {
		cfg.Verbosity = 2
	}
	return &Gmsh{cfg: cfg, coherence: true}
}

// AddPoint emits a Point statement and returns its tag.
func (g *Gmsh) AddPoint(x, y, z, lc float64) (PointTag, error) {
	if g.generated {
		return 0, fmt.Errorf("gmsh session already meshed; registration is closed")
	}
	g.nextPoint++
	g.stmts = append(g.stmts, fmt.Sprintf("Point(%d) = {%s, %s, %s, %s};",
		g.nextPoint, geoFloat(x), geoFloat(y), geoFloat(z), geoFloat(lc)))
	return PointTag(g.nextPoint), nil
}

// AddLine emits a Line statement connecting two registered points.
func (g *Gmsh) AddLine(a, b PointTag) (CurveTag, error) {
	if err := g.checkPoint(a); err != nil {
		return 0, err
	}
	if err := g.checkPoint(b); err != nil {
		return 0, err
	}
	if a == b {
		return 0, fmt.Errorf("degenerate line: both endpoints are point %d", a)
	}
	g.nextCurve++
	g.stmts = append(g.stmts, fmt.Sprintf("Line(%d) = {%d, %d};", g.nextCurve, a, b))
	return CurveTag(g.nextCurve), nil
}

// AddCurveLoop emits a Curve Loop statement over the given curves.
func (g *Gmsh) AddCurveLoop(curves []CurveTag) (LoopTag, error) {
	if len(curves) < 3 {
		return 0, fmt.Errorf("curve loop needs at least 3 curves, got %d", len(curves))
	}
	refs := make([]string, len(curves))
	for i, c := range curves {
		if int(c) < 1 || int(c) > g.nextCurve {
			return 0, fmt.Errorf("unknown curve tag %d", c)
		}
		refs[i] = strconv.Itoa(int(c))
	}
	g.nextLoop++
	g.stmts = append(g.stmts, fmt.Sprintf("Curve Loop(%d) = {%s};",
		g.nextLoop, strings.Join(refs, ", ")))
	return LoopTag(g.nextLoop), nil
}

// AddPlaneSurface emits a Plane Surface statement bounded by the loop.
func (g *Gmsh) AddPlaneSurface(loop LoopTag) (SurfaceTag, error) {
	if int(loop) < 1 || int(loop) > g.nextLoop {
		return 0, fmt.Errorf("unknown loop tag %d", loop)
	}
	g.nextSurface++
	g.stmts = append(g.stmts, fmt.Sprintf("Plane Surface(%d) = {%d};", g.nextSurface, loop))
	return SurfaceTag(g.nextSurface), nil
}

// Synchronize is a no-op for the script-driven session: gmsh synchronizes
// the geo model itself when it executes the script. The method exists so
// callers can keep the same call sequence against every implementation.
func (g *Gmsh) Synchronize() error {
	return nil
}

// SetCoherenceCheck toggles Geometry.AutoCoherence at the current script
// position and returns the previous setting.
func (g *Gmsh) SetCoherenceCheck(enabled bool) bool {
	previous := g.coherence
	if enabled != previous {
		v := 0
		if enabled {
			v = 1
		}
		g.stmts = append(g.stmts, fmt.Sprintf("Geometry.AutoCoherence = %d;", v))
		g.coherence = enabled
	}
	return previous
}

// Generate writes the accumulated script and runs gmsh's 2D meshing over
// it. On success the session mesh artifact exists in the scratch
// directory and the aggregate counters are available.
//
// There is no way to cancel gmsh mid-mesh; cancelling ctx kills the
// subprocess and abandons whatever partial state it had.
func (g *Gmsh) Generate(ctx context.Context, opts GenerateOptions) error {
	if g.generated {
		return fmt.Errorf("gmsh session already meshed")
	}
	if g.nextSurface == 0 {
		return fmt.Errorf("no plane surface registered")
	}

	bin, err := g.resolveBinary()
	if err != nil {
		return err
	}

	if g.workDir == "" {
		dir, err := os.MkdirTemp("", "foilmesh-"+uuid.NewString()[:8]+"-")
		if err != nil {
			return fmt.Errorf("create engine scratch directory: %w", err)
		}
		g.workDir = dir
	}

	script := g.script(opts)
	geoPath := filepath.Join(g.workDir, "airfoil.geo")
	g.meshPath = filepath.Join(g.workDir, "airfoil.msh")
	if err := os.WriteFile(geoPath, []byte(script), 0o644); err != nil {
		return fmt.Errorf("write geometry script: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin,
		"-2",
		"-format", "msh2",
		"-v", strconv.Itoa(g.cfg.Verbosity),
		"-o", g.meshPath,
		geoPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("meshing aborted: %w", ctx.Err())
		}
		return fmt.Errorf("gmsh failed: %s: %w",
			strings.TrimSpace(string(output)), err)
	}

	f, err := os.Open(g.meshPath)
	if err != nil {
		return fmt.Errorf("open session mesh: %w", err)
	}
	defer f.Close()

	// One streaming pass over the artifact gives the aggregate counters
	// and extents without materializing node or element arrays.
	summary, err := msh.DecodeSummary(f)
	if err != nil {
		return fmt.Errorf("summarize session mesh: %w", err)
	}
	g.summary = summary
	g.generated = true
	return nil
}

// NodeCount returns the generated node count.
func (g *Gmsh) NodeCount() int {
	return g.summary.Nodes
}

// ElementCount returns the generated cell count for one element type.
func (g *Gmsh) ElementCount(t msh.ElementType) int {
	switch t {
	case msh.ElementTriangle:
		return g.summary.Triangles
	case msh.ElementQuad:
		return g.summary.Quads
	case msh.ElementLine:
		return g.summary.Lines
	case msh.ElementPoint:
		return g.summary.Points
	default:
		return 0
	}
}

// Extent returns the node coordinate extents of the generated mesh.
func (g *Gmsh) Extent() (min, max [3]float64) {
	return g.summary.Min, g.summary.Max
}

// Write re-encodes the session mesh into the requested format at path.
func (g *Gmsh) Write(ctx context.Context, path string, format msh.Format) error {
	if !g.generated {
		return fmt.Errorf("no mesh generated yet")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.Open(g.meshPath)
	if err != nil {
		return fmt.Errorf("open session mesh: %w", err)
	}
	defer src.Close()

	mesh, err := msh.Decode(src)
	if err != nil {
		return fmt.Errorf("decode session mesh: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := msh.Encode(mesh, dst, format); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// Close removes the session scratch directory. The session and all its
// entity tags are dead afterwards.
func (g *Gmsh) Close() error {
	g.stmts = nil
	if g.workDir != "" {
		dir := g.workDir
		g.workDir = ""
		return os.RemoveAll(dir)
	}
	return nil
}

// script assembles the final .geo script for one Generate call.
func (g *Gmsh) script(opts GenerateOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "General.Verbosity = %d;\n", g.cfg.Verbosity)
	if opts.Recombine {
		b.WriteString("Mesh.RecombineAll = 1;\n")
	}
	for _, s := range g.stmts {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.String()
}

// resolveBinary locates the gmsh executable: explicit config path first,
// then the FOILMESH_GMSH environment variable, then PATH. Resolution is
// deferred to Generate so trivial invocations never touch the filesystem.
func (g *Gmsh) resolveBinary() (string, error) {
	if g.cfg.Path != "" {
		if _, err := os.Stat(g.cfg.Path); err != nil {
			return "", fmt.Errorf("configured gmsh path %q: %w", g.cfg.Path, err)
		}
		return g.cfg.Path, nil
	}
	if env := os.Getenv(gmshEnvVar); env != "" {
		if _, err := os.Stat(env); err != nil {
			return "", fmt.Errorf("%s=%q: %w", gmshEnvVar, env, err)
		}
		return env, nil
	}
	bin, err := exec.LookPath("gmsh")
	if err != nil {
		return "", fmt.Errorf("gmsh executable not found on PATH (set %s or engine.gmsh_path in the config): %w",
			gmshEnvVar, err)
	}
	return bin, nil
}

// checkPoint validates that a point tag was issued by this session.
func (g *Gmsh) checkPoint(p PointTag) error {
	if int(p) < 1 || int(p) > g.nextPoint {
		return fmt.Errorf("unknown point tag %d", p)
	}
	return nil
}

// geoFloat formats a coordinate for a .geo script with full round-trip
// precision.
func geoFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
