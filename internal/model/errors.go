package model

import "fmt"

// ExitCode defines the process exit codes emitted by the CLI.
// Scripts rely on these to distinguish a clean run from an interrupted one.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates any pipeline or I/O failure.
	ExitFailure ExitCode = 1

	// ExitInterrupted indicates the user aborted the run with SIGINT.
	// 130 is the conventional 128+SIGINT shell exit code.
	ExitInterrupted ExitCode = 130
)

// InvalidParameterError reports a rejected airfoil or resolution input.
// It is raised before any engine interaction, so the offending parameter
// can be named precisely and reported cheaply.
type InvalidParameterError struct {
	// Param is the user-facing parameter name (matches the CLI flag).
	Param string

	// Value is the rejected input value.
	Value interface{}

	// Reason describes the constraint that was violated.
	Reason string
}

// Error satisfies the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// RegistrationError reports that the geometry engine rejected part of the
// constructed geometry: a point duplicated within tolerance despite the
// upstream uniqueness guarantee, or a curve/loop that failed to close.
type RegistrationError struct {
	// Op is the registration call that failed ("point", "curve", "loop",
	// "surface", "synchronize").
	Op string

	// Err is the engine's underlying error.
	Err error
}

// Error satisfies the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("geometry registration (%s): %v", e.Op, e.Err)
}

// Unwrap exposes the engine error to errors.Is / errors.As.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// GenerationError reports that the engine could not produce a valid mesh:
// non-convergence, a crash of the meshing step, or a degenerate result
// with zero cells. These failures are structural, so the pipeline never
// retries them.
type GenerationError struct {
	// Reason is a short description of the failure mode.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mesh generation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("mesh generation: %s", e.Reason)
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// WriteError reports a failure persisting the mesh artifact.
type WriteError struct {
	// Path is the output path that could not be written.
	Path string

	// Err is the underlying I/O or encoding error.
	Err error
}

// Error satisfies the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write mesh %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *WriteError) Unwrap() error {
	return e.Err
}
