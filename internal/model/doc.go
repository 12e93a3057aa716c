// Package model defines the domain types for the foilmesh CLI.
//
// All entities in this package are pure data structures with no external
// dependencies: airfoil parameters, the assembled point cloud, the final
// mesh statistics, and the pipeline stage enumeration. They are passed
// between the pipeline packages and never retain engine state.
//
// The package also defines exit codes (ExitCode) and the typed error
// kinds (InvalidParameterError, RegistrationError, GenerationError,
// WriteError) that the CLI maps to user-facing failure output.
package model
