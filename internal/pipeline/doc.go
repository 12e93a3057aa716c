// Package pipeline drives the mesh-generation state machine from airfoil
// parameters to a MeshStatistics value.
//
// The stages run strictly in sequence on the calling goroutine:
//
//	validate → evaluate → assemble → register → generate → extract
//
// Each stage consumes only the previous stage's output, and the single
// engine session is owned exclusively by this goroutine for the whole
// run. The one long-blocking call is the engine's Generate; everything
// around it is cheap by comparison.
package pipeline
