// Package profile evaluates NACA 4-digit airfoil surfaces.
//
// The evaluator is a pure numeric function from airfoil parameters to two
// ordered coordinate sequences (lower and upper surface). It has no side
// effects and is safe to call repeatedly and in isolation, which is what
// makes the geometry pipeline testable without an engine.
package profile
