// Package engine defines the narrow capability interface of the external
// geometry and meshing engine, and its implementations.
//
// The pipeline never talks to the real engine directly; it only sees this
// interface, so the core and its tests can substitute the in-memory Fake
// without paying for the real engine's startup cost or depending on it
// being installed.
//
// An engine session is single-owner: it is driven by exactly one goroutine
// from construction to Close, and entity tags are meaningless outside the
// session that issued them.
package engine
