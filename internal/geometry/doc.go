// Package geometry registers an assembled point cloud with the meshing
// engine as points, boundary curves, a closed loop, and a plane surface.
package geometry
