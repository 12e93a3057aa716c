// Package pointcloud lays evaluated airfoil surfaces out into the single
// closed contour consumed by geometry registration.
package pointcloud
