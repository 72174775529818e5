// Package physics advances tile-grid bodies one step at a time and resolves their
// collisions against a caller-supplied terrain.
//
// The 2D variant works in y-down screen space (gravity is +Y); the 3D variant works in
// y-up space (gravity is -Y). Step functions mutate the body in place and never return
// errors: inputs are preconditions, terrain panics propagate to the caller and NaN inputs
// yield NaN outputs.
//
// A body may be stepped by one goroutine at a time. Distinct bodies may be stepped
// concurrently as long as the terrain is not mutated meanwhile.
package physics
