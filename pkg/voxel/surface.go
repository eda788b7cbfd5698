package voxel

import "github.com/go-gl/mathgl/mgl64"

// SurfacePoint is a single dual-contouring feature point: the averaged
// edge-intersection position and the gradient-estimated normal for one
// voxel's surface crossing, both in the owning chunk's local space.
type SurfacePoint struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
}
