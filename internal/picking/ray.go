// Package picking resolves mouse positions to tiles by casting rays
// against the terrain, without requiring full mesh raycasting.
package picking

import (
	gomath "math"

	"github.com/fieldbox/tileforge/pkg/geom"
)

// Ray is a half-line in world space.
type Ray struct {
	Origin    geom.Vec3
	Direction geom.Vec3 // normalized
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the camera's view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj geom.Mat4) Ray {
	// Normalized device coordinates, Y flipped.
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	nearWorld := invViewProj.MulVec4(geom.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(geom.Vec4{ndcX, ndcY, 1.0, 1.0})

	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := geom.Vec3{X: nearWorld[0], Y: nearWorld[1], Z: nearWorld[2]}
	dir := geom.Vec3{
		X: farWorld[0] - nearWorld[0],
		Y: farWorld[1] - nearWorld[1],
		Z: farWorld[2] - nearWorld[2],
	}.Normalize()

	return Ray{Origin: origin, Direction: dir}
}

// IntersectPlaneY intersects the ray with the horizontal plane at the
// given Y level. Returns the hit point's X and Z.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 1e-6 {
		return 0, 0, false // parallel to the plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // behind the origin
	}

	x = r.Origin.X + t*r.Direction.X
	z = r.Origin.Z + t*r.Direction.Z
	return x, z, true
}

// IntersectPlane intersects the ray with the plane through point with
// the given normal. Returns the hit point.
func (r Ray) IntersectPlane(point, normal geom.Vec3) (geom.Vec3, bool) {
	denom := r.Direction.Dot(normal)
	if gomath.Abs(float64(denom)) < 1e-6 {
		return geom.Vec3{}, false
	}

	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return geom.Vec3{}, false
	}
	return r.Origin.Add(r.Direction.Scale(t)), true
}
