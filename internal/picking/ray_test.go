package picking

import (
	gomath "math"
	"testing"

	"github.com/fieldbox/tileforge/pkg/geom"
)

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: geom.Vec3{X: 0.5, Y: 5, Z: 1.5}, Direction: geom.Vec3{Y: -1}}
	x, z, ok := r.IntersectPlaneY(0)
	if !ok {
		t.Fatal("vertical ray missed the ground plane")
	}
	if x != 0.5 || z != 1.5 {
		t.Errorf("hit at (%v,%v), want (0.5,1.5)", x, z)
	}
}

func TestIntersectPlaneYParallel(t *testing.T) {
	r := Ray{Origin: geom.Vec3{Y: 5}, Direction: geom.Vec3{X: 1}}
	if _, _, ok := r.IntersectPlaneY(0); ok {
		t.Error("parallel ray reported a hit")
	}
}

func TestIntersectPlaneYBehindOrigin(t *testing.T) {
	r := Ray{Origin: geom.Vec3{Y: -1}, Direction: geom.Vec3{Y: -1}}
	if _, _, ok := r.IntersectPlaneY(0); ok {
		t.Error("hit behind the ray origin accepted")
	}
}

func TestIntersectPlaneSlanted(t *testing.T) {
	// Plane through origin, tilted 45 degrees around X.
	normal := geom.Vec3{Y: 1, Z: 1}.Normalize()
	r := Ray{Origin: geom.Vec3{Y: 2, Z: 0}, Direction: geom.Vec3{Y: -1}}

	hit, ok := r.IntersectPlane(geom.Vec3{}, normal)
	if !ok {
		t.Fatal("ray missed the slanted plane")
	}
	if gomath.Abs(float64(hit.Y)) > 1e-5 || gomath.Abs(float64(hit.Z)) > 1e-5 {
		t.Errorf("hit at %v, want origin", hit)
	}
}

func TestScreenToRayCenterMatchesForward(t *testing.T) {
	eye := geom.Vec3{X: 0, Y: 5, Z: 5}
	view := geom.LookAt(eye, geom.Vec3{}, geom.Vec3{Y: 1})
	proj := geom.Perspective(1.0, 4.0/3.0, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(400, 300, 800, 600, inv)

	forward := geom.Vec3{}.Sub(eye).Normalize()
	if r.Direction.Sub(forward).Length() > 1e-2 {
		t.Errorf("center ray direction %v, want camera forward %v", r.Direction, forward)
	}
	if r.Origin.Sub(eye).Length() > 0.5 {
		t.Errorf("ray origin %v too far from near plane at eye %v", r.Origin, eye)
	}
}
