package camera

import (
	"math"
	"testing"
)

func TestOrbitPositionAtZeroYaw(t *testing.T) {
	c := NewOrbitCamera()
	c.SetCenter(0, 0, 0)
	c.Distance = 10
	c.RotationX = 0
	c.RotationY = 0

	// Zero pitch and yaw places the camera straight down +Z from center
	pos := c.Position()
	if math.Abs(float64(pos.X)) > 1e-5 || math.Abs(float64(pos.Y)) > 1e-5 {
		t.Errorf("expected camera on Z axis, got (%f, %f, %f)", pos.X, pos.Y, pos.Z)
	}
	if math.Abs(float64(pos.Z-10)) > 1e-5 {
		t.Errorf("expected z=10, got %f", pos.Z)
	}
}

func TestZoomClamped(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 100; i++ {
		c.HandleZoom(10)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("expected distance clamped to min %f, got %f", c.MinDistance, c.Distance)
	}

	for i := 0; i < 100; i++ {
		c.HandleZoom(-10)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("expected distance clamped to max %f, got %f", c.MaxDistance, c.Distance)
	}
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("expected pitch clamped to max %f, got %f", c.MaxPitch, c.RotationX)
	}

	c.HandleDrag(0, -10000)
	if c.RotationX != c.MinPitch {
		t.Errorf("expected pitch clamped to min %f, got %f", c.MinPitch, c.RotationX)
	}
}

func TestFitToBoundsCentersMap(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(0, 0, 0, 64, 2, 64)

	if c.CenterX != 32 || c.CenterZ != 32 {
		t.Errorf("expected center (32, _, 32), got (%f, %f, %f)", c.CenterX, c.CenterY, c.CenterZ)
	}
	if c.Distance < c.MinDistance || c.Distance > c.MaxDistance {
		t.Errorf("distance %f outside [%f, %f]", c.Distance, c.MinDistance, c.MaxDistance)
	}
}
