package graphics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraDistanceTo(t *testing.T) {
	c := NewCamera(800, 600)
	c.Position = mgl32.Vec3{0, 0, 0}
	d := c.DistanceTo(mgl32.Vec3{3, 4, 0})
	if math.Abs(float64(d-5)) > 1e-5 {
		t.Fatalf("distance: got %f, want 5", d)
	}
}

func TestCameraSetViewportIgnoresZeroHeight(t *testing.T) {
	c := NewCamera(800, 400)
	if c.AspectRatio != 2 {
		t.Fatalf("aspect: got %f, want 2", c.AspectRatio)
	}
	c.SetViewport(100, 0)
	if c.AspectRatio != 2 {
		t.Fatalf("aspect changed on zero height: %f", c.AspectRatio)
	}
}
