package game

import (
	"testing"

	"megaglow/internal/config"
	"megaglow/internal/graphics"
	"megaglow/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func newControls() *Controls {
	return &Controls{
		Input:    input.NewInputManager(),
		Settings: config.NewSettings(),
		Orbit:    &Orbit{Distance: 10, Height: 2},
	}
}

func press(c *Controls, key glfw.Key) {
	c.Input.HandleKeyEvent(key, glfw.Press)
	c.Input.HandleKeyEvent(key, glfw.Release)
}

func TestControlsCyclePreset(t *testing.T) {
	c := newControls()
	press(c, glfw.KeyP)
	c.Update(0)
	if got := c.Settings.PresetName(); got != "Soft" {
		t.Fatalf("preset: got %s, want Soft", got)
	}
	// Edge flags were reset, so a second update changes nothing.
	c.Update(0)
	if got := c.Settings.PresetName(); got != "Soft" {
		t.Fatalf("preset after idle frame: got %s", got)
	}
}

func TestControlsBlurAmount(t *testing.T) {
	c := newControls()
	base := c.Settings.BlurAmount()

	press(c, glfw.KeyEqual)
	c.Update(0)
	if got := c.Settings.BlurAmount(); got != base+blurStep {
		t.Fatalf("blur up: got %f, want %f", got, base+blurStep)
	}

	for i := 0; i < 40; i++ {
		press(c, glfw.KeyMinus)
		c.Update(0)
	}
	if got := c.Settings.BlurAmount(); got != config.MinBlurAmount {
		t.Fatalf("blur floor: got %f", got)
	}

	press(c, glfw.Key0)
	c.Update(0)
	if got := c.Settings.BlurAmount(); got != base {
		t.Fatalf("blur reset: got %f, want %f", got, base)
	}
}

func TestControlsToggles(t *testing.T) {
	c := newControls()
	var lights []bool
	c.OnToggleLights = func(on bool) { lights = append(lights, on) }

	press(c, glfw.KeyB)
	press(c, glfw.KeyL)
	c.Update(0)
	press(c, glfw.KeyL)
	c.Update(0)

	if c.Settings.SortBillboards() {
		t.Fatal("sorting should be off")
	}
	if len(lights) != 2 || lights[0] || !lights[1] {
		t.Fatalf("light toggles: got %v", lights)
	}
}

func TestControlsQuit(t *testing.T) {
	c := newControls()
	if c.Update(0) {
		t.Fatal("quit without input")
	}
	press(c, glfw.KeyEscape)
	if !c.Update(0) {
		t.Fatal("escape should quit")
	}
}

func TestOrbitZoomClamped(t *testing.T) {
	c := newControls()
	c.Input.HandleKeyEvent(glfw.KeyW, glfw.Press)
	c.Update(10)
	if c.Orbit.Distance != minDistance {
		t.Fatalf("distance: got %f", c.Orbit.Distance)
	}

	cam := graphics.NewCamera(100, 100)
	c.Orbit.Apply(cam)
	want := mgl32.Vec3{0, 2, minDistance}
	if !cam.Position.ApproxEqual(want) {
		t.Fatalf("camera position: got %v, want %v", cam.Position, want)
	}
}
