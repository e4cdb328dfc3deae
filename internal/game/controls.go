package game

import (
	"log"
	"math"

	"megaglow/internal/config"
	"megaglow/internal/graphics"
	"megaglow/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	orbitSpeed  = 1.5 // radians per second
	zoomSpeed   = 8.0 // units per second
	minDistance = 2.0
	maxDistance = 60.0
	blurStep    = 0.5
)

// Orbit places a camera on a circle around Target.
type Orbit struct {
	Target   mgl32.Vec3
	Yaw      float32
	Distance float32
	Height   float32
}

// Apply moves c onto the orbit, looking at Target.
func (o *Orbit) Apply(c *graphics.Camera) {
	sin, cos := math.Sincos(float64(o.Yaw))
	c.Position = o.Target.Add(mgl32.Vec3{
		float32(sin) * o.Distance,
		o.Height,
		float32(cos) * o.Distance,
	})
	c.Target = o.Target
}

// Controls turns input actions into orbit movement and settings changes.
type Controls struct {
	Input    *input.InputManager
	Settings *config.Settings
	Orbit    *Orbit

	// OnToggleLights is called with the new state when lighting is toggled.
	OnToggleLights func(enabled bool)
	// OnToggleProfiling is called when the profiling overlay is toggled.
	OnToggleProfiling func()

	lightsOff bool
}

// Update applies held and just-pressed actions for a frame of dt seconds
// and reports whether the viewer asked to quit. Edge flags are reset.
func (c *Controls) Update(dt float64) (quit bool) {
	defer c.Input.PostUpdate()
	in := c.Input

	step := float32(dt)
	if in.IsActive(input.ActionOrbitLeft) {
		c.Orbit.Yaw -= orbitSpeed * step
	}
	if in.IsActive(input.ActionOrbitRight) {
		c.Orbit.Yaw += orbitSpeed * step
	}
	if in.IsActive(input.ActionZoomIn) {
		c.Orbit.Distance -= zoomSpeed * step
	}
	if in.IsActive(input.ActionZoomOut) {
		c.Orbit.Distance += zoomSpeed * step
	}
	c.Orbit.Distance = mgl32.Clamp(c.Orbit.Distance, minDistance, maxDistance)

	if in.JustPressed(input.ActionNextPreset) {
		log.Printf("bloom preset: %s", c.Settings.CyclePreset())
	}
	if in.JustPressed(input.ActionBlurUp) {
		c.Settings.SetBlurAmount(c.Settings.BlurAmount() + blurStep)
		log.Printf("blur amount: %.1f", c.Settings.BlurAmount())
	}
	if in.JustPressed(input.ActionBlurDown) {
		// Stay above zero, which would clear the override.
		c.Settings.SetBlurAmount(max(c.Settings.BlurAmount()-blurStep, config.MinBlurAmount))
		log.Printf("blur amount: %.1f", c.Settings.BlurAmount())
	}
	if in.JustPressed(input.ActionBlurReset) {
		c.Settings.SetBlurAmount(0)
		log.Printf("blur amount: %.1f (preset)", c.Settings.BlurAmount())
	}
	if in.JustPressed(input.ActionToggleSort) {
		c.Settings.SetSortBillboards(!c.Settings.SortBillboards())
		log.Printf("billboard sorting: %v", c.Settings.SortBillboards())
	}
	if in.JustPressed(input.ActionToggleLights) {
		c.lightsOff = !c.lightsOff
		if c.OnToggleLights != nil {
			c.OnToggleLights(!c.lightsOff)
		}
	}
	if in.JustPressed(input.ActionToggleProfiling) && c.OnToggleProfiling != nil {
		c.OnToggleProfiling()
	}
	return in.JustPressed(input.ActionQuit)
}
