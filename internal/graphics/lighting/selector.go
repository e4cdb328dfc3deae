package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaxNearest is the number of light slots fed to each object.
const MaxNearest = 4

// Selector answers nearest-light queries against the registered light set.
type Selector struct {
	lights     []Light
	registered bool
}

func NewSelector() *Selector {
	return &Selector{}
}

// Register replaces the light set. Nil entries are skipped.
func (s *Selector) Register(lights []Light) {
	s.lights = s.lights[:0]
	for _, l := range lights {
		if l != nil {
			s.lights = append(s.lights, l)
		}
	}
	s.registered = true
}

// Unregister drops the light set; subsequent queries report no lighting.
func (s *Selector) Unregister() {
	clear(s.lights)
	s.lights = s.lights[:0]
	s.registered = false
}

// Registered reports whether a light set is registered.
func (s *Selector) Registered() bool { return s.registered }

// Len returns the number of registered lights.
func (s *Selector) Len() int { return len(s.lights) }

// Nearest returns the (at most) MaxNearest lights closest to pos.
// Slots are unordered and unused slots are nil. ok is false when there is
// nothing to light with and callers should fall back to ambient lighting.
//
// Once all slots are full a candidate replaces the slot holding the
// furthest light, and only when it is strictly closer than that light.
func (s *Selector) Nearest(pos mgl32.Vec3) (out [MaxNearest]Light, ok bool) {
	if !s.registered || len(s.lights) == 0 {
		return out, false
	}

	var dist [MaxNearest]float32
	n := 0
	far := 0 // slot of the furthest light once full
	for _, l := range s.lights {
		d := pos.Sub(l.Position()).LenSqr()
		if n < MaxNearest {
			out[n], dist[n] = l, d
			n++
			if n == MaxNearest {
				far = furthest(&dist)
			}
			continue
		}
		if d < dist[far] {
			out[far], dist[far] = l, d
			far = furthest(&dist)
		}
	}
	return out, true
}

// PackNearest returns the payloads of the nearest lights; empty slots are zero.
func (s *Selector) PackNearest(pos mgl32.Vec3) (out [MaxNearest]Payload, ok bool) {
	lights, ok := s.Nearest(pos)
	if !ok {
		return out, false
	}
	for i, l := range lights {
		if l != nil {
			out[i] = Pack(pos, l)
		}
	}
	return out, true
}

func furthest(dist *[MaxNearest]float32) int {
	far := 0
	for i := 1; i < MaxNearest; i++ {
		if dist[i] > dist[far] {
			far = i
		}
	}
	return far
}
