// Package lighting ranks registered lights by distance and packs the
// per-object light payload consumed by the lit materials.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Light is a positional light source. The core never mutates lights.
type Light interface {
	Position() mgl32.Vec3
	Color() mgl32.Vec4
	// Falloff is the distance at which the contribution reaches zero.
	// A value <= 0 means infinite range.
	Falloff() float32
	Intensity() float32
}

// PointLight is an omnidirectional light.
type PointLight struct {
	Pos   mgl32.Vec3
	Tint  mgl32.Vec4
	Range float32
	Power float32
}

func (l *PointLight) Position() mgl32.Vec3 { return l.Pos }
func (l *PointLight) Color() mgl32.Vec4    { return l.Tint }
func (l *PointLight) Falloff() float32     { return l.Range }
func (l *PointLight) Intensity() float32   { return l.Power }

// Payload is what a lit shader receives per light slot.
// Vector holds the direction to the query point in XYZ and the
// attenuated intensity in W.
type Payload struct {
	Color  mgl32.Vec4
	Vector mgl32.Vec4
}

// Pack computes the payload of l as seen from pos.
func Pack(pos mgl32.Vec3, l Light) Payload {
	d := pos.Sub(l.Position())
	att := l.Intensity()
	if f := l.Falloff(); f > 0 {
		att *= mgl32.Clamp(1-d.Len()/f, 0, 1)
	}
	return Payload{
		Color:  l.Color(),
		Vector: d.Vec4(att),
	}
}
