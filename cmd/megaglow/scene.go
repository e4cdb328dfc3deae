package main

import (
	"math"

	"megaglow/internal/graphics/lighting"
	"megaglow/internal/graphics/renderables/billboard"
	"megaglow/internal/graphics/renderables/cube"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	gridHalf    = 4
	lightCount  = 8
	lightRadius = 7
)

var palette = []mgl32.Vec4{
	{1, 0.35, 0.1, 1},
	{0.2, 0.6, 1, 1},
	{0.4, 1, 0.3, 1},
	{1, 0.2, 0.8, 1},
}

// scene is a floor of cubes, a few glowing pillars and orbiting lights
// marked by glowing billboards.
type scene struct {
	cubes      *cube.Feature
	billboards *billboard.Feature
	lights     []*lighting.PointLight
	markers    []*billboard.Billboard
}

func newScene() *scene {
	s := &scene{
		cubes:      cube.NewFeature(mgl32.Vec3{0.08, 0.08, 0.1}),
		billboards: billboard.NewFeature(),
	}

	for x := -gridHalf; x <= gridHalf; x++ {
		for z := -gridHalf; z <= gridHalf; z++ {
			s.cubes.Add(&cube.Cube{
				Pos:   mgl32.Vec3{float32(x) * 2, -1, float32(z) * 2},
				Size:  1.8,
				Color: mgl32.Vec4{0.7, 0.7, 0.75, 1},
			})
		}
	}

	for i, c := range palette {
		a := float64(i) / float64(len(palette)) * 2 * math.Pi
		s.cubes.Add(&cube.Cube{
			Pos:   mgl32.Vec3{float32(math.Cos(a)) * 4, 0.5, float32(math.Sin(a)) * 4},
			Color: c,
			Glow:  c,
			Spin:  0.01,
		})
	}

	for i := 0; i < lightCount; i++ {
		c := palette[i%len(palette)]
		l := &lighting.PointLight{Tint: c, Range: 6, Power: 1.5}
		b := &billboard.Billboard{Size: 0.6, Tint: c, Glow: true}
		s.lights = append(s.lights, l)
		s.markers = append(s.markers, b)
		s.billboards.Add(b)
	}
	s.animate(0)
	return s
}

func (s *scene) lightList() []lighting.Light {
	out := make([]lighting.Light, len(s.lights))
	for i, l := range s.lights {
		out[i] = l
	}
	return out
}

// animate moves the lights and their markers to their positions at t seconds.
func (s *scene) animate(t float64) {
	for i, l := range s.lights {
		a := t*0.4 + float64(i)/float64(len(s.lights))*2*math.Pi
		r := lightRadius - float64(i%2)*3
		l.Pos = mgl32.Vec3{
			float32(math.Cos(a) * r),
			1.5 + float32(math.Sin(t+float64(i)))*0.5,
			float32(math.Sin(a) * r),
		}
		s.markers[i].Pos = l.Pos
	}
}
