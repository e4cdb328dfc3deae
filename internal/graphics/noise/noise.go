// Package noise builds the fractal noise texture used to break up glow silhouettes.
package noise

import (
	"math"
)

// fade is the smootherstep curve 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x int64, y int64, seed int64) uint64 {
	// SplitMix64 style integer hash, stable across runs for same inputs
	v := uint64(x) + (uint64(y) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

// latticeValue returns the lattice value at (x, y) wrapped to a period so
// the texture tiles.
func latticeValue(x, y, period int64, seed int64) float64 {
	if period > 0 {
		x = ((x % period) + period) % period
		y = ((y % period) + period) % period
	}
	h := hash2(x, y, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// valueNoise2D returns tileable value noise in [0,1].
func valueNoise2D(x, y float64, period int64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)

	fx := fade(x - x0)
	fy := fade(y - y0)

	ix, iy := int64(x0), int64(y0)
	v00 := latticeValue(ix, iy, period, seed)
	v10 := latticeValue(ix+1, iy, period, seed)
	v01 := latticeValue(ix, iy+1, period, seed)
	v11 := latticeValue(ix+1, iy+1, period, seed)

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fy)
}

// Fractal sums octaves of tileable value noise. Each octave doubles the
// lattice period so every octave tiles with the same texture size.
// The result is in [0,1].
func Fractal(x, y float64, period int64, seed int64, octaves int, persistence float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		p := period * int64(frequency)
		v := valueNoise2D(x*frequency, y*frequency, p, seed+int64(i*131))
		sum += v * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
