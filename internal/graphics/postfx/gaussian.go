// Package postfx computes the sample tables of the separable post-process blur.
package postfx

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTaps must match SAMPLE_COUNT in the blur shader.
const DefaultTaps = 15

var ErrTaps = errors.New("postfx: tap count must be odd and positive")

// ComputeGaussian evaluates the 1-D normal density at n for standard deviation theta.
func ComputeGaussian(n, theta float32) float32 {
	t := float64(theta)
	x := float64(n)
	return float32((1.0 / math.Sqrt(2*math.Pi*t)) * math.Exp(-(x*x)/(2*t*t)))
}

// Kernel holds the weights and texel offsets of one blur direction.
type Kernel struct {
	Weights []float32
	Offsets []mgl32.Vec2
}

// NewKernel builds a taps-wide kernel for the given blur amount along (dx, dy).
// The center sample has weight G(0); pair i is sampled at ±(2i-1.5) texel
// steps with weight G(i). Weights are normalized to sum to one.
func NewKernel(taps int, blurAmount, dx, dy float32) (Kernel, error) {
	if taps < 1 || taps%2 == 0 {
		return Kernel{}, ErrTaps
	}
	k := Kernel{
		Weights: make([]float32, taps),
		Offsets: make([]mgl32.Vec2, taps),
	}
	if blurAmount <= 0 {
		// No spread: identity kernel.
		k.Weights[0] = 1
		return k, nil
	}

	k.Weights[0] = ComputeGaussian(0, blurAmount)
	total := k.Weights[0]

	for i := 1; i <= taps/2; i++ {
		w := ComputeGaussian(float32(i), blurAmount)
		k.Weights[2*i-1] = w
		k.Weights[2*i] = w
		total += 2 * w

		delta := mgl32.Vec2{dx, dy}.Mul(float32(2*i) - 1.5)
		k.Offsets[2*i-1] = delta
		k.Offsets[2*i] = delta.Mul(-1)
	}

	for i := range k.Weights {
		k.Weights[i] /= total
	}
	return k, nil
}

// Horizontal builds the kernel that blurs along X of a width-texel-wide image.
func Horizontal(taps int, blurAmount float32, width int) (Kernel, error) {
	return NewKernel(taps, blurAmount, 1/float32(max(width, 1)), 0)
}

// Vertical builds the kernel that blurs along Y of a height-texel-tall image.
func Vertical(taps int, blurAmount float32, height int) (Kernel, error) {
	return NewKernel(taps, blurAmount, 0, 1/float32(max(height, 1)))
}
