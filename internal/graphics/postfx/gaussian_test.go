package postfx

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func sum(ws []float32) float64 {
	s := 0.0
	for _, w := range ws {
		s += float64(w)
	}
	return s
}

func TestKernelWeightsSumToOne(t *testing.T) {
	for _, taps := range []int{1, 3, 9, DefaultTaps, 31} {
		for _, amount := range []float32{0.5, 1, 2, 4, 8, 16} {
			k, err := NewKernel(taps, amount, 1.0/800, 0)
			if err != nil {
				t.Fatalf("taps=%d amount=%f: %v", taps, amount, err)
			}
			if s := sum(k.Weights); math.Abs(s-1) > 1e-5 {
				t.Fatalf("taps=%d amount=%f: weights sum to %f", taps, amount, s)
			}
		}
	}
}

func TestKernelSymmetry(t *testing.T) {
	k, err := NewKernel(DefaultTaps, 4, 0.01, 0)
	if err != nil {
		t.Fatal(err)
	}
	if k.Offsets[0] != (mgl32.Vec2{}) {
		t.Fatalf("center offset: got %v", k.Offsets[0])
	}
	for i := 1; i <= DefaultTaps/2; i++ {
		if k.Weights[2*i-1] != k.Weights[2*i] {
			t.Fatalf("pair %d weights differ: %f vs %f", i, k.Weights[2*i-1], k.Weights[2*i])
		}
		if k.Offsets[2*i-1] != k.Offsets[2*i].Mul(-1) {
			t.Fatalf("pair %d offsets not mirrored: %v vs %v", i, k.Offsets[2*i-1], k.Offsets[2*i])
		}
		want := float32(0.01) * (float32(2*i) - 1.5)
		if math.Abs(float64(k.Offsets[2*i-1].X()-want)) > 1e-6 {
			t.Fatalf("pair %d offset: got %f, want %f", i, k.Offsets[2*i-1].X(), want)
		}
		if k.Offsets[2*i-1].Y() != 0 {
			t.Fatalf("horizontal kernel has a Y offset")
		}
	}
	// Weights fall off away from the center.
	if k.Weights[1] >= k.Weights[0] || k.Weights[3] >= k.Weights[1] {
		t.Fatalf("weights not decreasing: %v", k.Weights[:4])
	}
}

func TestKernelRejectsEvenTaps(t *testing.T) {
	for _, taps := range []int{0, -1, 2, 14} {
		if _, err := NewKernel(taps, 2, 1, 0); !errors.Is(err, ErrTaps) {
			t.Fatalf("taps=%d: got %v, want ErrTaps", taps, err)
		}
	}
}

func TestKernelIdentityWithoutBlur(t *testing.T) {
	k, err := NewKernel(5, 0, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if k.Weights[0] != 1 || sum(k.Weights) != 1 {
		t.Fatalf("identity kernel: got %v", k.Weights)
	}
}

func TestVerticalKernelAxis(t *testing.T) {
	k, err := Vertical(DefaultTaps, 3, 600)
	if err != nil {
		t.Fatal(err)
	}
	for i, o := range k.Offsets {
		if o.X() != 0 {
			t.Fatalf("offset %d has an X component: %v", i, o)
		}
	}
	if k.Offsets[1].Y() <= 0 {
		t.Fatalf("first positive offset: got %v", k.Offsets[1])
	}
}

func TestComputeGaussianPeak(t *testing.T) {
	g0 := ComputeGaussian(0, 2)
	want := float32(1 / math.Sqrt(2*math.Pi*2))
	if math.Abs(float64(g0-want)) > 1e-6 {
		t.Fatalf("G(0): got %f, want %f", g0, want)
	}
	if ComputeGaussian(1, 2) != ComputeGaussian(-1, 2) {
		t.Fatal("density is not symmetric")
	}
}

func BenchmarkNewKernel(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Horizontal(DefaultTaps, 4, 1280)
	}
}
