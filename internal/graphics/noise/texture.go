package noise

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math/bits"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Params controls procedural texture generation.
type Params struct {
	Size        int   // texels per side, rounded up to a power of two
	Cells       int64 // lattice cells across the first octave
	Octaves     int
	Persistence float64
	Seed        int64
}

// DefaultParams returns the parameters of the built-in glow noise.
func DefaultParams() Params {
	return Params{Size: 256, Cells: 8, Octaves: 5, Persistence: 0.5, Seed: 1337}
}

// Generate renders a tileable grayscale fractal noise image.
func Generate(p Params) *image.Gray {
	size := powerOfTwo(p.Size)
	cells := max(p.Cells, 1)
	img := image.NewGray(image.Rect(0, 0, size, size))
	scale := float64(cells) / float64(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := Fractal(float64(x)*scale, float64(y)*scale, cells, p.Seed, p.Octaves, p.Persistence)
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

// Load decodes a noise texture from path (PNG, JPEG, BMP or TIFF) and
// resamples it to a square power-of-two RGBA image.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open noise texture: %v", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode noise texture: %v", err)
	}
	return Square(img), nil
}

// Square resamples img to the smallest power-of-two square that holds its
// larger side.
func Square(img image.Image) *image.RGBA {
	b := img.Bounds()
	size := powerOfTwo(max(b.Dx(), b.Dy()))
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if b.Dx() == size && b.Dy() == size {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func powerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
