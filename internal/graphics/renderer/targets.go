package renderer

import (
	"fmt"

	"megaglow/internal/graphics"
)

// Targets are the offscreen surfaces of the pipeline, all sized to the backbuffer.
type Targets struct {
	SceneColor  graphics.RenderTarget
	BlurScratch graphics.RenderTarget
	GlowColor   graphics.RenderTarget

	width, height int
}

// Size returns the dimensions the targets were created with.
func (t *Targets) Size() (int, int) { return t.width, t.height }

func (t *Targets) matches(width, height int) bool {
	return t.SceneColor != nil && t.width == width && t.height == height
}

// recreate releases the current targets and allocates all three at the new size.
func (t *Targets) recreate(dev graphics.Device, width, height int) error {
	t.release()
	var err error
	for _, dst := range []*graphics.RenderTarget{&t.SceneColor, &t.BlurScratch, &t.GlowColor} {
		if *dst, err = dev.NewRenderTarget(width, height); err != nil {
			t.release()
			return fmt.Errorf("renderer: create render target %dx%d: %w", width, height, err)
		}
	}
	t.width, t.height = width, height
	return nil
}

func (t *Targets) release() {
	for _, rt := range []*graphics.RenderTarget{&t.SceneColor, &t.BlurScratch, &t.GlowColor} {
		if *rt != nil {
			(*rt).Release()
			*rt = nil
		}
	}
	t.width, t.height = 0, 0
}
