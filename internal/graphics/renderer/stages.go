package renderer

import (
	"fmt"

	"megaglow/internal/graphics"
	"megaglow/internal/graphics/postfx"

	"github.com/go-gl/mathgl/mgl32"
)

type texParam struct {
	name string
	tex  graphics.Texture
}

type floatParam struct {
	name  string
	value float32
}

// bind makes rt the only write surface; nil binds the backbuffer.
func (p *Pipeline) bind(rt graphics.RenderTarget) {
	p.bound = rt
	p.dev.SetRenderTarget(rt)
}

func (p *Pipeline) beginFrame() error {
	p.bind(p.targets.SceneColor)
	p.dev.Clear(p.settings.ClearColor())
	return nil
}

func (p *Pipeline) opaque() error {
	return p.registry.DrainOpaque(&p.ctx)
}

// glow renders the depth occluders and the glow batches into GlowColor.
func (p *Pipeline) glow() error {
	p.bind(p.targets.GlowColor)
	p.dev.Clear(mgl32.Vec4{0, 0, 0, 0})

	// Glow billboards can be seen from both sides.
	p.dev.SetCulling(false)
	err := p.registry.DrainGlow(&p.ctx)
	p.dev.SetCulling(true)
	return err
}

func (p *Pipeline) glowBlur() error {
	return p.blur(p.targets.GlowColor, p.targets.BlurScratch)
}

// glowNoise modulates the blurred glow with the noise texture into BlurScratch.
func (p *Pipeline) glowNoise() error {
	p.bind(p.targets.BlurScratch)
	return p.composite(p.fx.Glow, TechNoise,
		[]texParam{
			{ParamGlowTexture, p.targets.GlowColor.Texture()},
			{ParamNoiseTexture, p.noise},
		},
		[]floatParam{{ParamNoiseScale, p.settings.NoiseScale()}},
	)
}

// glowMerge combines the scene and the noisy glow into GlowColor.
func (p *Pipeline) glowMerge() error {
	p.bind(p.targets.GlowColor)
	return p.composite(p.fx.Glow, TechMerge,
		[]texParam{
			{ParamSceneTexture, p.targets.SceneColor.Texture()},
			{ParamGlowTexture, p.targets.BlurScratch.Texture()},
		},
		nil,
	)
}

// bloomExtract keeps the pixels of the merged image above the threshold.
func (p *Pipeline) bloomExtract() error {
	b := p.settings.Bloom()
	p.bind(p.targets.SceneColor)
	return p.composite(p.fx.Bloom, TechExtract,
		[]texParam{{ParamSceneTexture, p.targets.GlowColor.Texture()}},
		[]floatParam{{ParamBloomThreshold, b.Threshold}},
	)
}

func (p *Pipeline) bloomBlur() error {
	return p.blur(p.targets.SceneColor, p.targets.BlurScratch)
}

// bloomCombine writes the final image to the backbuffer.
func (p *Pipeline) bloomCombine() error {
	b := p.settings.Bloom()
	p.bind(nil)
	return p.composite(p.fx.Bloom, TechCombine,
		[]texParam{
			{ParamBloomTexture, p.targets.SceneColor.Texture()},
			{ParamBaseTexture, p.targets.GlowColor.Texture()},
		},
		[]floatParam{
			{ParamBloomIntensity, b.BloomIntensity},
			{ParamBaseIntensity, b.BaseIntensity},
			{ParamBloomSaturation, b.BloomSaturation},
			{ParamBaseSaturation, b.BaseSaturation},
		},
	)
}

// blur runs the separable Gaussian blur of src, ping-ponging through scratch:
// horizontal into scratch, then vertical back into src. The kernels are
// rebuilt every call since the blur amount is live-tunable.
func (p *Pipeline) blur(src, scratch graphics.RenderTarget) error {
	amount := p.settings.BlurAmount()

	h, err := postfx.Horizontal(p.taps, amount, src.Width())
	if err != nil {
		return err
	}
	p.bind(scratch)
	if err := p.blurPass(src, h); err != nil {
		return fmt.Errorf("horizontal: %w", err)
	}

	v, err := postfx.Vertical(p.taps, amount, src.Height())
	if err != nil {
		return err
	}
	p.bind(src)
	if err := p.blurPass(scratch, v); err != nil {
		return fmt.Errorf("vertical: %w", err)
	}
	return nil
}

func (p *Pipeline) blurPass(from graphics.RenderTarget, k postfx.Kernel) error {
	if err := p.fx.Blur.SetFloats(ParamSampleWeights, k.Weights); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingParameter, err)
	}
	if err := p.fx.Blur.SetVec2s(ParamSampleOffsets, k.Offsets); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingParameter, err)
	}
	return p.composite(p.fx.Blur, TechGaussianBlur,
		[]texParam{{ParamSourceTexture, from.Texture()}},
		nil,
	)
}

// composite draws the quad with technique into the bound target. It refuses
// to sample the bound target.
func (p *Pipeline) composite(e graphics.Effect, technique string, texs []texParam, floats []floatParam) error {
	for _, t := range texs {
		if p.bound != nil && t.tex == p.bound.Texture() {
			return fmt.Errorf("%w: %s.%s reads %s", ErrFeedbackLoop, e.Name(), technique, t.name)
		}
		if err := e.SetTexture(t.name, t.tex); err != nil {
			return fmt.Errorf("%w: %v", ErrMissingParameter, err)
		}
	}
	for _, f := range floats {
		if err := e.SetFloat(f.name, f.value); err != nil {
			return fmt.Errorf("%w: %v", ErrMissingParameter, err)
		}
	}
	if err := e.Apply(technique); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingTechnique, err)
	}
	p.quad.Draw()
	return nil
}
