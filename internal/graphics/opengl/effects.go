package opengl

import (
	"fmt"
	"strings"

	"megaglow/internal/graphics/renderer"
)

const quadVert = `#version 410 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
out vec2 vUV;
void main() {
	vUV = aUV;
	gl_Position = vec4(aPos, 0.0, 1.0);
}`

const blurFrag = `#version 410 core
#define TAPS {{TAPS}}
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D SourceTexture;
uniform float SampleWeights[TAPS];
uniform vec2 SampleOffsets[TAPS];
void main() {
	vec4 c = vec4(0.0);
	for (int i = 0; i < TAPS; i++) {
		c += texture(SourceTexture, vUV + SampleOffsets[i]) * SampleWeights[i];
	}
	fragColor = c;
}`

const glowNoiseFrag = `#version 410 core
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D GlowTexture;
uniform sampler2D NoiseTexture;
uniform float NoiseScale;
void main() {
	vec4 glow = texture(GlowTexture, vUV);
	float n = texture(NoiseTexture, vUV * NoiseScale).r;
	fragColor = glow * (0.5 + n);
}`

const glowMergeFrag = `#version 410 core
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D SceneTexture;
uniform sampler2D GlowTexture;
void main() {
	vec4 scene = texture(SceneTexture, vUV);
	vec4 glow = texture(GlowTexture, vUV);
	fragColor = vec4(scene.rgb + glow.rgb * glow.a, 1.0);
}`

const bloomExtractFrag = `#version 410 core
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D SceneTexture;
uniform float BloomThreshold;
void main() {
	vec4 c = texture(SceneTexture, vUV);
	fragColor = clamp((c - BloomThreshold) / (1.0 - BloomThreshold), 0.0, 1.0);
}`

const bloomCombineFrag = `#version 410 core
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D BloomTexture;
uniform sampler2D BaseTexture;
uniform float BloomIntensity;
uniform float BaseIntensity;
uniform float BloomSaturation;
uniform float BaseSaturation;

vec4 adjustSaturation(vec4 color, float saturation) {
	float grey = dot(color.rgb, vec3(0.3, 0.59, 0.11));
	return mix(vec4(grey), color, saturation);
}

void main() {
	vec4 bloom = adjustSaturation(texture(BloomTexture, vUV), BloomSaturation) * BloomIntensity;
	vec4 base = adjustSaturation(texture(BaseTexture, vUV), BaseSaturation) * BaseIntensity;
	base *= (1.0 - clamp(bloom, 0.0, 1.0));
	fragColor = vec4((base + bloom).rgb, 1.0);
}`

func techniques(frags map[string]string) (map[string]*Shader, error) {
	out := make(map[string]*Shader, len(frags))
	for name, frag := range frags {
		s, err := NewShaderFromSource(quadVert, frag)
		if err != nil {
			for _, done := range out {
				done.Delete()
			}
			return nil, fmt.Errorf("technique %s: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}

// NewBlurEffect compiles the separable Gaussian blur for a kernel of taps samples.
func NewBlurEffect(taps int) (*Effect, error) {
	frag := strings.Replace(blurFrag, "{{TAPS}}", fmt.Sprint(taps), 1)
	techs, err := techniques(map[string]string{renderer.TechGaussianBlur: frag})
	if err != nil {
		return nil, fmt.Errorf("blur effect: %w", err)
	}
	return NewEffect("Blur", techs, []Param{
		{renderer.ParamSourceTexture, KindTexture},
		{renderer.ParamSampleWeights, KindFloats},
		{renderer.ParamSampleOffsets, KindVec2s},
	}), nil
}

// NewGlowEffect compiles the glow noise and merge techniques.
func NewGlowEffect() (*Effect, error) {
	techs, err := techniques(map[string]string{
		renderer.TechNoise: glowNoiseFrag,
		renderer.TechMerge: glowMergeFrag,
	})
	if err != nil {
		return nil, fmt.Errorf("glow effect: %w", err)
	}
	return NewEffect("Glow", techs, []Param{
		{renderer.ParamGlowTexture, KindTexture},
		{renderer.ParamNoiseTexture, KindTexture},
		{renderer.ParamSceneTexture, KindTexture},
		{renderer.ParamNoiseScale, KindFloat},
	}), nil
}

// NewBloomEffect compiles the bloom extract and combine techniques.
func NewBloomEffect() (*Effect, error) {
	techs, err := techniques(map[string]string{
		renderer.TechExtract: bloomExtractFrag,
		renderer.TechCombine: bloomCombineFrag,
	})
	if err != nil {
		return nil, fmt.Errorf("bloom effect: %w", err)
	}
	return NewEffect("Bloom", techs, []Param{
		{renderer.ParamSceneTexture, KindTexture},
		{renderer.ParamBloomThreshold, KindFloat},
		{renderer.ParamBloomTexture, KindTexture},
		{renderer.ParamBaseTexture, KindTexture},
		{renderer.ParamBloomIntensity, KindFloat},
		{renderer.ParamBaseIntensity, KindFloat},
		{renderer.ParamBloomSaturation, KindFloat},
		{renderer.ParamBaseSaturation, KindFloat},
	}), nil
}

// Effects bundles the compiled pipeline effects.
type Effects struct {
	renderer.Effects
	owned []*Effect
}

// LoadEffects compiles every effect the frame pipeline needs.
func LoadEffects(taps int) (*Effects, error) {
	blur, err := NewBlurEffect(taps)
	if err != nil {
		return nil, err
	}
	glow, err := NewGlowEffect()
	if err != nil {
		blur.Release()
		return nil, err
	}
	bloom, err := NewBloomEffect()
	if err != nil {
		blur.Release()
		glow.Release()
		return nil, err
	}
	return &Effects{
		Effects: renderer.Effects{Blur: blur, Glow: glow, Bloom: bloom},
		owned:   []*Effect{blur, glow, bloom},
	}, nil
}

// Release deletes every effect program.
func (e *Effects) Release() {
	for _, fx := range e.owned {
		fx.Release()
	}
}
