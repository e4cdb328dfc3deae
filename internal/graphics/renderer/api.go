package renderer

import (
	"errors"
	"fmt"

	"megaglow/internal/graphics"
	"megaglow/internal/graphics/batch"
)

var (
	ErrFrameInProgress  = errors.New("renderer: frame in progress")
	ErrFrameNotBegun    = errors.New("renderer: frame not begun")
	ErrPipelineNotRun   = errors.New("renderer: pipeline not run")
	ErrNoCamera         = errors.New("renderer: camera not set")
	ErrMissingTechnique = errors.New("renderer: missing technique")
	ErrMissingParameter = errors.New("renderer: missing parameter")
	ErrMissingEffect    = errors.New("renderer: missing effect")
	ErrFeedbackLoop     = errors.New("renderer: sampling the bound render target")
	ErrInvalidSize      = errors.New("renderer: invalid backbuffer size")
)

// Renderable is a scene feature that queues its drawables every frame.
type Renderable interface {
	Init() error
	// Queue enqueues the feature's visible drawables for this frame.
	Queue(ctx *FrameContext)
	Dispose()
	SetViewport(width, height int)
}

// FrameContext is handed to renderables while the frame is being queued.
type FrameContext struct {
	Camera   *graphics.Camera
	Registry *batch.Registry
	Frame    uint64
}

// StageObserver is notified around every pipeline stage.
type StageObserver interface {
	StageEntered(s Stage)
	StageExited(s Stage, err error)
}

// Stage identifies one step of the frame pipeline.
type Stage int

const (
	StageBeginFrame Stage = iota
	StageOpaque
	StageGlow
	StageGlowBlur
	StageGlowNoise
	StageGlowMerge
	StageBloomExtract
	StageBloomBlur
	StageBloomCombine
	stageCount
)

var stageNames = [stageCount]string{
	"BeginFrame",
	"Opaque",
	"Glow",
	"GlowBlur",
	"GlowNoiseComposite",
	"GlowMerge",
	"BloomExtract",
	"BloomBlur",
	"BloomCombine",
}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return "Unknown"
	}
	return stageNames[s]
}

// Stages returns every stage in execution order.
func Stages() []Stage {
	out := make([]Stage, stageCount)
	for i := range out {
		out[i] = Stage(i)
	}
	return out
}

// Effect techniques and parameters the pipeline drives.
const (
	TechGaussianBlur = "GaussianBlur"
	TechNoise        = "Noise"
	TechMerge        = "Merge"
	TechExtract      = "Extract"
	TechCombine      = "Combine"

	ParamSourceTexture = "SourceTexture"
	ParamSampleWeights = "SampleWeights"
	ParamSampleOffsets = "SampleOffsets"

	ParamGlowTexture  = "GlowTexture"
	ParamNoiseTexture = "NoiseTexture"
	ParamSceneTexture = "SceneTexture"
	ParamNoiseScale   = "NoiseScale"

	ParamBloomThreshold  = "BloomThreshold"
	ParamBloomTexture    = "BloomTexture"
	ParamBaseTexture     = "BaseTexture"
	ParamBloomIntensity  = "BloomIntensity"
	ParamBaseIntensity   = "BaseIntensity"
	ParamBloomSaturation = "BloomSaturation"
	ParamBaseSaturation  = "BaseSaturation"
)

// Effects are the post-process effects the pipeline composites with.
type Effects struct {
	Blur  graphics.Effect
	Glow  graphics.Effect
	Bloom graphics.Effect
}

// EffectSpec lists what one effect must declare.
type EffectSpec struct {
	Techniques []string
	Params     []string
}

var (
	BlurSpec = EffectSpec{
		Techniques: []string{TechGaussianBlur},
		Params:     []string{ParamSourceTexture, ParamSampleWeights, ParamSampleOffsets},
	}
	GlowSpec = EffectSpec{
		Techniques: []string{TechNoise, TechMerge},
		Params:     []string{ParamGlowTexture, ParamNoiseTexture, ParamSceneTexture, ParamNoiseScale},
	}
	BloomSpec = EffectSpec{
		Techniques: []string{TechExtract, TechCombine},
		Params: []string{
			ParamSceneTexture, ParamBloomThreshold, ParamBloomTexture, ParamBaseTexture,
			ParamBloomIntensity, ParamBaseIntensity, ParamBloomSaturation, ParamBaseSaturation,
		},
	}
)

func (fx Effects) validate() error {
	for _, e := range []struct {
		name   string
		effect graphics.Effect
		req    EffectSpec
	}{
		{"blur", fx.Blur, BlurSpec},
		{"glow", fx.Glow, GlowSpec},
		{"bloom", fx.Bloom, BloomSpec},
	} {
		if e.effect == nil {
			return fmt.Errorf("%w: %s", ErrMissingEffect, e.name)
		}
		for _, t := range e.req.Techniques {
			if !e.effect.HasTechnique(t) {
				return fmt.Errorf("%w: %s.%s", ErrMissingTechnique, e.effect.Name(), t)
			}
		}
		for _, p := range e.req.Params {
			if !e.effect.HasParameter(p) {
				return fmt.Errorf("%w: %s.%s", ErrMissingParameter, e.effect.Name(), p)
			}
		}
	}
	return nil
}
