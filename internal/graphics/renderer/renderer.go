package renderer

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"megaglow/internal/config"
	"megaglow/internal/graphics"
	"megaglow/internal/graphics/batch"
	"megaglow/internal/graphics/lighting"
	"megaglow/internal/graphics/noise"
	"megaglow/internal/graphics/postfx"
	"megaglow/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

type phase int

const (
	phaseIdle     phase = iota
	phaseBegun          // BeginFrame done, stages pending
	phaseComposed       // final image written to the backbuffer
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCamera sets the camera used for view matrices and billboard sorting.
func WithCamera(c *graphics.Camera) Option { return func(p *Pipeline) { p.camera = c } }

// WithObserver installs a stage observer.
func WithObserver(o StageObserver) Option { return func(p *Pipeline) { p.observer = o } }

// WithPresent makes EndFrame present the backbuffer.
func WithPresent(present bool) Option { return func(p *Pipeline) { p.present = present } }

// WithTaps sets the blur kernel width. It must match the blur shader.
func WithTaps(taps int) Option { return func(p *Pipeline) { p.taps = taps } }

// WithNoiseImage uses img as the glow noise texture instead of loading or generating one.
func WithNoiseImage(img image.Image) Option { return func(p *Pipeline) { p.noiseImage = img } }

// WithRenderables registers scene features queued by Frame.
func WithRenderables(rs ...Renderable) Option {
	return func(p *Pipeline) { p.renderables = append(p.renderables, rs...) }
}

// WithSlowFrameLog logs frames slower than d; 0 disables the log.
func WithSlowFrameLog(d time.Duration) Option { return func(p *Pipeline) { p.slowFrame = d } }

// Pipeline turns the queued batches into the final image. It owns the
// offscreen targets, the compositing quad and the noise texture.
type Pipeline struct {
	dev      graphics.Device
	registry *batch.Registry
	settings *config.Settings
	fx       Effects
	lights   *lighting.Selector
	camera   *graphics.Camera

	renderables []Renderable
	observer    StageObserver

	targets    Targets
	quad       graphics.Quad
	noise      graphics.Texture
	noiseImage image.Image

	// bound is the current write surface; nil is the backbuffer.
	bound graphics.RenderTarget

	taps       int
	present    bool
	phase      phase
	frame      uint64
	frameStart time.Time
	slowFrame  time.Duration
	ctx        batch.Context
}

// New creates a pipeline drawing through dev. Missing effects, techniques or
// parameters are reported here rather than mid-frame.
func New(dev graphics.Device, reg *batch.Registry, settings *config.Settings, fx Effects, opts ...Option) (*Pipeline, error) {
	if dev == nil || reg == nil || settings == nil {
		return nil, errors.New("renderer: nil device, registry or settings")
	}
	p := &Pipeline{
		dev:       dev,
		registry:  reg,
		settings:  settings,
		fx:        fx,
		lights:    lighting.NewSelector(),
		taps:      postfx.DefaultTaps,
		slowFrame: 16 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := fx.validate(); err != nil {
		return nil, err
	}
	if _, err := postfx.NewKernel(p.taps, 1, 0, 0); err != nil {
		return nil, err
	}

	quad, err := dev.NewQuad()
	if err != nil {
		return nil, fmt.Errorf("renderer: create quad: %w", err)
	}
	p.quad = quad

	if p.noiseImage == nil {
		p.noiseImage = loadNoise(settings.NoisePath())
	}
	if p.noise, err = dev.NewTexture(p.noiseImage); err != nil {
		p.Dispose()
		return nil, fmt.Errorf("renderer: upload noise texture: %w", err)
	}

	w, h := dev.BackbufferSize()
	if err := p.resize(w, h); err != nil {
		p.Dispose()
		return nil, err
	}

	for _, r := range p.renderables {
		if err := r.Init(); err != nil {
			p.Dispose()
			return nil, err
		}
		r.SetViewport(w, h)
	}
	return p, nil
}

func loadNoise(path string) image.Image {
	if path != "" {
		img, err := noise.Load(path)
		if err == nil {
			return img
		}
		log.Printf("renderer: %v; using generated noise", err)
	}
	return noise.Generate(noise.DefaultParams())
}

// SetCamera replaces the camera and fits its aspect ratio to the targets.
func (p *Pipeline) SetCamera(c *graphics.Camera) {
	p.camera = c
	if w, h := p.targets.Size(); c != nil && h > 0 {
		c.SetViewport(w, h)
	}
}

// Camera returns the current camera.
func (p *Pipeline) Camera() *graphics.Camera { return p.camera }

// Registry returns the batch registry the pipeline drains.
func (p *Pipeline) Registry() *batch.Registry { return p.registry }

// Targets returns the offscreen targets.
func (p *Pipeline) Targets() *Targets { return &p.targets }

// FrameCount returns the number of completed frames.
func (p *Pipeline) FrameCount() uint64 { return p.frame }

// RegisterLights replaces the light set used for per-object lighting.
func (p *Pipeline) RegisterLights(lights []lighting.Light) {
	p.lights.Register(lights)
	log.Printf("renderer: %d lights registered", p.lights.Len())
}

// UnregisterLights drops the light set; materials fall back to ambient lighting.
func (p *Pipeline) UnregisterLights() { p.lights.Unregister() }

// NearestLights returns the lights closest to pos, or ok == false when
// no lights are registered.
func (p *Pipeline) NearestLights(pos mgl32.Vec3) ([lighting.MaxNearest]lighting.Light, bool) {
	return p.lights.Nearest(pos)
}

// Resize recreates the offscreen targets for a new backbuffer size.
func (p *Pipeline) Resize(width, height int) error {
	if p.phase != phaseIdle {
		return ErrFrameInProgress
	}
	if err := p.resize(width, height); err != nil {
		return err
	}
	for _, r := range p.renderables {
		r.SetViewport(width, height)
	}
	return nil
}

func (p *Pipeline) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if p.targets.matches(width, height) {
		return nil
	}
	if err := p.targets.recreate(p.dev, width, height); err != nil {
		return err
	}
	if p.camera != nil {
		p.camera.SetViewport(width, height)
	}
	log.Printf("renderer: render targets resized to %dx%d", width, height)
	return nil
}

// Frame queues every renderable and runs one complete frame.
func (p *Pipeline) Frame() error {
	if err := p.BeginFrame(); err != nil {
		return err
	}
	ctx := &FrameContext{Camera: p.camera, Registry: p.registry, Frame: p.frame}
	for _, r := range p.renderables {
		r.Queue(ctx)
	}
	if err := p.RunPipeline(); err != nil {
		return err
	}
	return p.EndFrame()
}

// BeginFrame binds and clears the scene target. Drawables may be queued
// between BeginFrame and RunPipeline.
func (p *Pipeline) BeginFrame() error {
	if p.phase != phaseIdle {
		return ErrFrameInProgress
	}
	if p.camera == nil {
		return ErrNoCamera
	}
	profiling.ResetFrame()
	p.frameStart = time.Now()

	if w, h := p.dev.BackbufferSize(); !p.targets.matches(w, h) {
		if err := p.Resize(w, h); err != nil {
			return err
		}
	}
	if err := p.stage(StageBeginFrame, p.beginFrame); err != nil {
		p.abort()
		return err
	}
	p.phase = phaseBegun
	return nil
}

// RunPipeline drains the registry and runs every compositing stage, ending
// with the final image on the backbuffer.
func (p *Pipeline) RunPipeline() error {
	if p.phase != phaseBegun {
		return ErrFrameNotBegun
	}
	p.ctx = batch.Context{
		Camera:         p.camera,
		View:           p.camera.GetViewMatrix(),
		Proj:           p.camera.GetProjectionMatrix(),
		Lights:         p.lights,
		SortBillboards: p.settings.SortBillboards(),
	}
	stages := [...]struct {
		stage Stage
		run   func() error
	}{
		{StageOpaque, p.opaque},
		{StageGlow, p.glow},
		{StageGlowBlur, p.glowBlur},
		{StageGlowNoise, p.glowNoise},
		{StageGlowMerge, p.glowMerge},
		{StageBloomExtract, p.bloomExtract},
		{StageBloomBlur, p.bloomBlur},
		{StageBloomCombine, p.bloomCombine},
	}
	for _, s := range stages {
		if err := p.stage(s.stage, s.run); err != nil {
			p.abort()
			return err
		}
	}
	p.phase = phaseComposed
	return nil
}

// EndFrame presents the backbuffer when configured to and readies the
// pipeline for the next frame.
func (p *Pipeline) EndFrame() error {
	if p.phase != phaseComposed {
		return ErrPipelineNotRun
	}
	if p.present {
		p.dev.Present()
	}
	p.phase = phaseIdle
	p.frame++

	if d := time.Since(p.frameStart); p.slowFrame > 0 && d > p.slowFrame {
		log.Printf("renderer: slow frame %d: %v. Top stages: %s", p.frame, d, profiling.TopN(3))
	}
	return nil
}

// abort drops the frame's queued drawables and returns to idle.
func (p *Pipeline) abort() {
	p.registry.Reset()
	p.dev.SetCulling(true)
	p.phase = phaseIdle
}

func (p *Pipeline) stage(s Stage, run func() error) error {
	if p.observer != nil {
		p.observer.StageEntered(s)
	}
	stop := profiling.Track("renderer." + s.String())
	err := run()
	stop()
	if err != nil {
		err = fmt.Errorf("%s: %w", s, err)
	}
	if p.observer != nil {
		p.observer.StageExited(s, err)
	}
	return err
}

// Dispose releases every GPU resource the pipeline owns.
func (p *Pipeline) Dispose() {
	for i := len(p.renderables) - 1; i >= 0; i-- {
		p.renderables[i].Dispose()
	}
	p.targets.release()
	if p.quad != nil {
		p.quad.Release()
		p.quad = nil
	}
	if p.noise != nil {
		p.noise.Release()
		p.noise = nil
	}
}
