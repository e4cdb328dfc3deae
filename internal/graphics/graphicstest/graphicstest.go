// Package graphicstest provides an in-memory graphics.Device that records
// the commands issued to it.
package graphicstest

import (
	"fmt"
	"image"
	"strings"

	"megaglow/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Target is a recorded render target. Its texture is itself.
type Target struct {
	Label    string
	W, H     int
	Released bool
}

func (t *Target) Width() int                { return t.W }
func (t *Target) Height() int               { return t.H }
func (t *Target) Texture() graphics.Texture { return t }
func (t *Target) Release()                  { t.Released = true }

// Texture is a recorded texture.
type Texture struct {
	Label    string
	W, H     int
	Released bool
}

func (t *Texture) Width() int  { return t.W }
func (t *Texture) Height() int { return t.H }
func (t *Texture) Release()    { t.Released = true }

type quad struct{ d *Device }

func (q quad) Draw()    { q.d.record("draw") }
func (q quad) Release() { q.d.record("release:quad") }

// Device records every call in Log.
type Device struct {
	Width, Height int
	Log           []string

	// Bound is the current write surface; nil is the backbuffer.
	Bound   *Target
	Culling bool
	Cleared []mgl32.Vec4

	targets  int
	textures int
}

var _ graphics.Device = (*Device)(nil)

func NewDevice(width, height int) *Device {
	return &Device{Width: width, Height: height, Culling: true}
}

func (d *Device) record(format string, args ...any) {
	d.Log = append(d.Log, fmt.Sprintf(format, args...))
}

// Reset clears the log.
func (d *Device) Reset() {
	d.Log = d.Log[:0]
	d.Cleared = d.Cleared[:0]
}

// Contains reports whether the log has an entry equal to s.
func (d *Device) Contains(s string) bool {
	for _, l := range d.Log {
		if l == s {
			return true
		}
	}
	return false
}

// String joins the log with newlines.
func (d *Device) String() string { return strings.Join(d.Log, "\n") }

func (d *Device) BackbufferSize() (int, int) { return d.Width, d.Height }

func (d *Device) NewRenderTarget(width, height int) (graphics.RenderTarget, error) {
	d.targets++
	t := &Target{Label: fmt.Sprintf("rt%d", d.targets), W: width, H: height}
	d.record("new:%s:%dx%d", t.Label, width, height)
	return t, nil
}

func (d *Device) NewTexture(img image.Image) (graphics.Texture, error) {
	d.textures++
	b := img.Bounds()
	t := &Texture{Label: fmt.Sprintf("tex%d", d.textures), W: b.Dx(), H: b.Dy()}
	d.record("new:%s:%dx%d", t.Label, t.W, t.H)
	return t, nil
}

func (d *Device) NewQuad() (graphics.Quad, error) {
	d.record("new:quad")
	return quad{d}, nil
}

func (d *Device) SetRenderTarget(rt graphics.RenderTarget) {
	if rt == nil {
		d.Bound = nil
		d.record("bind:backbuffer")
		return
	}
	t := rt.(*Target)
	d.Bound = t
	d.record("bind:%s", t.Label)
}

func (d *Device) Clear(c mgl32.Vec4) {
	d.Cleared = append(d.Cleared, c)
	d.record("clear")
}

func (d *Device) SetCulling(enabled bool) {
	d.Culling = enabled
	d.record("cull:%v", enabled)
}

func (d *Device) Present() { d.record("present") }

// Effect is a recording graphics.Effect.
type Effect struct {
	EffectName string
	Techniques map[string]bool
	Params     map[string]bool

	Textures map[string]graphics.Texture
	Floats   map[string]float32
	Arrays   map[string][]float32
	Vec2s    map[string][]mgl32.Vec2

	dev *Device
}

var _ graphics.Effect = (*Effect)(nil)

// NewEffect declares an effect with the given techniques and parameters.
// Applies are recorded on dev.
func NewEffect(dev *Device, name string, techniques, params []string) *Effect {
	e := &Effect{
		EffectName: name,
		Techniques: make(map[string]bool),
		Params:     make(map[string]bool),
		Textures:   make(map[string]graphics.Texture),
		Floats:     make(map[string]float32),
		Arrays:     make(map[string][]float32),
		Vec2s:      make(map[string][]mgl32.Vec2),
		dev:        dev,
	}
	for _, t := range techniques {
		e.Techniques[t] = true
	}
	for _, p := range params {
		e.Params[p] = true
	}
	return e
}

func (e *Effect) Name() string                  { return e.EffectName }
func (e *Effect) HasTechnique(name string) bool { return e.Techniques[name] }
func (e *Effect) HasParameter(name string) bool { return e.Params[name] }

func (e *Effect) check(name string) error {
	if !e.Params[name] {
		return fmt.Errorf("%s: no parameter %q", e.EffectName, name)
	}
	return nil
}

func (e *Effect) SetTexture(name string, tex graphics.Texture) error {
	if err := e.check(name); err != nil {
		return err
	}
	e.Textures[name] = tex
	return nil
}

func (e *Effect) SetFloat(name string, v float32) error {
	if err := e.check(name); err != nil {
		return err
	}
	e.Floats[name] = v
	return nil
}

func (e *Effect) SetFloats(name string, v []float32) error {
	if err := e.check(name); err != nil {
		return err
	}
	e.Arrays[name] = append([]float32(nil), v...)
	return nil
}

func (e *Effect) SetVec2s(name string, v []mgl32.Vec2) error {
	if err := e.check(name); err != nil {
		return err
	}
	e.Vec2s[name] = append([]mgl32.Vec2(nil), v...)
	return nil
}

func (e *Effect) Apply(technique string) error {
	if !e.Techniques[technique] {
		return fmt.Errorf("%s: no technique %q", e.EffectName, technique)
	}
	if e.dev != nil {
		e.dev.record("apply:%s.%s", e.EffectName, technique)
	}
	return nil
}
