package graphics

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is a sampled GPU image.
type Texture interface {
	Width() int
	Height() int
	Release()
}

// RenderTarget is an offscreen color+depth surface.
// Its color attachment can be sampled once it is no longer bound.
type RenderTarget interface {
	Width() int
	Height() int
	Texture() Texture
	Release()
}

// Quad is the full-screen compositing quad.
type Quad interface {
	Draw()
	Release()
}

// Program is a bound shader program that drawables upload per-object data to.
type Program interface {
	SetInt(name string, value int32)
	SetFloat(name string, value float32)
	SetVector3(name string, v mgl32.Vec3)
	SetVector4(name string, v mgl32.Vec4)
	SetMatrix4(name string, m mgl32.Mat4)
}

// Effect is a set of named techniques sharing a parameter table.
// Setters fail when the effect does not declare the parameter.
type Effect interface {
	Name() string
	HasTechnique(name string) bool
	HasParameter(name string) bool
	SetTexture(name string, tex Texture) error
	SetFloat(name string, value float32) error
	SetFloats(name string, values []float32) error
	SetVec2s(name string, values []mgl32.Vec2) error
	// Apply binds the technique's program and uploads the parameter table.
	Apply(technique string) error
}

// Device is the subset of the graphics API the frame pipeline drives.
type Device interface {
	BackbufferSize() (width, height int)
	NewRenderTarget(width, height int) (RenderTarget, error)
	NewTexture(img image.Image) (Texture, error)
	NewQuad() (Quad, error)
	// SetRenderTarget binds rt as the only write surface; nil binds the backbuffer.
	SetRenderTarget(rt RenderTarget)
	Clear(color mgl32.Vec4)
	SetCulling(enabled bool)
	Present()
}
