// Package opengl implements graphics.Device on an OpenGL 4.1 core context.
package opengl

import (
	"fmt"
	"image"
	"log"

	"megaglow/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Device drives the GL context current on the calling thread.
type Device struct {
	size func() (int, int)
	swap func()
}

var _ graphics.Device = (*Device)(nil)

// NewDevice initializes GL. size reports the framebuffer size in pixels and
// swap presents the backbuffer; both normally come from the window.
func NewDevice(size func() (int, int), swap func()) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	log.Printf("opengl: %s, %s", gl.GoStr(gl.GetString(gl.RENDERER)), gl.GoStr(gl.GetString(gl.VERSION)))

	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	// Back-face culling; meshes emit CCW front faces
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	return &Device{size: size, swap: swap}, nil
}

func (d *Device) BackbufferSize() (int, int) { return d.size() }

func (d *Device) NewRenderTarget(width, height int) (graphics.RenderTarget, error) {
	return newRenderTarget(width, height)
}

func (d *Device) NewTexture(img image.Image) (graphics.Texture, error) {
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("opengl: empty image")
	}
	return NewTexture(img), nil
}

func (d *Device) NewQuad() (graphics.Quad, error) { return newQuad(), nil }

func (d *Device) SetRenderTarget(rt graphics.RenderTarget) {
	if rt == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		w, h := d.size()
		gl.Viewport(0, 0, int32(w), int32(h))
		return
	}
	t := rt.(*RenderTarget)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.Width()), int32(t.Height()))
}

func (d *Device) Clear(c mgl32.Vec4) {
	gl.ClearColor(c.X(), c.Y(), c.Z(), c.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) SetCulling(enabled bool) {
	if enabled {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

func (d *Device) Present() {
	if d.swap != nil {
		d.swap()
	}
}
