package opengl

import (
	"fmt"

	"megaglow/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// RenderTarget is a framebuffer with a half-float color texture and a
// depth renderbuffer.
type RenderTarget struct {
	fbo   uint32
	depth uint32
	color Texture
}

var _ graphics.RenderTarget = (*RenderTarget)(nil)

func newRenderTarget(width, height int) (*RenderTarget, error) {
	rt := &RenderTarget{color: Texture{width: width, height: height}}

	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)

	gl.GenTextures(1, &rt.color.ID)
	gl.BindTexture(gl.TEXTURE_2D, rt.color.ID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.color.ID, 0)

	gl.GenRenderbuffers(1, &rt.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.Release()
		return nil, fmt.Errorf("framebuffer not complete: 0x%x", status)
	}
	return rt, nil
}

func (rt *RenderTarget) Width() int                { return rt.color.width }
func (rt *RenderTarget) Height() int               { return rt.color.height }
func (rt *RenderTarget) Texture() graphics.Texture { return &rt.color }

// Release deletes the framebuffer and its attachments.
func (rt *RenderTarget) Release() {
	rt.color.Release()
	if rt.depth != 0 {
		gl.DeleteRenderbuffers(1, &rt.depth)
		rt.depth = 0
	}
	if rt.fbo != 0 {
		gl.DeleteFramebuffers(1, &rt.fbo)
		rt.fbo = 0
	}
}
