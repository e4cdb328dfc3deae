package opengl

import (
	"image"

	"megaglow/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
)

// Texture is a 2D GL texture.
type Texture struct {
	ID     uint32
	width  int
	height int
}

var _ graphics.Texture = (*Texture)(nil)

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// Release deletes the texture.
func (t *Texture) Release() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// NewTexture uploads img as an RGBA texture. Wrapping repeats so the glow
// noise can be tiled by scaling its coordinates.
func NewTexture(img image.Image) *Texture {
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(rgba.Rect.Size().X),
		int32(rgba.Rect.Size().Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{ID: texture, width: rgba.Rect.Size().X, height: rgba.Rect.Size().Y}
}
