// Package billboard renders camera-facing translucent sprites. They are
// drawn after every other opaque batch, furthest first when sorting is on.
package billboard

import (
	"errors"
	"fmt"

	"megaglow/internal/graphics"
	"megaglow/internal/graphics/batch"
	"megaglow/internal/graphics/opengl"
	"megaglow/internal/graphics/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader file paths
const (
	VertShader = "assets/shaders/billboard.vert"
	FragShader = "assets/shaders/billboard.frag"
)

// GlowID is the glow pass batch of glowing billboards.
const GlowID = 10

var errNotInitialized = errors.New("billboard: feature not initialized")

var corners = []float32{
	-0.5, -0.5,
	0.5, -0.5,
	-0.5, 0.5,
	0.5, 0.5,
}

// Billboard is one sprite centered on Pos.
type Billboard struct {
	Pos  mgl32.Vec3
	Size float32
	Tint mgl32.Vec4
	// Glow adds the sprite to the glow target when true.
	Glow bool

	f *Feature
}

var _ batch.Drawable = (*Billboard)(nil)

func (b *Billboard) Material() batch.Material      { return b.f.blend }
func (b *Billboard) DepthMaterial() batch.Material { return nil }
func (b *Billboard) Position() mgl32.Vec3          { return b.Pos }

func (b *Billboard) Submit(p graphics.Program) error {
	if b.f == nil || b.f.vao == 0 {
		return errNotInitialized
	}
	p.SetVector3("center", b.Pos)
	p.SetFloat("size", b.Size)
	p.SetVector4("tint", b.Tint)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	return nil
}

type glowing struct{ *Billboard }

func (g glowing) Material() batch.Material { return g.f.additive }

// material blends sprites over the bound target without writing depth.
type material struct {
	id       int
	additive bool
	shader   *opengl.Shader
	f        *Feature
}

var _ batch.Material = (*material)(nil)

func (m *material) ID() int                   { return m.id }
func (m *material) Program() graphics.Program { return m.shader }

func (m *material) Begin(ctx *batch.Context) error {
	if m.shader == nil {
		return fmt.Errorf("billboard: material %d used before Init", m.id)
	}
	m.shader.Use()
	m.shader.SetMatrix4("view", ctx.View)
	m.shader.SetMatrix4("projection", ctx.Proj)

	gl.Enable(gl.BLEND)
	if m.additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.DepthMask(false)
	gl.BindVertexArray(m.f.vao)
	return nil
}

func (m *material) Update(ctx *batch.Context, d batch.Drawable) error { return nil }

func (m *material) Apply() error {
	m.shader.Use()
	return nil
}

func (m *material) End() {
	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// Feature owns the sprite quad and queues its billboards every frame.
type Feature struct {
	billboards []*Billboard
	vao, vbo   uint32

	blend, additive *material
}

var _ renderer.Renderable = (*Feature)(nil)

func NewFeature(bs ...*Billboard) *Feature {
	f := &Feature{}
	f.blend = &material{id: batch.DefaultBillboardID, f: f}
	f.additive = &material{id: GlowID, additive: true, f: f}
	for _, b := range bs {
		f.Add(b)
	}
	return f
}

// Add adds b to the feature.
func (f *Feature) Add(b *Billboard) {
	if b.Size == 0 {
		b.Size = 1
	}
	b.f = f
	f.billboards = append(f.billboards, b)
}

// Billboards returns the feature's billboards.
func (f *Feature) Billboards() []*Billboard { return f.billboards }

func (f *Feature) Init() error {
	shader, err := opengl.NewShader(VertShader, FragShader)
	if err != nil {
		return fmt.Errorf("billboard: %w", err)
	}
	f.blend.shader = shader
	f.additive.shader = shader

	gl.GenVertexArrays(1, &f.vao)
	gl.BindVertexArray(f.vao)

	gl.GenBuffers(1, &f.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, f.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(corners)*4, gl.Ptr(corners), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return nil
}

// Queue enqueues every billboard into the billboard batch of the opaque
// pass. Glowing billboards are also drawn additively into the glow pass.
func (f *Feature) Queue(ctx *renderer.FrameContext) {
	opts := ctx.Registry.Options()
	f.blend.id = opts.BillboardID
	for _, b := range f.billboards {
		ctx.Registry.EnqueueOpaque(b, opts.BillboardID)
		if b.Glow {
			ctx.Registry.EnqueueGlow(glowing{b}, GlowID)
		}
	}
}

func (f *Feature) Dispose() {
	if f.blend.shader != nil {
		f.blend.shader.Delete()
		f.blend.shader = nil
		f.additive.shader = nil
	}
	if f.vbo != 0 {
		gl.DeleteBuffers(1, &f.vbo)
		f.vbo = 0
	}
	if f.vao != 0 {
		gl.DeleteVertexArrays(1, &f.vao)
		f.vao = 0
	}
}

func (f *Feature) SetViewport(width, height int) {}
