package cube

import (
	"fmt"

	"megaglow/internal/graphics"
	"megaglow/internal/graphics/batch"
	"megaglow/internal/graphics/lighting"
	"megaglow/internal/graphics/opengl"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader file paths
const (
	ShadersDir = "assets/shaders/"

	LitVertShader  = ShadersDir + "lit.vert"
	LitFragShader  = ShadersDir + "lit.frag"
	FlatFragShader = ShadersDir + "flat.frag"
)

// Material identifiers
const (
	LitID   = 1
	DepthID = 2
)

var (
	lightVectorNames [lighting.MaxNearest]string
	lightColorNames  [lighting.MaxNearest]string
)

func init() {
	for i := range lightVectorNames {
		lightVectorNames[i] = fmt.Sprintf("lightVector[%d]", i)
		lightColorNames[i] = fmt.Sprintf("lightColor[%d]", i)
	}
}

// lightUniforms returns the payloads for an object at pos and how many of
// them the shader should read. Zero means ambient lighting only.
func lightUniforms(ctx *batch.Context, pos mgl32.Vec3) (int32, [lighting.MaxNearest]lighting.Payload) {
	if ctx.Lights == nil || !ctx.Lights.Registered() {
		return 0, [lighting.MaxNearest]lighting.Payload{}
	}
	payloads, ok := ctx.Lights.PackNearest(pos)
	if !ok {
		return 0, payloads
	}
	return lighting.MaxNearest, payloads
}

type materialKind int

const (
	kindLit materialKind = iota
	kindGlow
	kindDepth
)

// material draws the cube mesh. Lit materials receive the nearest lights;
// glow and depth materials draw a flat color, depth with color writes off.
type material struct {
	id      int
	kind    materialKind
	ambient mgl32.Vec3
	shader  *opengl.Shader
	mesh    *mesh
}

var _ batch.Material = (*material)(nil)

func (m *material) ID() int { return m.id }

func (m *material) Program() graphics.Program { return m.shader }

func (m *material) Begin(ctx *batch.Context) error {
	if m.shader == nil || m.mesh == nil {
		return fmt.Errorf("cube: material %d used before Init", m.id)
	}
	m.shader.Use()
	m.shader.SetMatrix4("view", ctx.View)
	m.shader.SetMatrix4("projection", ctx.Proj)
	if m.kind == kindLit {
		m.shader.SetVector3("ambient", m.ambient)
	}
	if m.kind == kindDepth {
		gl.ColorMask(false, false, false, false)
	}
	m.mesh.bind()
	return nil
}

func (m *material) Update(ctx *batch.Context, d batch.Drawable) error {
	if m.kind != kindLit {
		return nil
	}
	n, payloads := lightUniforms(ctx, d.Position())
	m.shader.SetInt("lightCount", n)
	for i := int32(0); i < n; i++ {
		m.shader.SetVector4(lightVectorNames[i], payloads[i].Vector)
		m.shader.SetVector4(lightColorNames[i], payloads[i].Color)
	}
	return nil
}

func (m *material) Apply() error {
	m.shader.Use()
	return nil
}

func (m *material) End() {
	if m.kind == kindDepth {
		gl.ColorMask(true, true, true, true)
	}
	gl.BindVertexArray(0)
}

func (m *material) load() error {
	frag := LitFragShader
	if m.kind != kindLit {
		frag = FlatFragShader
	}
	s, err := opengl.NewShader(LitVertShader, frag)
	if err != nil {
		return fmt.Errorf("cube: material %d: %w", m.id, err)
	}
	m.shader = s
	return nil
}
