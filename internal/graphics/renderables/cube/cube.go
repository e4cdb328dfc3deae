// Package cube renders lit cubes, optionally with a glowing shell.
package cube

import (
	"errors"

	"megaglow/internal/graphics"
	"megaglow/internal/graphics/batch"
	"megaglow/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

var errNotInitialized = errors.New("cube: feature not initialized")

// Cube is one axis-aligned cube in the scene.
type Cube struct {
	Pos   mgl32.Vec3
	Size  float32
	Color mgl32.Vec4
	// Glow is the emissive color drawn into the glow target. A zero alpha
	// makes the cube an occluder in the glow pass instead.
	Glow mgl32.Vec4
	// Spin is the rotation speed around Y in radians per frame.
	Spin float32

	angle float32
	f     *Feature
}

var _ batch.Drawable = (*Cube)(nil)

func (c *Cube) Material() batch.Material      { return c.f.lit }
func (c *Cube) DepthMaterial() batch.Material { return c.f.depth }
func (c *Cube) Position() mgl32.Vec3          { return c.Pos }

// Glows reports whether the cube contributes to the glow target.
func (c *Cube) Glows() bool { return c.Glow.W() > 0 }

// Model returns the model matrix.
func (c *Cube) Model() mgl32.Mat4 {
	return mgl32.Translate3D(c.Pos.X(), c.Pos.Y(), c.Pos.Z()).
		Mul4(mgl32.HomogRotate3DY(c.angle)).
		Mul4(mgl32.Scale3D(c.Size, c.Size, c.Size))
}

func (c *Cube) Submit(p graphics.Program) error {
	return c.submit(p, c.Color)
}

func (c *Cube) submit(p graphics.Program, color mgl32.Vec4) error {
	if c.f == nil || c.f.mesh == nil {
		return errNotInitialized
	}
	p.SetMatrix4("model", c.Model())
	p.SetVector4("albedo", color)
	c.f.mesh.draw()
	return nil
}

// shell is the glow pass view of a cube.
type shell struct{ *Cube }

func (s shell) Material() batch.Material      { return s.f.glow }
func (s shell) DepthMaterial() batch.Material { return nil }
func (s shell) Submit(p graphics.Program) error {
	return s.submit(p, s.Glow)
}

// Feature owns the cube mesh and materials and queues its cubes every frame.
type Feature struct {
	cubes []*Cube
	mesh  *mesh

	lit, glow, depth *material
}

var _ renderer.Renderable = (*Feature)(nil)

// NewFeature creates the cube feature. ambient is the light applied when no
// lights are registered or in range.
func NewFeature(ambient mgl32.Vec3, cubes ...*Cube) *Feature {
	f := &Feature{
		lit:   &material{id: LitID, kind: kindLit, ambient: ambient},
		glow:  &material{id: batch.DefaultGlowID, kind: kindGlow},
		depth: &material{id: DepthID, kind: kindDepth},
	}
	for _, c := range cubes {
		f.Add(c)
	}
	return f
}

// Add adds c to the feature.
func (f *Feature) Add(c *Cube) {
	if c.Size == 0 {
		c.Size = 1
	}
	c.f = f
	f.cubes = append(f.cubes, c)
}

// Cubes returns the feature's cubes.
func (f *Feature) Cubes() []*Cube { return f.cubes }

// Init compiles the shaders and uploads the mesh.
func (f *Feature) Init() error {
	for _, m := range []*material{f.lit, f.glow, f.depth} {
		if err := m.load(); err != nil {
			return err
		}
	}
	f.mesh = newMesh()
	for _, m := range []*material{f.lit, f.glow, f.depth} {
		m.mesh = f.mesh
	}
	return nil
}

// Queue enqueues every cube into the opaque pass. Glowing cubes also go to
// the glow pass; the rest occlude it through the depth pass.
func (f *Feature) Queue(ctx *renderer.FrameContext) {
	opts := ctx.Registry.Options()
	f.glow.id = opts.GlowID
	for _, c := range f.cubes {
		c.angle += c.Spin
		ctx.Registry.EnqueueOpaque(c, LitID)
		if c.Glows() {
			ctx.Registry.EnqueueOpaque(shell{c}, opts.GlowID)
		} else {
			ctx.Registry.EnqueueDepth(c, DepthID)
		}
	}
}

func (f *Feature) Dispose() {
	for _, m := range []*material{f.lit, f.glow, f.depth} {
		if m.shader != nil {
			m.shader.Delete()
			m.shader = nil
		}
		m.mesh = nil
	}
	if f.mesh != nil {
		f.mesh.release()
		f.mesh = nil
	}
}

func (f *Feature) SetViewport(width, height int) {}
