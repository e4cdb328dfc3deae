// Package batch groups drawables by material so each material's shader
// state is set up once per pass.
package batch

import (
	"errors"
	"fmt"

	"megaglow/internal/graphics"
	"megaglow/internal/graphics/lighting"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrNoMaterial = errors.New("batch: first member has no material")

// Context is the per-pass state handed to materials.
type Context struct {
	Camera *graphics.Camera
	View   mgl32.Mat4
	Proj   mgl32.Mat4

	// Lights may be nil; materials then use ambient lighting.
	Lights *lighting.Selector

	SortBillboards bool
	// BillboardID is filled in by the Registry before drawing.
	BillboardID int
}

// Material owns a shader program and the state shared by a batch.
type Material interface {
	ID() int
	// Begin binds global parameters such as view and projection.
	Begin(ctx *Context) error
	// Update uploads the per-object parameters of d.
	Update(ctx *Context, d Drawable) error
	// Apply activates the material's technique.
	Apply() error
	Program() graphics.Program
	// End restores any state Begin changed.
	End()
}

// Drawable is anything the scene queues for rendering.
type Drawable interface {
	Material() Material
	// DepthMaterial may return nil if the drawable has no depth-only variant.
	DepthMaterial() Material
	Position() mgl32.Vec3
	Submit(p graphics.Program) error
}

// Batch holds the drawables sharing one material identifier.
type Batch struct {
	id      int
	members []Drawable
	active  Material
	sorter  *sorter // shared with the owning Registry; nil when standalone
}

func newBatch(id int) *Batch {
	return &Batch{id: id}
}

// ID returns the material identifier shared by all members.
func (b *Batch) ID() int { return b.id }

// Len returns the number of members.
func (b *Batch) Len() int { return len(b.members) }

// Members returns the members in submission order.
func (b *Batch) Members() []Drawable { return b.members }

// Add appends d; nil is ignored.
func (b *Batch) Add(d Drawable) {
	if d == nil {
		return
	}
	b.members = append(b.members, d)
}

// BeginOpaque sets up the first member's material. No-op on an empty batch.
func (b *Batch) BeginOpaque(ctx *Context) error {
	if len(b.members) == 0 {
		return nil
	}
	return b.begin(ctx, b.members[0].Material())
}

// BeginDepth sets up the first member's depth material. No-op on an empty batch.
func (b *Batch) BeginDepth(ctx *Context) error {
	if len(b.members) == 0 {
		return nil
	}
	return b.begin(ctx, b.members[0].DepthMaterial())
}

func (b *Batch) begin(ctx *Context, m Material) error {
	if m == nil {
		return fmt.Errorf("material %d: %w", b.id, ErrNoMaterial)
	}
	if err := m.Begin(ctx); err != nil {
		return fmt.Errorf("material %d: begin: %w", b.id, err)
	}
	b.active = m
	return nil
}

// Submit updates and draws every member with its material. The billboard
// batch is first sorted furthest-first when ctx asks for it.
func (b *Batch) Submit(ctx *Context) error {
	if ctx.SortBillboards && b.id == ctx.BillboardID && ctx.Camera != nil {
		s := b.sorter
		if s == nil {
			s = &sorter{}
		}
		s.sort(b.members, ctx.Camera)
	}
	for _, d := range b.members {
		if err := b.draw(ctx, d, d.Material()); err != nil {
			return err
		}
	}
	return nil
}

// SubmitDepth draws every member through its depth material.
func (b *Batch) SubmitDepth(ctx *Context) error {
	for _, d := range b.members {
		if err := b.draw(ctx, d, d.DepthMaterial()); err != nil {
			return err
		}
	}
	return nil
}

func (b *Batch) draw(ctx *Context, d Drawable, m Material) error {
	if m == nil {
		return fmt.Errorf("material %d: %w", b.id, ErrNoMaterial)
	}
	if err := m.Update(ctx, d); err != nil {
		return fmt.Errorf("material %d: update: %w", b.id, err)
	}
	if err := m.Apply(); err != nil {
		return fmt.Errorf("material %d: apply: %w", b.id, err)
	}
	if err := d.Submit(m.Program()); err != nil {
		return fmt.Errorf("material %d: submit: %w", b.id, err)
	}
	return nil
}

// End restores the state changed by the last Begin. Calling End without a
// matching Begin does nothing.
func (b *Batch) End() {
	if b.active == nil {
		return
	}
	b.active.End()
	b.active = nil
}
