package billboard

import (
	"testing"

	"megaglow/internal/graphics/batch"
	"megaglow/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

func TestQueueUsesBillboardBatch(t *testing.T) {
	a := &Billboard{Pos: mgl32.Vec3{0, 0, -5}}
	b := &Billboard{Pos: mgl32.Vec3{0, 0, -10}, Glow: true}
	f := NewFeature(a, b)

	reg := batch.NewRegistry(batch.DefaultOptions())
	f.Queue(&renderer.FrameContext{Registry: reg})

	opaque := reg.Batches(batch.PassOpaque)
	if len(opaque) != 1 || opaque[0].ID() != batch.DefaultBillboardID || opaque[0].Len() != 2 {
		t.Fatal("billboards should share the billboard batch")
	}
	glow := reg.Batches(batch.PassGlow)
	if len(glow) != 1 || glow[0].ID() != GlowID || glow[0].Len() != 1 {
		t.Fatal("only the glowing billboard should be in the glow pass")
	}
	if glow[0].Members()[0].Material() != f.additive {
		t.Fatal("glow member should blend additively")
	}
	if reg.Len(batch.PassDepth) != 0 {
		t.Fatal("billboards never occlude the glow pass")
	}
}

func TestQueueFollowsRegistryOptions(t *testing.T) {
	f := NewFeature(&Billboard{})
	reg := batch.NewRegistry(batch.Options{GlowID: -7, BillboardID: 42})
	f.Queue(&renderer.FrameContext{Registry: reg})
	bs := reg.Batches(batch.PassOpaque)
	if got := bs[0].ID(); got != 42 {
		t.Fatalf("batch id: got %d", got)
	}
	if got := bs[0].Members()[0].Material().ID(); got != 42 {
		t.Fatalf("material id: got %d, want the batch id", got)
	}
}

func TestSubmitBeforeInit(t *testing.T) {
	b := &Billboard{}
	NewFeature(b)
	if err := b.Submit(nil); err != errNotInitialized {
		t.Fatalf("got %v", err)
	}
	if b.Size != 1 {
		t.Fatalf("default size: got %f", b.Size)
	}
}
