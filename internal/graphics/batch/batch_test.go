package batch

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"megaglow/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// callLog records material and drawable calls in order.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) String() string { return strings.Join(l.calls, " ") }

type fakeProgram struct{ name string }

func (fakeProgram) SetInt(string, int32)          {}
func (fakeProgram) SetFloat(string, float32)      {}
func (fakeProgram) SetVector3(string, mgl32.Vec3) {}
func (fakeProgram) SetVector4(string, mgl32.Vec4) {}
func (fakeProgram) SetMatrix4(string, mgl32.Mat4) {}

type fakeMaterial struct {
	id     int
	name   string
	log    *callLog
	prog   *fakeProgram
	failOn string
}

func newMaterial(id int, name string, log *callLog) *fakeMaterial {
	return &fakeMaterial{id: id, name: name, log: log, prog: &fakeProgram{name: name}}
}

func (m *fakeMaterial) fail(op string) error {
	if m.failOn == op {
		return errors.New(op + " failed")
	}
	return nil
}

func (m *fakeMaterial) ID() int { return m.id }
func (m *fakeMaterial) Begin(*Context) error {
	m.log.add("begin:%s", m.name)
	return m.fail("begin")
}
func (m *fakeMaterial) Update(_ *Context, d Drawable) error {
	m.log.add("update:%s", d.(*fakeDrawable).name)
	return m.fail("update")
}
func (m *fakeMaterial) Apply() error {
	return m.fail("apply")
}
func (m *fakeMaterial) Program() graphics.Program { return m.prog }
func (m *fakeMaterial) End()                      { m.log.add("end:%s", m.name) }

type fakeDrawable struct {
	name  string
	mat   Material
	depth Material
	pos   mgl32.Vec3
	log   *callLog
	got   graphics.Program
}

func (d *fakeDrawable) Material() Material      { return d.mat }
func (d *fakeDrawable) DepthMaterial() Material { return d.depth }
func (d *fakeDrawable) Position() mgl32.Vec3    { return d.pos }
func (d *fakeDrawable) Submit(p graphics.Program) error {
	d.got = p
	d.log.add("draw:%s", d.name)
	return nil
}

func TestAddIgnoresNil(t *testing.T) {
	b := newBatch(1)
	b.Add(nil)
	if b.Len() != 0 {
		t.Fatalf("got %d members, want 0", b.Len())
	}
}

func TestEmptyBatchIsNoop(t *testing.T) {
	b := newBatch(1)
	ctx := &Context{}
	if err := b.BeginOpaque(ctx); err != nil {
		t.Fatal(err)
	}
	if err := b.BeginDepth(ctx); err != nil {
		t.Fatal(err)
	}
	if err := b.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	b.End()
}

func TestBeginWithoutMaterialFailsFast(t *testing.T) {
	log := &callLog{}
	b := newBatch(3)
	b.Add(&fakeDrawable{name: "a", log: log})
	if err := b.BeginOpaque(&Context{}); !errors.Is(err, ErrNoMaterial) {
		t.Fatalf("got %v, want ErrNoMaterial", err)
	}
	if err := b.BeginDepth(&Context{}); !errors.Is(err, ErrNoMaterial) {
		t.Fatalf("depth: got %v, want ErrNoMaterial", err)
	}
}

func TestSubmitPassesBoundProgram(t *testing.T) {
	log := &callLog{}
	mat := newMaterial(1, "m", log)
	depth := newMaterial(1, "depth", log)
	a := &fakeDrawable{name: "a", mat: mat, depth: depth, log: log}
	b := newBatch(1)
	b.Add(a)

	ctx := &Context{}
	if err := b.BeginOpaque(ctx); err != nil {
		t.Fatal(err)
	}
	if err := b.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	b.End()
	if a.got != mat.prog {
		t.Fatalf("submit received %v, want the material program", a.got)
	}

	if err := b.BeginDepth(ctx); err != nil {
		t.Fatal(err)
	}
	if err := b.SubmitDepth(ctx); err != nil {
		t.Fatal(err)
	}
	b.End()
	if a.got != depth.prog {
		t.Fatalf("depth submit received %v, want the depth program", a.got)
	}

	want := "begin:m update:a draw:a end:m begin:depth update:a draw:a end:depth"
	if log.String() != want {
		t.Fatalf("calls:\n got %s\nwant %s", log, want)
	}
}

func TestEndWithoutBeginIsNoop(t *testing.T) {
	log := &callLog{}
	b := newBatch(1)
	b.Add(&fakeDrawable{name: "a", mat: newMaterial(1, "m", log), log: log})
	b.End()
	if len(log.calls) != 0 {
		t.Fatalf("unexpected calls: %s", log)
	}
}

func TestSubmitWrapsErrors(t *testing.T) {
	log := &callLog{}
	mat := newMaterial(7, "m", log)
	mat.failOn = "apply"
	b := newBatch(7)
	b.Add(&fakeDrawable{name: "a", mat: mat, log: log})
	err := b.Submit(&Context{})
	if err == nil || !strings.Contains(err.Error(), "material 7: apply") {
		t.Fatalf("got %v", err)
	}
}

func billboardBatch(n int, rng *rand.Rand) (*Batch, *callLog) {
	log := &callLog{}
	mat := newMaterial(DefaultBillboardID, "bb", log)
	b := newBatch(DefaultBillboardID)
	for i := 0; i < n; i++ {
		b.Add(&fakeDrawable{
			name: fmt.Sprint(i),
			mat:  mat,
			pos:  mgl32.Vec3{rng.Float32() * 100, 0, float32(rng.Intn(10))},
			log:  log,
		})
	}
	return b, log
}

func TestSubmitSortsBillboardsFarthestFirst(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cam := graphics.NewCamera(800, 600)
	cam.Position = mgl32.Vec3{}

	for _, n := range []int{0, 1, 2, 3, 17, 100} {
		b, _ := billboardBatch(n, rng)
		before := make(map[Drawable]int)
		for _, d := range b.Members() {
			before[d]++
		}

		ctx := &Context{Camera: cam, SortBillboards: true, BillboardID: DefaultBillboardID}
		if err := b.Submit(ctx); err != nil {
			t.Fatal(err)
		}

		ms := b.Members()
		if len(ms) != n {
			t.Fatalf("n=%d: length changed to %d", n, len(ms))
		}
		for i := 1; i < len(ms); i++ {
			if cam.DistanceTo(ms[i-1].Position()) < cam.DistanceTo(ms[i].Position()) {
				t.Fatalf("n=%d: order not furthest-first at %d", n, i)
			}
		}
		for _, d := range ms {
			before[d]--
		}
		for _, c := range before {
			if c != 0 {
				t.Fatalf("n=%d: members are not a permutation of the input", n)
			}
		}
	}
}

func TestSubmitKeepsInsertionOrderWhenSortingDisabled(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	b, log := billboardBatch(5, rng)
	cam := graphics.NewCamera(800, 600)
	ctx := &Context{Camera: cam, SortBillboards: false, BillboardID: DefaultBillboardID}
	if err := b.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	want := "update:0 draw:0 update:1 draw:1 update:2 draw:2 update:3 draw:3 update:4 draw:4"
	if log.String() != want {
		t.Fatalf("got %s", log)
	}
}

func TestSubmitDoesNotSortOtherMaterials(t *testing.T) {
	log := &callLog{}
	mat := newMaterial(5, "m", log)
	b := newBatch(5)
	b.Add(&fakeDrawable{name: "near", mat: mat, pos: mgl32.Vec3{1, 0, 0}, log: log})
	b.Add(&fakeDrawable{name: "far", mat: mat, pos: mgl32.Vec3{50, 0, 0}, log: log})
	cam := graphics.NewCamera(800, 600)
	cam.Position = mgl32.Vec3{}
	ctx := &Context{Camera: cam, SortBillboards: true, BillboardID: DefaultBillboardID}
	if err := b.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	if log.String() != "update:near draw:near update:far draw:far" {
		t.Fatalf("got %s", log)
	}
}

func BenchmarkSortFarthestFirst(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	bb, _ := billboardBatch(1024, rng)
	src := append([]Drawable(nil), bb.Members()...)
	work := make([]Drawable, len(src))
	cam := &graphics.Camera{}
	var s sorter
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(work, src)
		s.sort(work, cam)
	}
}
