package opengl

import (
	"testing"

	"megaglow/internal/graphics/graphicstest"

	"github.com/go-gl/mathgl/mgl32"
)

func testEffect() *Effect {
	return NewEffect("Test", map[string]*Shader{"Main": nil}, []Param{
		{"A", KindTexture},
		{"Scale", KindFloat},
		{"B", KindTexture},
		{"Weights", KindFloats},
		{"Offsets", KindVec2s},
	})
}

func TestEffectDeclarations(t *testing.T) {
	e := testEffect()
	if !e.HasTechnique("Main") || e.HasTechnique("Other") {
		t.Fatal("technique lookup")
	}
	for _, p := range []string{"A", "Scale", "B", "Weights", "Offsets"} {
		if !e.HasParameter(p) {
			t.Fatalf("missing parameter %s", p)
		}
	}
	if e.HasParameter("C") {
		t.Fatal("undeclared parameter reported")
	}
}

func TestEffectSamplerUnits(t *testing.T) {
	e := testEffect()
	if e.params["A"].unit != 0 || e.params["B"].unit != 1 {
		t.Fatalf("units: A=%d B=%d", e.params["A"].unit, e.params["B"].unit)
	}
}

func TestEffectSettersCheckDeclarations(t *testing.T) {
	e := testEffect()
	if err := e.SetFloat("Missing", 1); err == nil {
		t.Fatal("undeclared float accepted")
	}
	if err := e.SetFloat("A", 1); err == nil {
		t.Fatal("float accepted for a texture parameter")
	}
	if err := e.SetTexture("A", &Texture{ID: 3}); err != nil {
		t.Fatal(err)
	}
	if err := e.SetTexture("A", &graphicstest.Texture{}); err == nil {
		t.Fatal("foreign texture accepted")
	}
	if err := e.Apply("Other"); err == nil {
		t.Fatal("unknown technique applied")
	}
}

func TestEffectCopiesArrays(t *testing.T) {
	e := testEffect()
	w := []float32{0.25, 0.5, 0.25}
	if err := e.SetFloats("Weights", w); err != nil {
		t.Fatal(err)
	}
	w[0] = 9
	if e.params["Weights"].fs[0] != 0.25 {
		t.Fatal("weights aliased the caller's slice")
	}
	if err := e.SetVec2s("Offsets", []mgl32.Vec2{{1, 0}}); err != nil {
		t.Fatal(err)
	}
	if len(e.params["Offsets"].v2) != 1 {
		t.Fatal("offsets not stored")
	}
}

func TestEffectTexturesDoNotOutliveApply(t *testing.T) {
	e := testEffect()
	if err := e.SetTexture("A", &Texture{ID: 3}); err != nil {
		t.Fatal(err)
	}
	a, b := e.params["A"], e.params["B"]
	if id := a.takeTexture(); id != 3 {
		t.Fatalf("first take: got %d, want 3", id)
	}
	if id := a.takeTexture(); id != 0 {
		t.Fatalf("stale texture %d bound on the next pass", id)
	}
	if id := b.takeTexture(); id != 0 {
		t.Fatalf("unset texture bound as %d", id)
	}

	// A texture released between passes must not be rebound by ID.
	tex := &Texture{ID: 5}
	if err := e.SetTexture("B", tex); err != nil {
		t.Fatal(err)
	}
	if id := b.takeTexture(); id != 5 {
		t.Fatalf("got %d, want 5", id)
	}
	tex.ID = 0
	if b.tex != nil {
		t.Fatal("released texture still referenced")
	}
}
