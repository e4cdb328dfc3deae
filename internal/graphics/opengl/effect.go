package opengl

import (
	"fmt"

	"megaglow/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ParamKind is the uniform type of an effect parameter.
type ParamKind int

const (
	KindTexture ParamKind = iota
	KindFloat
	KindFloats
	KindVec2s
)

// Param declares one effect parameter.
type Param struct {
	Name string
	Kind ParamKind
}

type paramValue struct {
	Param
	unit int32

	tex *Texture
	f   float32
	fs  []float32
	v2  []mgl32.Vec2
}

// Effect is a set of programs sharing one parameter table. Values are
// uploaded to the technique's program on Apply; uniforms a program does not
// use are ignored by GL.
type Effect struct {
	name       string
	techniques map[string]*Shader
	params     map[string]*paramValue
	order      []*paramValue
}

var _ graphics.Effect = (*Effect)(nil)

// NewEffect builds an effect from compiled technique programs. Textures get
// sampler units in declaration order.
func NewEffect(name string, techniques map[string]*Shader, params []Param) *Effect {
	e := &Effect{
		name:       name,
		techniques: techniques,
		params:     make(map[string]*paramValue, len(params)),
	}
	var unit int32
	for _, p := range params {
		v := &paramValue{Param: p}
		if p.Kind == KindTexture {
			v.unit = unit
			unit++
		}
		e.params[p.Name] = v
		e.order = append(e.order, v)
	}
	return e
}

func (e *Effect) Name() string { return e.name }

func (e *Effect) HasTechnique(name string) bool {
	_, ok := e.techniques[name]
	return ok
}

func (e *Effect) HasParameter(name string) bool {
	_, ok := e.params[name]
	return ok
}

func (e *Effect) param(name string, kind ParamKind) (*paramValue, error) {
	v, ok := e.params[name]
	if !ok {
		return nil, fmt.Errorf("%s: no parameter %q", e.name, name)
	}
	if v.Kind != kind {
		return nil, fmt.Errorf("%s: parameter %q has a different type", e.name, name)
	}
	return v, nil
}

func (e *Effect) SetTexture(name string, tex graphics.Texture) error {
	v, err := e.param(name, KindTexture)
	if err != nil {
		return err
	}
	t, ok := tex.(*Texture)
	if !ok {
		return fmt.Errorf("%s: %q: not an OpenGL texture", e.name, name)
	}
	v.tex = t
	return nil
}

func (e *Effect) SetFloat(name string, value float32) error {
	v, err := e.param(name, KindFloat)
	if err != nil {
		return err
	}
	v.f = value
	return nil
}

func (e *Effect) SetFloats(name string, values []float32) error {
	v, err := e.param(name, KindFloats)
	if err != nil {
		return err
	}
	v.fs = append(v.fs[:0], values...)
	return nil
}

func (e *Effect) SetVec2s(name string, values []mgl32.Vec2) error {
	v, err := e.param(name, KindVec2s)
	if err != nil {
		return err
	}
	v.v2 = append(v.v2[:0], values...)
	return nil
}

// takeTexture returns the texture set since the last Apply, or 0, and
// forgets it. A later technique only samples what its own caller set.
func (v *paramValue) takeTexture() uint32 {
	if v.tex == nil {
		return 0
	}
	id := v.tex.ID
	v.tex = nil
	return id
}

// Apply uploads the parameters and makes technique current. Texture
// parameters are consumed: each Apply binds only textures set after the
// previous one, and unit 0 for the rest.
func (e *Effect) Apply(technique string) error {
	s, ok := e.techniques[technique]
	if !ok {
		return fmt.Errorf("%s: no technique %q", e.name, technique)
	}
	s.Use()
	for _, v := range e.order {
		switch v.Kind {
		case KindTexture:
			gl.ActiveTexture(gl.TEXTURE0 + uint32(v.unit))
			gl.BindTexture(gl.TEXTURE_2D, v.takeTexture())
			s.SetInt(v.Name, v.unit)
		case KindFloat:
			s.SetFloat(v.Name, v.f)
		case KindFloats:
			s.SetFloats(v.Name, v.fs)
		case KindVec2s:
			s.SetVec2s(v.Name, v.v2)
		}
	}
	gl.ActiveTexture(gl.TEXTURE0)
	return nil
}

// Release deletes every technique program.
func (e *Effect) Release() {
	for _, s := range e.techniques {
		s.Delete()
	}
}
