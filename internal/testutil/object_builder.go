package testutil

import (
	"testing"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/model"
)

// ObjectBuilder provides a fluent helper for constructing model objects in tests.
// Example:
//
//	line := NewObjectBuilder("Line", "line").Param(NewParameterBuilder("m").Value(1)).Build(t, reg)
type ObjectBuilder struct {
	class    string
	name     string
	params   []*ParameterBuilder
	children []*ObjectBuilder
}

// NewObjectBuilder creates a builder for an empty object.
func NewObjectBuilder(class, name string) *ObjectBuilder {
	return &ObjectBuilder{class: class, name: name}
}

// Param appends a parameter component (chainable).
func (b *ObjectBuilder) Param(p *ParameterBuilder) *ObjectBuilder {
	b.params = append(b.params, p)
	return b
}

// Child appends a nested object component after all parameters (chainable).
func (b *ObjectBuilder) Child(c *ObjectBuilder) *ObjectBuilder {
	b.children = append(b.children, c)
	return b
}

// Build creates the object and its components in reg, failing the test on error.
func (b *ObjectBuilder) Build(tb testing.TB, reg *core.Registry) *model.Object {
	tb.Helper()
	comps := make([]model.Component, 0, len(b.params)+len(b.children))
	for _, p := range b.params {
		comps = append(comps, p.Build(tb, reg))
	}
	for _, c := range b.children {
		comps = append(comps, c.Build(tb, reg))
	}
	obj, err := model.NewObject(reg, b.class, b.name, comps...)
	if err != nil {
		tb.Fatalf("build object %q: %v", b.name, err)
	}
	return obj
}

// Line builds the two-parameter straight line y = m*x + c used across tests.
func Line(tb testing.TB, reg *core.Registry) *model.Object {
	tb.Helper()
	return NewObjectBuilder("Line", "line").
		Param(NewParameterBuilder("m").Value(1)).
		Param(NewParameterBuilder("c").Value(0)).
		Build(tb, reg)
}
