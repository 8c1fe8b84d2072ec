package testutil

import (
	"testing"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/variable"
)

// ParameterBuilder provides a fluent helper for constructing parameters in tests.
// Example:
//
//	p := NewParameterBuilder("m").Value(1).Bounds(0, 10).Build(t, reg)
//
// Chain only the parts you need; unset fields keep the parameter defaults.
type ParameterBuilder struct {
	name   string
	value  float64
	optFns []func(o *variable.ParameterOptions)
}

// NewParameterBuilder creates a builder for a free, unbounded parameter with value 0.
func NewParameterBuilder(name string) *ParameterBuilder { return &ParameterBuilder{name: name} }

// Value sets the initial value (chainable).
func (b *ParameterBuilder) Value(v float64) *ParameterBuilder { b.value = v; return b }

// Bounds sets min and max (chainable).
func (b *ParameterBuilder) Bounds(min, max float64) *ParameterBuilder {
	b.optFns = append(b.optFns, func(o *variable.ParameterOptions) { o.Min, o.Max = min, max })
	return b
}

// Fixed marks the parameter as fixed (chainable).
func (b *ParameterBuilder) Fixed() *ParameterBuilder {
	b.optFns = append(b.optFns, func(o *variable.ParameterOptions) { o.Fixed = true })
	return b
}

// Error sets the standard deviation (chainable).
func (b *ParameterBuilder) Error(sigma float64) *ParameterBuilder {
	b.optFns = append(b.optFns, func(o *variable.ParameterOptions) { o.Error = sigma })
	return b
}

// Unit sets the unit (chainable).
func (b *ParameterBuilder) Unit(u string) *ParameterBuilder {
	b.optFns = append(b.optFns, func(o *variable.ParameterOptions) { o.Unit = u })
	return b
}

// Build creates the parameter in reg, failing the test on error.
func (b *ParameterBuilder) Build(tb testing.TB, reg *core.Registry) *variable.Parameter {
	tb.Helper()
	p, err := variable.NewParameter(reg, b.name, b.value, b.optFns...)
	if err != nil {
		tb.Fatalf("build parameter %q: %v", b.name, err)
	}
	return p
}
