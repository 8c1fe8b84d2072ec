package core

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/EasyScience/EasyCore-sub001/graph"
	"github.com/EasyScience/EasyCore-sub001/undo"
)

// Accessor is the raw getter/setter pair of a property. Its methods bypass
// the registry entirely.
type Accessor[T any] struct {
	Get func() T
	Set func(T) error
}

// PropertyOptions configures a Property.
type PropertyOptions[T any] struct {
	// Undoable routes value changes through the registry's undo stack.
	Undoable bool
	// Coerce validates and transforms an incoming value before it is stored.
	// It runs after the script statement is recorded.
	Coerce func(T) (T, error)
	// Equal decides whether a set is a change. Defaults to reflect.DeepEqual.
	Equal func(a, b T) bool
	// Label builds the undo label for a change from old to new.
	Label func(old, new T) string
}

// Property is the observed accessor of one named attribute of an owner.
//
// Get and Set form the external API: they record script statements,
// classify touched objects in the graph and, for undoable properties, push
// commands. Raw returns the unobserved accessor used internally.
type Property[T any] struct {
	reg   *Registry
	owner Object
	name  string
	raw   Accessor[T]
	opts  PropertyOptions[T]
}

// NewProperty composes an observed property over raw.
func NewProperty[T any](reg *Registry, owner Object, name string, raw Accessor[T], optFns ...func(o *PropertyOptions[T])) *Property[T] {
	opts := PropertyOptions[T]{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Equal == nil {
		opts.Equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}
	return &Property[T]{reg: reg, owner: owner, name: name, raw: raw, opts: opts}
}

// Name returns the attribute name.
func (p *Property[T]) Name() string { return p.name }

// Raw returns the unobserved accessor.
func (p *Property[T]) Raw() Accessor[T] { return p.raw }

// Get returns the current value. With scripting enabled every Object in the
// result is classified as returned and a statement is recorded.
func (p *Property[T]) Get() T {
	v := p.raw.Get()
	if !p.reg.script.Enabled() {
		return v
	}
	returned := objectsOf(v)
	for _, o := range returned {
		p.reg.graph.Promote(o.ID(), graph.RoleReturned)
	}
	p.reg.script.AppendLog(p.getEntry(returned))
	if p.reg.debug {
		p.reg.LogDebug("property.get", "owner", p.reg.Alias(p.owner), "property", p.name)
	}
	return v
}

// Set stores v. With scripting enabled a statement is recorded first. An
// undoable property pushes a PropertyCommand when the value changes, so the
// push performs the store; otherwise the raw setter is called directly.
// Errors from the raw accessor are returned unchanged.
func (p *Property[T]) Set(v T) error {
	if p.reg.script.Enabled() {
		p.reg.script.AppendLog(fmt.Sprintf("%s.%s = %s", p.reg.Alias(p.owner), p.name, p.literal(v)))
		if p.reg.debug {
			p.reg.LogDebug("property.set", "owner", p.reg.Alias(p.owner), "property", p.name, "value", v)
		}
	}
	if p.opts.Coerce != nil {
		cv, err := p.opts.Coerce(v)
		if err != nil {
			return err
		}
		v = cv
	}
	if !p.opts.Undoable {
		return p.raw.Set(v)
	}
	old := p.raw.Get()
	if p.opts.Equal(old, v) {
		return p.raw.Set(v)
	}
	label := ""
	if p.opts.Label != nil {
		label = p.opts.Label(old, v)
	}
	return p.reg.Stack().Push(undo.NewPropertyCommand(p.raw.Set, old, v, label))
}

func (p *Property[T]) getEntry(returned []Object) string {
	var b strings.Builder
	if len(returned) > 0 {
		aliases := make([]string, len(returned))
		for i, o := range returned {
			aliases[i] = p.reg.Alias(o)
		}
		b.WriteString(strings.Join(aliases, ", "))
		b.WriteString(" = ")
	}
	b.WriteString(p.reg.Alias(p.owner))
	b.WriteString(".")
	b.WriteString(p.name)
	return b.String()
}

// literal renders v for a set statement. Objects are registered as
// arguments when first seen and rendered by alias; strings are quoted.
func (p *Property[T]) literal(v T) string {
	if objs := objectsOf(any(v)); len(objs) > 0 {
		if _, single := any(v).(Object); single {
			return p.reg.argumentAlias(objs[0])
		}
		aliases := make([]string, len(objs))
		for i, o := range objs {
			aliases[i] = p.reg.argumentAlias(o)
		}
		return "[" + strings.Join(aliases, ", ") + "]"
	}
	switch t := any(v).(type) {
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func (r *Registry) argumentAlias(o Object) string {
	if !r.graph.IsKnown(o.ID()) {
		r.graph.AddVertex(o.ID(), graph.RoleArgument)
	}
	return r.Alias(o)
}
