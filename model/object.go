package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/variable"
)

// Component is anything an Object or Collection can hold.
type Component interface {
	core.Object
	Name() string
}

type parameterHolder interface {
	Parameters() []*variable.Parameter
}

type ownable interface {
	SetOwner(owner core.Object) error
}

var (
	_ Component       = (*variable.Descriptor)(nil)
	_ Component       = (*variable.Parameter)(nil)
	_ Component       = (*Object)(nil)
	_ parameterHolder = (*Object)(nil)
)

// Object is a named composite of components.
type Object struct {
	reg        *core.Registry
	id         uuid.UUID
	class      string
	name       string
	components []Component
	props      map[string]*core.Property[Component]
}

// NewObject creates an object of the given class and attaches components in
// order. Component names must be unique within the object.
func NewObject(reg *core.Registry, class, name string, components ...Component) (*Object, error) {
	o := &Object{
		reg:   reg,
		id:    uuid.New(),
		class: class,
		name:  name,
		props: map[string]*core.Property[Component]{},
	}
	if err := reg.Register(o, nil); err != nil {
		return nil, err
	}
	for _, c := range components {
		if err := o.AddComponent(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// ID returns the stable identity of the object.
func (o *Object) ID() uuid.UUID { return o.id }

// ClassName returns the class the object was created with.
func (o *Object) ClassName() string { return o.class }

// Name returns the object name.
func (o *Object) Name() string { return o.name }

// Registry returns the registry the object was created with.
func (o *Object) Registry() *core.Registry { return o.reg }

// AddComponent attaches c and links it in the graph.
func (o *Object) AddComponent(c Component) error {
	if _, ok := o.props[c.Name()]; ok {
		return fmt.Errorf("%s %q already has component %q", o.class, o.name, c.Name())
	}
	if ow, ok := c.(ownable); ok {
		if err := ow.SetOwner(o); err != nil {
			return err
		}
	} else if err := o.reg.Register(c, o); err != nil {
		return err
	}
	o.components = append(o.components, c)
	o.props[c.Name()] = core.NewProperty(o.reg, o, c.Name(), core.Accessor[Component]{
		Get: func() Component { return c },
		Set: func(Component) error {
			return fmt.Errorf("component %q of %s: %w", c.Name(), o.name, core.ErrUnsupportedOperation)
		},
	})
	return nil
}

// Component returns the named component through the observed accessor, so
// the caller's access is recorded in the script.
func (o *Object) Component(name string) (Component, error) {
	p, ok := o.props[name]
	if !ok {
		return nil, o.notFound("component", name, o.componentNames())
	}
	return p.Get(), nil
}

// Components returns the attached components in order.
func (o *Object) Components() []Component { return slices.Clone(o.components) }

// Parameters returns every parameter in the subtree, depth first.
func (o *Object) Parameters() []*variable.Parameter {
	return collectParameters(o.components)
}

// FitParameters returns the minimizer view of every enabled, non-fixed
// parameter in the subtree.
func (o *Object) FitParameters() []variable.FitParameter {
	return fitParameters(o.Parameters())
}

// Parameter looks up a parameter by name or by dotted path (see
// ParameterPaths). An unknown name yields ErrNotFound with the closest match.
func (o *Object) Parameter(name string) (*variable.Parameter, error) {
	params := o.Parameters()
	for _, p := range params {
		if p.Name() == name {
			return p, nil
		}
	}
	paths := o.ParameterPaths()
	for i, path := range paths {
		if path == name {
			return params[i], nil
		}
	}
	names := make([]string, 0, len(params)+len(paths))
	for _, p := range params {
		names = append(names, p.Name())
	}
	names = append(names, paths...)
	return nil, o.notFound("parameter", name, names)
}

// ParameterPaths returns the dotted path of every parameter in Parameters
// order, recovered from the graph route between the object and the
// parameter.
func (o *Object) ParameterPaths() []string {
	names := map[uuid.UUID]string{}
	collectNames(o.components, names)
	params := o.Parameters()
	out := make([]string, len(params))
	for i, p := range params {
		route := o.reg.Graph().ReverseRoute(p.ID(), o.id)
		parts := make([]string, 0, len(route))
		for j := len(route) - 2; j >= 0; j-- {
			parts = append(parts, names[route[j]])
		}
		if len(parts) == 0 {
			parts = append(parts, p.Name())
		}
		out[i] = strings.Join(parts, ".")
	}
	return out
}

func (o *Object) componentNames() []string {
	out := make([]string, len(o.components))
	for i, c := range o.components {
		out[i] = c.Name()
	}
	return out
}

func (o *Object) notFound(what, name string, candidates []string) error {
	if s := suggest(name, candidates); s != "" {
		return fmt.Errorf("%s %q in %s %q (did you mean %q?): %w", what, name, o.class, o.name, s, ErrNotFound)
	}
	return fmt.Errorf("%s %q in %s %q: %w", what, name, o.class, o.name, ErrNotFound)
}

func (o *Object) String() string {
	return fmt.Sprintf("<%s '%s'>", o.class, o.name)
}

// suggest returns the closest candidate within an edit distance of a third
// of the query length (at least 2), or "".
func suggest(name string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := max(2, len(name)/3)
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

func collectParameters(components []Component) []*variable.Parameter {
	var out []*variable.Parameter
	for _, c := range components {
		switch t := c.(type) {
		case *variable.Parameter:
			out = append(out, t)
		case parameterHolder:
			out = append(out, t.Parameters()...)
		}
	}
	return out
}

func collectNames(components []Component, names map[uuid.UUID]string) {
	for _, c := range components {
		names[c.ID()] = c.Name()
		switch t := c.(type) {
		case *Object:
			collectNames(t.components, names)
		case *Collection:
			collectNames(t.items, names)
		}
	}
}

func fitParameters(params []*variable.Parameter) []variable.FitParameter {
	var out []variable.FitParameter
	for _, p := range params {
		fp := p.FitParameter()
		if !fp.Vary || !p.Enabled() {
			continue
		}
		out = append(out, fp)
	}
	return out
}
