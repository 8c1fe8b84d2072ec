package variable

import (
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/EasyScience/EasyCore-sub001/core"
)

// DescriptorOptions configures a Descriptor.
type DescriptorOptions struct {
	Unit        string
	Description string
	URL         string
	// DisplayName defaults to the descriptor name.
	DisplayName string
	Enabled     bool
	// Owner is the parent object; it gains a graph edge to the descriptor.
	Owner core.Object
}

// DefaultDescriptorOptions returns an enabled, unit-less configuration.
func DefaultDescriptorOptions() DescriptorOptions {
	return DescriptorOptions{Enabled: true}
}

// Descriptor is a named, typed scalar with metadata.
type Descriptor struct {
	reg   *core.Registry
	id    uuid.UUID
	class string
	name  string
	kind  Kind

	value       any
	unit        string
	description string
	url         string
	displayName string
	enabled     bool
	userData    map[string]any
	owner       core.Object

	valueProp       *core.Property[any]
	// setValue replaces the generic value path for embedding types.
	setValue func(v any) error
	unitProp        *core.Property[string]
	displayNameProp *core.Property[string]
	enabledProp     *core.Property[bool]
}

var _ core.Object = (*Descriptor)(nil)

// NewDescriptor creates a descriptor holding value and registers it as a
// created object. The kind is inferred from value.
func NewDescriptor(reg *core.Registry, name string, value any, optFns ...func(o *DescriptorOptions)) (*Descriptor, error) {
	opts := DefaultDescriptorOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	kind, err := KindOf(value)
	if err != nil {
		return nil, fmt.Errorf("descriptor %q: %w", name, err)
	}
	value, err = kind.Coerce(value)
	if err != nil {
		return nil, fmt.Errorf("descriptor %q: %w", name, err)
	}
	d := newDescriptor(reg, "Descriptor", name, kind, value, opts)
	if err := reg.Register(d, opts.Owner); err != nil {
		return nil, err
	}
	return d, nil
}

func newDescriptor(reg *core.Registry, class, name string, kind Kind, value any, opts DescriptorOptions) *Descriptor {
	d := &Descriptor{
		reg:         reg,
		id:          uuid.New(),
		class:       class,
		name:        name,
		kind:        kind,
		value:       value,
		unit:        opts.Unit,
		description: opts.Description,
		url:         opts.URL,
		displayName: opts.DisplayName,
		enabled:     opts.Enabled,
		userData:    map[string]any{},
		owner:       opts.Owner,
	}
	d.valueProp = core.NewProperty(reg, d, "value", core.Accessor[any]{
		Get: func() any { return d.value },
		Set: func(v any) error { d.value = v; return nil },
	}, func(o *core.PropertyOptions[any]) {
		o.Undoable = true
		o.Coerce = d.kind.Coerce
	})
	d.unitProp = core.NewProperty(reg, d, "unit", core.Accessor[string]{
		Get: func() string { return d.unit },
		Set: func(u string) error { d.unit = u; return nil },
	}, undoableString)
	d.displayNameProp = core.NewProperty(reg, d, "display_name", core.Accessor[string]{
		Get: d.DisplayName,
		Set: func(s string) error { d.displayName = s; return nil },
	}, undoableString)
	d.enabledProp = core.NewProperty(reg, d, "enabled", core.Accessor[bool]{
		Get: func() bool { return d.enabled },
		Set: func(b bool) error { d.enabled = b; return nil },
	}, func(o *core.PropertyOptions[bool]) { o.Undoable = true })
	return d
}

func undoableString(o *core.PropertyOptions[string]) { o.Undoable = true }

// ID returns the stable identity of the descriptor.
func (d *Descriptor) ID() uuid.UUID { return d.id }

// ClassName returns "Descriptor" or the name of the embedding type.
func (d *Descriptor) ClassName() string { return d.class }

// Name returns the descriptor name.
func (d *Descriptor) Name() string { return d.name }

// Kind returns the scalar kind.
func (d *Descriptor) Kind() Kind { return d.kind }

// Value returns the current value through the observed accessor.
func (d *Descriptor) Value() any { return d.valueProp.Get() }

// RawValue returns the current value without recording anything.
func (d *Descriptor) RawValue() any { return d.value }

// SetValue type-checks v and stores it as an undoable change. Setting a
// disabled descriptor does nothing and returns an error only in debug mode.
func (d *Descriptor) SetValue(v any) error {
	if d.setValue != nil {
		return d.setValue(v)
	}
	if !d.enabled {
		return d.reg.Unsupported(fmt.Sprintf("set %s: not enabled", d))
	}
	if err := d.valueProp.Set(v); err != nil {
		return fmt.Errorf("set %q: %w", d.name, err)
	}
	return nil
}

// Unit returns the unit string.
func (d *Descriptor) Unit() string { return d.unitProp.Get() }

// SetUnit changes the unit as an undoable change.
func (d *Descriptor) SetUnit(unit string) error { return d.unitProp.Set(unit) }

// DisplayName returns the display name, falling back to the name.
func (d *Descriptor) DisplayName() string {
	if d.displayName == "" {
		return d.name
	}
	return d.displayName
}

// SetDisplayName changes the display name as an undoable change.
func (d *Descriptor) SetDisplayName(name string) error { return d.displayNameProp.Set(name) }

// Description returns the free-text description.
func (d *Descriptor) Description() string { return d.description }

// SetDescription replaces the description.
func (d *Descriptor) SetDescription(s string) { d.description = s }

// URL returns the documentation link.
func (d *Descriptor) URL() string { return d.url }

// SetURL replaces the documentation link.
func (d *Descriptor) SetURL(s string) { d.url = s }

// Enabled reports whether the value may be set.
func (d *Descriptor) Enabled() bool { return d.enabled }

// SetEnabled toggles whether the value may be set, as an undoable change.
func (d *Descriptor) SetEnabled(enabled bool) error { return d.enabledProp.Set(enabled) }

// UserData returns the open metadata map. The map is owned by the descriptor
// and may be modified in place.
func (d *Descriptor) UserData() map[string]any { return d.userData }

// Owner returns the parent object, or nil.
func (d *Descriptor) Owner() core.Object { return d.owner }

// SetOwner re-parents the descriptor in the graph.
func (d *Descriptor) SetOwner(owner core.Object) error {
	if d.owner != nil {
		d.reg.Graph().PruneEdge(d.owner.ID(), d.id)
	}
	d.owner = owner
	if owner == nil {
		return nil
	}
	return d.reg.Register(d, owner)
}

// Registry returns the registry the descriptor was created with.
func (d *Descriptor) Registry() *core.Registry { return d.reg }

// ToMap serializes the descriptor. The "@id" entry carries the identity.
func (d *Descriptor) ToMap() map[string]any {
	m := map[string]any{
		"@class":       d.class,
		"@id":          d.id.String(),
		"name":         d.name,
		"value":        d.value,
		"units":        d.unit,
		"description":  d.description,
		"url":          d.url,
		"display_name": d.DisplayName(),
		"enabled":      d.enabled,
	}
	if len(d.userData) > 0 {
		m["user_data"] = maps.Clone(d.userData)
	}
	return m
}

func (d *Descriptor) String() string {
	v := d.value
	if f, ok := v.(float64); ok {
		v = fmt.Sprintf("%0.4f", f)
	}
	unit := ""
	if d.unit != "" {
		unit = " " + d.unit
	}
	return fmt.Sprintf("<%s '%s': %v%s>", d.class, d.name, v, unit)
}
