package variable

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/EasyScience/EasyCore-sub001/core"
)

// ParameterOptions configures a Parameter.
type ParameterOptions struct {
	DescriptorOptions
	Min   float64
	Max   float64
	Error float64
	Fixed bool
}

// DefaultParameterOptions returns an enabled, unbounded, free configuration.
func DefaultParameterOptions() ParameterOptions {
	return ParameterOptions{
		DescriptorOptions: DefaultDescriptorOptions(),
		Min:               math.Inf(-1),
		Max:               math.Inf(1),
	}
}

// QuickSetOptions selects which constraint tiers QuickSet evaluates.
type QuickSetOptions struct {
	User     bool
	Physical bool
	Builtin  bool
}

// FitParameter is the view of a parameter handed to minimizer adapters.
type FitParameter struct {
	ID       uuid.UUID
	Name     string
	Value    float64
	Error    float64
	Vary     bool
	Min      float64
	Max      float64
	UserData map[string]any
}

type namedConstraint struct {
	name string
	c    Constraint
}

// Parameter is a fittable float Descriptor with bounds and constraints.
type Parameter struct {
	*Descriptor

	min     float64
	max     float64
	err     float64
	fixed   bool
	initial float64

	tiers      [len(tierOrder)][]namedConstraint
	watchers   []*Parameter
	refreshing bool

	floatProp *core.Property[float64]
	minProp   *core.Property[float64]
	maxProp   *core.Property[float64]
	errorProp *core.Property[float64]
	fixedProp *core.Property[bool]
}

var _ core.Object = (*Parameter)(nil)

// NewParameter creates a parameter and registers it as a created object.
// The value must lie within [Min, Max] and Error must be non-negative.
func NewParameter(reg *core.Registry, name string, value float64, optFns ...func(o *ParameterOptions)) (*Parameter, error) {
	opts := DefaultParameterOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if math.IsNaN(opts.Min) || math.IsNaN(opts.Max) || math.IsNaN(value) ||
		opts.Min > opts.Max || value < opts.Min || value > opts.Max {
		return nil, &BoundsError{Parameter: name, Value: value, Min: opts.Min, Max: opts.Max}
	}
	if opts.Error < 0 {
		return nil, fmt.Errorf("parameter %q: %w", name, ErrNegativeError)
	}

	p := &Parameter{
		Descriptor: newDescriptor(reg, "Parameter", name, KindFloat, value, opts.DescriptorOptions),
		min:        opts.Min,
		max:        opts.Max,
		err:        opts.Error,
		fixed:      opts.Fixed,
		initial:    value,
	}
	p.tiers[TierBuiltin] = []namedConstraint{
		{name: "min", c: NewSelfConstraint(p, OpGE, AttrMin)},
		{name: "max", c: NewSelfConstraint(p, OpLE, AttrMax)},
	}
	p.Descriptor.setValue = func(v any) error {
		f, err := KindFloat.Coerce(v)
		if err != nil {
			return fmt.Errorf("set %q: %w", name, err)
		}
		return p.SetValue(f.(float64))
	}

	p.floatProp = core.NewProperty(reg, p.Descriptor, "value", core.Accessor[float64]{
		Get: p.RawValue,
		Set: p.setRaw,
	}, func(o *core.PropertyOptions[float64]) {
		o.Undoable = true
		o.Coerce = func(v float64) (float64, error) { return p.resolve(v, QuickSetOptions{User: true, Physical: true, Builtin: true}), nil }
	})
	p.minProp = core.NewProperty(reg, p.Descriptor, "min", core.Accessor[float64]{
		Get: func() float64 { return p.min },
		Set: func(v float64) error { p.min = v; return nil },
	}, func(o *core.PropertyOptions[float64]) {
		o.Undoable = true
		o.Coerce = func(v float64) (float64, error) {
			if math.IsNaN(v) || v > p.RawValue() {
				return 0, &BoundsError{Parameter: p.name, Value: p.RawValue(), Min: v, Max: p.max}
			}
			return v, nil
		}
	})
	p.maxProp = core.NewProperty(reg, p.Descriptor, "max", core.Accessor[float64]{
		Get: func() float64 { return p.max },
		Set: func(v float64) error { p.max = v; return nil },
	}, func(o *core.PropertyOptions[float64]) {
		o.Undoable = true
		o.Coerce = func(v float64) (float64, error) {
			if math.IsNaN(v) || v < p.RawValue() {
				return 0, &BoundsError{Parameter: p.name, Value: p.RawValue(), Min: p.min, Max: v}
			}
			return v, nil
		}
	})
	p.errorProp = core.NewProperty(reg, p.Descriptor, "error", core.Accessor[float64]{
		Get: func() float64 { return p.err },
		Set: func(v float64) error { p.err = v; return nil },
	}, func(o *core.PropertyOptions[float64]) {
		o.Undoable = true
		o.Coerce = func(v float64) (float64, error) {
			if v < 0 {
				return 0, ErrNegativeError
			}
			return v, nil
		}
	})
	p.fixedProp = core.NewProperty(reg, p.Descriptor, "fixed", core.Accessor[bool]{
		Get: func() bool { return p.fixed },
		Set: func(b bool) error { p.fixed = b; return nil },
	}, func(o *core.PropertyOptions[bool]) { o.Undoable = true })

	if err := reg.Register(p, opts.Owner); err != nil {
		return nil, err
	}
	return p, nil
}

// Value returns the current value through the observed accessor.
func (p *Parameter) Value() float64 { return p.floatProp.Get() }

// RawValue returns the current value without recording anything.
func (p *Parameter) RawValue() float64 { return p.value.(float64) }

// SetValue passes v through the constraint tiers and stores the result as an
// undoable change. Setting a disabled parameter does nothing and returns an
// error only in debug mode.
func (p *Parameter) SetValue(v float64) error {
	if !p.enabled {
		return p.reg.Unsupported(fmt.Sprintf("set %s: not enabled", p))
	}
	if err := p.floatProp.Set(v); err != nil {
		return fmt.Errorf("set %q: %w", p.name, err)
	}
	return nil
}

// QuickSet stores v bypassing script, undo and the enabled flag. Only the
// tiers selected in opts are evaluated. Dependent parameters are refreshed
// when the user tier is evaluated.
func (p *Parameter) QuickSet(v float64, opts QuickSetOptions) {
	p.value = p.resolve(v, opts)
	if opts.User {
		_ = p.notify()
	}
}

// InitialValue returns the value the parameter was created with.
func (p *Parameter) InitialValue() float64 { return p.initial }

// Min returns the lower bound.
func (p *Parameter) Min() float64 { return p.minProp.Get() }

// SetMin changes the lower bound as an undoable change. It fails with a
// *BoundsError when the current value lies below min.
func (p *Parameter) SetMin(min float64) error { return p.minProp.Set(min) }

// Max returns the upper bound.
func (p *Parameter) Max() float64 { return p.maxProp.Get() }

// SetMax changes the upper bound as an undoable change. It fails with a
// *BoundsError when the current value lies above max.
func (p *Parameter) SetMax(max float64) error { return p.maxProp.Set(max) }

// Bounds returns (min, max) without recording anything.
func (p *Parameter) Bounds() (float64, float64) { return p.min, p.max }

// SetBounds sets both bounds, enables the parameter and frees it, grouped
// into a single undo step.
func (p *Parameter) SetBounds(min, max float64) (err error) {
	st := p.reg.Stack()
	if st.Enabled() && !st.MacroOpen() {
		if err := st.BeginMacro("Setting bounds"); err != nil {
			return err
		}
		defer func() { err = errors.Join(err, st.EndMacro()) }()
	}
	if err := p.SetMin(min); err != nil {
		return err
	}
	if err := p.SetMax(max); err != nil {
		return err
	}
	if !p.enabled {
		if err := p.SetEnabled(true); err != nil {
			return err
		}
	}
	return p.SetFixed(false)
}

// Error returns the standard deviation.
func (p *Parameter) Error() float64 { return p.errorProp.Get() }

// SetError changes the standard deviation as an undoable change.
func (p *Parameter) SetError(sigma float64) error {
	if err := p.errorProp.Set(sigma); err != nil {
		return fmt.Errorf("set error of %q: %w", p.name, err)
	}
	return nil
}

// Fixed reports whether the parameter is excluded from fitting.
func (p *Parameter) Fixed() bool { return p.fixedProp.Get() }

// SetFixed toggles the fixed flag as an undoable change. Like SetValue it is
// a no-op on a disabled parameter.
func (p *Parameter) SetFixed(fixed bool) error {
	if !p.enabled {
		return p.reg.Unsupported(fmt.Sprintf("fix %s: not enabled", p))
	}
	return p.fixedProp.Set(fixed)
}

// AddConstraint installs c under name in tier, replacing any constraint of
// the same name, and re-evaluates the current value. The builtin tier is
// read-only.
func (p *Parameter) AddConstraint(tier Tier, name string, c Constraint) error {
	if tier == TierBuiltin {
		return fmt.Errorf("add %q to %s: %w", name, p.name, ErrBuiltinTier)
	}
	if tier < 0 || int(tier) >= len(p.tiers) {
		return fmt.Errorf("add %q to %s: unknown tier %d", name, p.name, tier)
	}
	p.RemoveConstraint(tier, name)
	p.tiers[tier] = append(p.tiers[tier], namedConstraint{name: name, c: c})
	if dep, ok := c.(dependency); ok {
		for _, ind := range dep.Independents() {
			ind.watch(p)
		}
	}
	return p.refresh()
}

// RemoveConstraint deletes the named constraint from tier.
func (p *Parameter) RemoveConstraint(tier Tier, name string) bool {
	if tier == TierBuiltin || tier < 0 || int(tier) >= len(p.tiers) {
		return false
	}
	i := slices.IndexFunc(p.tiers[tier], func(nc namedConstraint) bool { return nc.name == name })
	if i < 0 {
		return false
	}
	if dep, ok := p.tiers[tier][i].c.(dependency); ok {
		for _, ind := range dep.Independents() {
			ind.unwatch(p)
		}
	}
	p.tiers[tier] = slices.Delete(p.tiers[tier], i, i+1)
	return true
}

// Constraint returns the named constraint of tier.
func (p *Parameter) Constraint(tier Tier, name string) (Constraint, bool) {
	if tier < 0 || int(tier) >= len(p.tiers) {
		return nil, false
	}
	for _, nc := range p.tiers[tier] {
		if nc.name == name {
			return nc.c, true
		}
	}
	return nil, false
}

// ConstraintNames lists the constraints of tier in evaluation order.
func (p *Parameter) ConstraintNames(tier Tier) []string {
	if tier < 0 || int(tier) >= len(p.tiers) {
		return nil
	}
	out := make([]string, len(p.tiers[tier]))
	for i, nc := range p.tiers[tier] {
		out[i] = nc.name
	}
	return out
}

// FitParameter returns the minimizer view of the parameter.
func (p *Parameter) FitParameter() FitParameter {
	return FitParameter{
		ID:       p.id,
		Name:     p.name,
		Value:    p.RawValue(),
		Error:    p.err,
		Vary:     !p.fixed,
		Min:      p.min,
		Max:      p.max,
		UserData: maps.Clone(p.userData),
	}
}

// ToMap serializes the parameter including its fitting fields.
func (p *Parameter) ToMap() map[string]any {
	m := p.Descriptor.ToMap()
	m["min"] = p.min
	m["max"] = p.max
	m["error"] = p.err
	m["fixed"] = p.fixed
	return m
}

func (p *Parameter) String() string {
	s := p.Descriptor.String()
	s = s[:len(s)-1]
	if p.fixed {
		s += " (fixed)"
	}
	return fmt.Sprintf("%s, bounds=[%g:%g]>", s, p.min, p.max)
}

// resolve pipes v through the selected tiers. Each enabled constraint sees
// the output of the previous one, so the last one that matches wins.
func (p *Parameter) resolve(v float64, opts QuickSetOptions) float64 {
	run := map[Tier]bool{TierUser: opts.User, TierPhysical: opts.Physical, TierBuiltin: opts.Builtin}
	for _, tier := range tierOrder {
		if !run[tier] {
			continue
		}
		for _, nc := range p.tiers[tier] {
			if !nc.c.Enabled() {
				continue
			}
			if out, ok := nc.c.Apply(v); ok {
				if out != v && p.reg.Debug() {
					p.reg.LogDebug("constraint applied", "parameter", p.name, "constraint", nc.c.String(), "value", out)
				}
				v = out
			}
		}
	}
	return v
}

func (p *Parameter) setRaw(v float64) error {
	p.value = v
	return p.notify()
}

// refresh re-evaluates the current value and stores the result without
// recording anything.
func (p *Parameter) refresh() error {
	if p.refreshing {
		return nil
	}
	p.refreshing = true
	defer func() { p.refreshing = false }()
	return p.setRaw(p.resolve(p.RawValue(), QuickSetOptions{User: true, Physical: true, Builtin: true}))
}

func (p *Parameter) notify() error {
	var errs []error
	for _, w := range p.watchers {
		errs = append(errs, w.refresh())
	}
	return errors.Join(errs...)
}

func (p *Parameter) watch(dependent *Parameter) {
	if !slices.Contains(p.watchers, dependent) {
		p.watchers = append(p.watchers, dependent)
	}
}

func (p *Parameter) unwatch(dependent *Parameter) {
	p.watchers = slices.DeleteFunc(p.watchers, func(w *Parameter) bool { return w == dependent })
}
