package variable

import (
	"fmt"
	"slices"
)

// Op is a comparison operator used by bound-style constraints.
type Op string

const (
	OpLT Op = "<"
	OpLE Op = "<="
	OpGT Op = ">"
	OpGE Op = ">="
	OpEQ Op = "=="
)

// ParseOp validates an operator string.
func ParseOp(s string) (Op, error) {
	switch op := Op(s); op {
	case OpLT, OpLE, OpGT, OpGE, OpEQ:
		return op, nil
	case "=":
		return OpEQ, nil
	}
	return "", fmt.Errorf("unknown operator %q", s)
}

// Holds reports whether "a op b" is true.
func (o Op) Holds(a, b float64) bool {
	switch o {
	case OpLT:
		return a < b
	case OpLE:
		return a <= b
	case OpGT:
		return a > b
	case OpGE:
		return a >= b
	case OpEQ:
		return a == b
	default:
		return false
	}
}

// Tier groups constraints. Tiers are evaluated in declaration order.
type Tier int

const (
	TierUser Tier = iota
	TierPhysical
	TierBuiltin
)

var tierOrder = [...]Tier{TierUser, TierPhysical, TierBuiltin}

func (t Tier) String() string {
	switch t {
	case TierUser:
		return "user"
	case TierPhysical:
		return "physical"
	case TierBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Constraint maps a candidate value to the value a parameter should store.
type Constraint interface {
	fmt.Stringer
	Enabled() bool
	SetEnabled(enabled bool)
	// Apply evaluates the constraint against candidate. When it matches it
	// returns the replacement value and true.
	Apply(candidate float64) (float64, bool)
}

// dependency is implemented by constraints whose result depends on other
// parameters; the dependent is refreshed whenever one of them changes.
type dependency interface {
	Independents() []*Parameter
}

type constraintBase struct {
	enabled bool
}

func (c *constraintBase) Enabled() bool           { return c.enabled }
func (c *constraintBase) SetEnabled(enabled bool) { c.enabled = enabled }

// NumericConstraint requires "value op Bound"; a violating candidate is
// replaced by Bound.
type NumericConstraint struct {
	constraintBase
	Op    Op
	Bound float64
}

var _ Constraint = (*NumericConstraint)(nil)

// NewNumericConstraint returns an enabled numeric constraint.
func NewNumericConstraint(op Op, bound float64) *NumericConstraint {
	return &NumericConstraint{constraintBase: constraintBase{enabled: true}, Op: op, Bound: bound}
}

func (c *NumericConstraint) Apply(candidate float64) (float64, bool) {
	if c.Op.Holds(candidate, c.Bound) {
		return candidate, false
	}
	return c.Bound, true
}

func (c *NumericConstraint) String() string {
	return fmt.Sprintf("NumericConstraint with `value` %s %g", c.Op, c.Bound)
}

// BoundAttr names the parameter attribute a SelfConstraint compares against.
type BoundAttr string

const (
	AttrMin BoundAttr = "min"
	AttrMax BoundAttr = "max"
)

// SelfConstraint requires "value op p.<Attr>" against the parameter's own
// bound; a violating candidate is replaced by the bound.
type SelfConstraint struct {
	constraintBase
	Op    Op
	Attr  BoundAttr
	param *Parameter
}

var _ Constraint = (*SelfConstraint)(nil)

// NewSelfConstraint returns an enabled constraint comparing against p's attr.
func NewSelfConstraint(p *Parameter, op Op, attr BoundAttr) *SelfConstraint {
	return &SelfConstraint{constraintBase: constraintBase{enabled: true}, Op: op, Attr: attr, param: p}
}

func (c *SelfConstraint) bound() float64 {
	if c.Attr == AttrMax {
		return c.param.max
	}
	return c.param.min
}

func (c *SelfConstraint) Apply(candidate float64) (float64, bool) {
	b := c.bound()
	if c.Op.Holds(candidate, b) {
		return candidate, false
	}
	return b, true
}

func (c *SelfConstraint) String() string {
	return fmt.Sprintf("SelfConstraint with `value` %s obj.%s", c.Op, c.Attr)
}

// ObjConstraint ties a dependent parameter to another parameter:
// dependent = Scale*independent + Offset.
type ObjConstraint struct {
	constraintBase
	Scale       float64
	Offset      float64
	independent *Parameter
}

var (
	_ Constraint = (*ObjConstraint)(nil)
	_ dependency = (*ObjConstraint)(nil)
)

// NewObjConstraint returns an enabled constraint following independent.
func NewObjConstraint(independent *Parameter, scale, offset float64) *ObjConstraint {
	return &ObjConstraint{constraintBase: constraintBase{enabled: true}, Scale: scale, Offset: offset, independent: independent}
}

func (c *ObjConstraint) Apply(float64) (float64, bool) {
	return c.Scale*c.independent.RawValue() + c.Offset, true
}

// Independents returns the followed parameter.
func (c *ObjConstraint) Independents() []*Parameter { return []*Parameter{c.independent} }

func (c *ObjConstraint) String() string {
	return fmt.Sprintf("ObjConstraint with `dependent_obj` = %g * `%s` + %g", c.Scale, c.independent.Name(), c.Offset)
}

// MultiObjConstraint sets dependent = Value - sum(Coefficients[i]*independents[i]).
type MultiObjConstraint struct {
	constraintBase
	Coefficients []float64
	Value        float64
	independents []*Parameter
}

var (
	_ Constraint = (*MultiObjConstraint)(nil)
	_ dependency = (*MultiObjConstraint)(nil)
)

// NewMultiObjConstraint returns an enabled constraint over independents. The
// number of coefficients must match the number of independents.
func NewMultiObjConstraint(independents []*Parameter, coefficients []float64, value float64) (*MultiObjConstraint, error) {
	if len(independents) != len(coefficients) {
		return nil, fmt.Errorf("multi object constraint: %d independents but %d coefficients", len(independents), len(coefficients))
	}
	return &MultiObjConstraint{
		constraintBase: constraintBase{enabled: true},
		Coefficients:   slices.Clone(coefficients),
		Value:          value,
		independents:   slices.Clone(independents),
	}, nil
}

func (c *MultiObjConstraint) Apply(float64) (float64, bool) {
	v := c.Value
	for i, p := range c.independents {
		v -= c.Coefficients[i] * p.RawValue()
	}
	return v, true
}

// Independents returns the parameters the constraint sums over.
func (c *MultiObjConstraint) Independents() []*Parameter { return slices.Clone(c.independents) }

func (c *MultiObjConstraint) String() string {
	return fmt.Sprintf("MultiObjConstraint over %d parameters", len(c.independents))
}

// FunctionalConstraint computes the stored value with an arbitrary function.
// With no independents fn receives the candidate; otherwise it receives the
// current values of the independents in order.
type FunctionalConstraint struct {
	constraintBase
	fn           func(values ...float64) float64
	independents []*Parameter
}

var (
	_ Constraint = (*FunctionalConstraint)(nil)
	_ dependency = (*FunctionalConstraint)(nil)
)

// NewFunctionalConstraint returns an enabled functional constraint.
func NewFunctionalConstraint(fn func(values ...float64) float64, independents ...*Parameter) *FunctionalConstraint {
	return &FunctionalConstraint{constraintBase: constraintBase{enabled: true}, fn: fn, independents: independents}
}

func (c *FunctionalConstraint) Apply(candidate float64) (float64, bool) {
	if len(c.independents) == 0 {
		return c.fn(candidate), true
	}
	args := make([]float64, len(c.independents))
	for i, p := range c.independents {
		args[i] = p.RawValue()
	}
	return c.fn(args...), true
}

// Independents returns the parameters passed to the function.
func (c *FunctionalConstraint) Independents() []*Parameter { return slices.Clone(c.independents) }

func (c *FunctionalConstraint) String() string { return "FunctionalConstraint" }
