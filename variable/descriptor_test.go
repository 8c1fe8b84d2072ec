package variable

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/graph"
)

type owner struct{ id uuid.UUID }

func (o *owner) ID() uuid.UUID     { return o.id }
func (o *owner) ClassName() string { return "Sample" }

func TestNewDescriptor_InfersKind(t *testing.T) {
	reg := core.NewRegistry()
	for _, tt := range []struct {
		value any
		kind  Kind
		want  any
	}{
		{true, KindBool, true},
		{3, KindInt, int64(3)},
		{2.5, KindFloat, 2.5},
		{"red", KindString, "red"},
	} {
		d, err := NewDescriptor(reg, "d", tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, d.Kind())
		assert.Equal(t, tt.want, d.RawValue())
	}

	_, err := NewDescriptor(reg, "d", []int{1})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestDescriptor_SetValueTypeCheck(t *testing.T) {
	reg := core.NewRegistry()
	d, err := NewDescriptor(reg, "colour", "red")
	require.NoError(t, err)

	assert.ErrorIs(t, d.SetValue(1), ErrTypeMismatch)
	assert.Equal(t, "red", d.RawValue())

	require.NoError(t, d.SetValue("blue"))
	assert.Equal(t, "blue", d.Value())

	f, err := NewDescriptor(reg, "scale", 1.0)
	require.NoError(t, err)
	require.NoError(t, f.SetValue(2))
	assert.Equal(t, 2.0, f.RawValue())
}

func TestDescriptor_UndoableMetadata(t *testing.T) {
	reg := core.NewRegistry()
	d, err := NewDescriptor(reg, "length", 1.0, func(o *DescriptorOptions) { o.Unit = "m" })
	require.NoError(t, err)
	assert.Equal(t, "length", d.DisplayName())

	require.NoError(t, d.SetUnit("cm"))
	require.NoError(t, d.SetDisplayName("L"))
	assert.Equal(t, "cm", d.Unit())
	assert.Equal(t, "L", d.DisplayName())

	require.NoError(t, reg.Stack().Undo())
	require.NoError(t, reg.Stack().Undo())
	assert.Equal(t, "m", d.Unit())
	assert.Equal(t, "length", d.DisplayName())
}

func TestDescriptor_DisabledIsSilent(t *testing.T) {
	reg := core.NewRegistry()
	d, err := NewDescriptor(reg, "flag", false)
	require.NoError(t, err)
	require.NoError(t, d.SetEnabled(false))

	require.NoError(t, d.SetValue(true))
	assert.Equal(t, false, d.RawValue())

	reg.SetDebug(true)
	assert.ErrorIs(t, d.SetValue(true), core.ErrUnsupportedOperation)
}

func TestDescriptor_OwnerEdges(t *testing.T) {
	reg := core.NewRegistry()
	o := &owner{id: uuid.New()}
	require.NoError(t, reg.Register(o, nil))

	d, err := NewDescriptor(reg, "d", 1, func(opts *DescriptorOptions) { opts.Owner = o })
	require.NoError(t, err)
	assert.Same(t, o, d.Owner())

	edges, err := reg.Graph().Edges(o.ID())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{d.ID()}, edges)
	role, _ := reg.Graph().RoleOf(d.ID())
	assert.Equal(t, graph.RoleCreated, role)

	require.NoError(t, d.SetOwner(nil))
	edges, _ = reg.Graph().Edges(o.ID())
	assert.Empty(t, edges)
}

func TestDescriptor_ToMapAndString(t *testing.T) {
	reg := core.NewRegistry()
	d, err := NewDescriptor(reg, "length", 1.5, func(o *DescriptorOptions) {
		o.Unit = "m"
		o.Description = "sample length"
	})
	require.NoError(t, err)
	d.UserData()["k"] = "v"

	m := d.ToMap()
	assert.Equal(t, "Descriptor", m["@class"])
	assert.Equal(t, d.ID().String(), m["@id"])
	assert.Equal(t, 1.5, m["value"])
	assert.Equal(t, "m", m["units"])
	assert.Equal(t, map[string]any{"k": "v"}, m["user_data"])
	assert.Equal(t, "<Descriptor 'length': 1.5000 m>", d.String())
}

func TestKind_CoerceRejectsOverflowingUint(t *testing.T) {
	big := ^uint(0)
	if uint64(big) <= math.MaxInt64 {
		t.Skip("uint fits int64 on this platform")
	}
	_, err := KindInt.Coerce(big)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = NewDescriptor(core.NewRegistry(), "n", big)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	v, err := KindInt.Coerce(uint(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}
