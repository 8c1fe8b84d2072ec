package easycore

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/internal/testutil"
	"github.com/EasyScience/EasyCore-sub001/sampling"
	"github.com/EasyScience/EasyCore-sub001/variable"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.NotNil(t, s.Registry())
	assert.Equal(t, 20, s.Registry().Stack().MaxHistory())
	assert.Empty(t, s.Script())
}

func TestNew_Overrides(t *testing.T) {
	s := New(func(o *Options) {
		o.Registry.MaxHistory = 2
		o.Registry.ScriptEnabled = false
	})
	p, err := s.Parameter("x", 0)
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		require.NoError(t, p.SetValue(float64(i)))
	}
	assert.Len(t, s.History(), 2)
	assert.Empty(t, s.Script())
}

func TestSession_MacroUndoRedo(t *testing.T) {
	s := New()
	line := testutil.Line(t, s.Registry())
	m, err := line.Parameter("m")
	require.NoError(t, err)
	c, err := line.Parameter("c")
	require.NoError(t, err)

	require.NoError(t, s.Macro("move line", func() error {
		if err := m.SetValue(2); err != nil {
			return err
		}
		return c.SetValue(3)
	}))
	assert.Equal(t, []string{"move line"}, s.History())

	require.NoError(t, s.Undo())
	assert.Equal(t, 1.0, m.RawValue())
	assert.Equal(t, 0.0, c.RawValue())
	require.NoError(t, s.Redo())
	assert.Equal(t, 2.0, m.RawValue())
	assert.Equal(t, 3.0, c.RawValue())

	boom := errors.New("boom")
	err = s.Macro("partial", func() error {
		_ = m.SetValue(5)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Registry().Stack().MacroOpen())
	assert.Equal(t, "partial", s.Registry().Stack().UndoText())
}

func TestSession_ScriptAndExport(t *testing.T) {
	s := New()
	p, err := s.Parameter("x", 1, func(o *variable.ParameterOptions) { o.Min, o.Max = 0, 10 })
	require.NoError(t, err)
	d, err := s.Descriptor("label", "a")
	require.NoError(t, err)
	obj, err := s.Object("Sample", "sample", p, d)
	require.NoError(t, err)
	coll, err := s.Collection("samples", obj)
	require.NoError(t, err)
	assert.Equal(t, 1, coll.Len())

	require.NoError(t, p.SetValue(4))
	var buf bytes.Buffer
	require.NoError(t, s.WriteScript(&buf))
	assert.Equal(t, "parameter_0.value = 4\n", buf.String())

	buf.Reset()
	require.NoError(t, s.ExportYAML(&buf, obj))
	assert.Contains(t, buf.String(), "name: sample")
	assert.Contains(t, buf.String(), "value: 4")
}

func TestSession_EvaluatorSharesCache(t *testing.T) {
	cache := sampling.NewParameterCache()
	s := New(func(o *Options) { o.Cache = cache })
	line := testutil.Line(t, s.Registry())
	m, _ := line.Parameter("m")
	c, _ := line.Parameter("c")

	ev, err := s.Evaluator(line, func(x []float64) []float64 {
		out := make([]float64, len(x))
		for i, v := range x {
			out[i] = m.RawValue()*v + c.RawValue()
		}
		return out
	}, func(o *sampling.Options) { o.UseQuickSet = true })
	require.NoError(t, err)

	got, err := ev.Evaluate([]float64{2}, []float64{3, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, got)
	assert.Equal(t, 1, cache.Len())
}

func TestSession_DebugUnsupported(t *testing.T) {
	s := New(func(o *Options) { o.Registry.Debug = true })
	p, err := s.Parameter("x", 1, func(o *variable.ParameterOptions) { o.Enabled = false })
	require.NoError(t, err)
	assert.ErrorIs(t, p.SetValue(2), core.ErrUnsupportedOperation)
}
