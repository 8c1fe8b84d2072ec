package sampling

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/model"
	"github.com/EasyScience/EasyCore-sub001/variable"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type line struct {
	*model.Object
	m, c *variable.Parameter
}

func newLine(t *testing.T, reg *core.Registry) *line {
	t.Helper()
	m, err := variable.NewParameter(reg, "m", 1, func(o *variable.ParameterOptions) { o.Min, o.Max = -5, 5 })
	require.NoError(t, err)
	c, err := variable.NewParameter(reg, "c", 0)
	require.NoError(t, err)
	obj, err := model.NewObject(reg, "Line", "line", m, c)
	require.NoError(t, err)
	return &line{Object: obj, m: m, c: c}
}

func (l *line) eval(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = l.m.RawValue()*v + l.c.RawValue()
	}
	return out
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("density")
	require.NoError(t, err)
	assert.Equal(t, ModeDensity, m)
	m, err = ParseMode("NORMAL")
	require.NoError(t, err)
	assert.Equal(t, ModeNormal, m)

	_, err = ParseMode("MCMC")
	assert.ErrorIs(t, err, ErrInvalidSamplingMode)

	_, err = NewEvaluator(nil, func([]float64) []float64 { return nil }, func(o *Options) { o.Mode = "bogus" })
	assert.ErrorIs(t, err, ErrInvalidSamplingMode)
}

func TestParameterCache_KeyedByIdentity(t *testing.T) {
	reg := core.NewRegistry()
	l := newLine(t, reg)
	require.NoError(t, l.c.SetFixed(true))

	cache := NewParameterCache()
	params := cache.Parameters(l)
	require.Len(t, params, 1)
	assert.Same(t, l.m, params[0])

	require.NoError(t, l.c.SetFixed(false))
	assert.Len(t, cache.Parameters(l), 1, "cached entry is reused until invalidated")
	cache.Invalidate(l.ID())
	assert.Len(t, cache.Parameters(l), 2)
	assert.Equal(t, 1, cache.Len())
}

func TestParameterCache_ConcurrentReads(t *testing.T) {
	reg := core.NewRegistry()
	l := newLine(t, reg)
	cache := NewParameterCache()
	_ = cache.Parameters(l)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, cache.Parameters(l), 2)
		}()
	}
	wg.Wait()
}

func TestEvaluator_QuickSetBypassesRegistry(t *testing.T) {
	reg := core.NewRegistry()
	l := newLine(t, reg)
	before := reg.Script().Len()

	ev, err := NewEvaluator(l, l.eval, func(o *Options) { o.UseQuickSet = true })
	require.NoError(t, err)
	got, err := ev.Evaluate([]float64{0, 1, 2}, []float64{10, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 11, 21}, got)
	assert.Equal(t, 10.0, l.m.RawValue(), "quick set skips bounds")
	assert.Equal(t, before, reg.Script().Len())
	assert.False(t, reg.Stack().CanUndo())
}

func TestEvaluator_NormalSetterEnforcesBounds(t *testing.T) {
	reg := core.NewRegistry()
	l := newLine(t, reg)

	ev, err := NewEvaluator(l, l.eval)
	require.NoError(t, err)
	got, err := ev.Evaluate([]float64{1}, []float64{10, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{6}, got)
	assert.True(t, reg.Stack().CanUndo())

	_, err = ev.Evaluate([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrThetaLength)
}

func TestEvaluator_Score(t *testing.T) {
	reg := core.NewRegistry()
	l := newLine(t, reg)
	x := []float64{0, 1}
	y := []float64{1, 3}
	sigma := []float64{1, 1}

	normal, err := NewEvaluator(l, l.eval, func(o *Options) { o.Mode = ModeNormal; o.UseQuickSet = true })
	require.NoError(t, err)
	s, err := normal.Score(x, y, sigma, []float64{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)

	density, err := NewEvaluator(l, l.eval, func(o *Options) { o.UseQuickSet = true })
	require.NoError(t, err)
	s, err = density.Score(x, y, sigma, []float64{2, 0})
	require.NoError(t, err)
	assert.InDelta(t, -1-2*math.Log(math.Sqrt(2*math.Pi)), s, 1e-12)

	_, err = density.Score(x, y[:1], sigma, []float64{2, 0})
	assert.Error(t, err)
}

func TestEvaluationLimiter(t *testing.T) {
	reg := core.NewRegistry()
	l := newLine(t, reg)
	ev, err := NewEvaluator(l, l.eval, func(o *Options) { o.MaxEvaluations = 2; o.UseQuickSet = true })
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := ev.Evaluate(nil, []float64{1, 1})
		require.NoError(t, err)
	}
	assert.Equal(t, 0, ev.Limiter().Remaining())
	_, err = ev.Evaluate(nil, []float64{1, 1})
	assert.ErrorIs(t, err, ErrEvaluationLimit)

	ev.Limiter().Reset()
	assert.Equal(t, 2, ev.Limiter().Remaining())
	assert.Equal(t, -1, NewEvaluationLimiter(0).Remaining())
}
