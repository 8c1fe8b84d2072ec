package sampling

import (
	"errors"
	"fmt"
	"math"

	"github.com/EasyScience/EasyCore-sub001/logging"
	"github.com/EasyScience/EasyCore-sub001/variable"
)

// ModelFunc computes model values at x from the current parameter values.
type ModelFunc func(x []float64) []float64

// Options configures an Evaluator.
type Options struct {
	// Mode selects the scoring rule. Defaults to ModeDensity.
	Mode Mode
	// UseQuickSet applies theta with Parameter.QuickSet instead of the
	// observed setter. Only safe when theta is known to respect the bounds.
	UseQuickSet bool
	// MaxEvaluations caps Evaluate calls. Zero means unlimited.
	MaxEvaluations int
	// Cache is shared between evaluators of the same models. Defaults to a
	// private cache.
	Cache  *ParameterCache
	Logger logging.Logger
}

// Evaluator applies parameter vectors to a model and evaluates it.
type Evaluator struct {
	src     Source
	fn      ModelFunc
	mode    Mode
	quick   bool
	cache   *ParameterCache
	limiter *EvaluationLimiter
	logger  logging.Logger
}

// NewEvaluator creates an evaluator of fn over the free parameters of src.
func NewEvaluator(src Source, fn ModelFunc, optFns ...func(o *Options)) (*Evaluator, error) {
	opts := Options{Mode: ModeDensity}
	for _, f := range optFns {
		f(&opts)
	}
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, errors.New("sampling: model function is nil")
	}
	if opts.Cache == nil {
		opts.Cache = NewParameterCache()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Evaluator{
		src:     src,
		fn:      fn,
		mode:    mode,
		quick:   opts.UseQuickSet,
		cache:   opts.Cache,
		limiter: NewEvaluationLimiter(opts.MaxEvaluations),
		logger:  opts.Logger,
	}, nil
}

// Mode returns the scoring mode.
func (e *Evaluator) Mode() Mode { return e.mode }

// Parameters returns the free parameters theta is applied to, in order.
func (e *Evaluator) Parameters() []*variable.Parameter { return e.cache.Parameters(e.src) }

// Limiter exposes the evaluation counter.
func (e *Evaluator) Limiter() *EvaluationLimiter { return e.limiter }

// Evaluate applies theta and returns the model values at x.
func (e *Evaluator) Evaluate(x, theta []float64) ([]float64, error) {
	if err := e.limiter.Increment(); err != nil {
		return nil, err
	}
	params := e.cache.Parameters(e.src)
	if len(theta) != len(params) {
		return nil, fmt.Errorf("got %d values for %d parameters: %w", len(theta), len(params), ErrThetaLength)
	}
	for i, p := range params {
		if e.quick {
			p.QuickSet(theta[i], variable.QuickSetOptions{})
			continue
		}
		if err := p.SetValue(theta[i]); err != nil {
			return nil, err
		}
	}
	return e.fn(x), nil
}

// Score evaluates the model at theta against observations y with
// uncertainties sigma. ModeDensity returns the Gaussian log density;
// ModeNormal returns -chi²/2.
func (e *Evaluator) Score(x, y, sigma, theta []float64) (float64, error) {
	if len(y) != len(x) || len(sigma) != len(x) {
		return 0, fmt.Errorf("score: x, y and sigma lengths differ (%d, %d, %d)", len(x), len(y), len(sigma))
	}
	model, err := e.Evaluate(x, theta)
	if err != nil {
		return 0, err
	}
	if len(model) != len(y) {
		return 0, fmt.Errorf("score: model returned %d values for %d points", len(model), len(y))
	}
	var chi2, norm float64
	for i := range y {
		r := (y[i] - model[i]) / sigma[i]
		chi2 += r * r
		norm += math.Log(sigma[i] * math.Sqrt(2*math.Pi))
	}
	score := -0.5 * chi2
	if e.mode == ModeDensity {
		score -= norm
	}
	e.logger.Debug("sampling.score", "mode", string(e.mode), "chi2", chi2, "evaluations", e.limiter.Count())
	return score, nil
}
