package sampling

import "errors"

var (
	// ErrInvalidSamplingMode is returned for unsupported sampling modes.
	ErrInvalidSamplingMode = errors.New("invalid sampling mode")
	// ErrEvaluationLimit is returned once an evaluator exceeds its budget.
	ErrEvaluationLimit = errors.New("evaluation limit exceeded")
	// ErrThetaLength is returned when theta does not match the free parameters.
	ErrThetaLength = errors.New("theta length does not match free parameters")
)
