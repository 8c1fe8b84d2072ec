package sampling

import (
	"fmt"
	"sync"
)

// EvaluationLimiter enforces a maximum number of model evaluations.
type EvaluationLimiter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewEvaluationLimiter creates a new limiter with a max number of evaluations.
// If max == 0, unlimited evaluations are allowed.
func NewEvaluationLimiter(max int) *EvaluationLimiter {
	return &EvaluationLimiter{max: max}
}

// Increment increases the counter and returns an error if the limit is exceeded.
func (l *EvaluationLimiter) Increment() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	if l.max > 0 && l.count > l.max {
		return fmt.Errorf("exceeded max evaluations %d: %w", l.max, ErrEvaluationLimit)
	}

	return nil
}

// Count returns the number of evaluations made.
func (l *EvaluationLimiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.count
}

// Remaining returns how many evaluations are left before hitting the limit.
func (l *EvaluationLimiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.max == 0 {
		return -1 // unlimited
	}

	return max(l.max-l.count, 0)
}

// Reset sets the counter back to zero.
func (l *EvaluationLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count = 0
}
