package sampling

import (
	"fmt"
	"strings"
)

// Mode selects how an Evaluator scores a parameter vector.
type Mode string

const (
	// ModeDensity scores with the full Gaussian log density.
	ModeDensity Mode = "DENSITY"
	// ModeNormal scores with -chi²/2, omitting the normalisation term.
	ModeNormal Mode = "NORMAL"
)

// SupportedModes lists the accepted modes.
func SupportedModes() []Mode { return []Mode{ModeDensity, ModeNormal} }

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeDensity, ModeNormal:
		return m, nil
	}
	return "", fmt.Errorf("%q (supported: %v): %w", s, SupportedModes(), ErrInvalidSamplingMode)
}
