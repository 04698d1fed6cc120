// Package coreconfig defines CoreConfig, the one configuration object the
// core consumes (spec §6), a fluent Builder for assembling one, and its
// validation rules.
package coreconfig

import (
	"errors"
	"fmt"

	"github.com/padflow/go-padflow/steptype"
)

var (
	ErrNoArrowWeights      = errors.New("coreconfig: output_desired_arrow_weights must not be empty")
	ErrNegativeArrowWeight = errors.New("coreconfig: output_desired_arrow_weights must be non-negative")
	ErrAllZeroArrowWeights = errors.New("coreconfig: output_desired_arrow_weights must not all be zero")
	ErrNonPositiveBracket  = errors.New("coreconfig: max_bracket_separation must be positive")
	ErrEmptySeedSource     = errors.New("coreconfig: random_seed_source must not be empty")
	ErrMissingIdentityRepl = errors.New("coreconfig: step_type_replacements is missing an identity entry for a StepType")
	ErrUnknownReplacement  = errors.New("coreconfig: step_type_replacements names an unknown StepType")
)

// CoreConfig is the boundary configuration type of spec §6.
type CoreConfig struct {
	// StepTypeReplacements maps a StepType to the set of StepTypes that
	// may stand in for it during PerformedChart search (spec §4.5). The
	// identity replacement must be present for every key by default.
	StepTypeReplacements map[steptype.StepType][]steptype.StepType `json:"step_type_replacements"`

	// OutputDesiredArrowWeights has one entry per output-pad arrow,
	// normalised internally to sum to 1.
	OutputDesiredArrowWeights []float64 `json:"output_desired_arrow_weights"`

	// MaxBracketSeparation bounds the arrow-index distance between two
	// arrows considered bracketable.
	MaxBracketSeparation int `json:"max_bracket_separation"`

	// RandomSeedSource is hashed to derive the deterministic seed for
	// root-tier shuffling and replacement-link shuffling (spec §5).
	RandomSeedSource string `json:"random_seed_source"`
}

// Validate checks CoreConfig's invariants without mutating it. Normalize
// should be called afterwards (or before, if you only care about the
// shape of the weights) to get a config ready for use.
func Validate(c CoreConfig) []error {
	var errs []error

	if len(c.OutputDesiredArrowWeights) == 0 {
		errs = append(errs, ErrNoArrowWeights)
	} else {
		sum := 0.0
		for _, w := range c.OutputDesiredArrowWeights {
			if w < 0 {
				errs = append(errs, ErrNegativeArrowWeight)
			}
			sum += w
		}
		if sum <= 0 {
			errs = append(errs, ErrAllZeroArrowWeights)
		}
	}

	if c.MaxBracketSeparation <= 0 {
		errs = append(errs, ErrNonPositiveBracket)
	}

	if c.RandomSeedSource == "" {
		errs = append(errs, ErrEmptySeedSource)
	}

	for _, st := range steptype.All() {
		repls, ok := c.StepTypeReplacements[st]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %v", ErrMissingIdentityRepl, st))
			continue
		}
		hasIdentity := false
		for _, r := range repls {
			if int(r) < 0 || int(r) >= len(steptype.All()) {
				errs = append(errs, fmt.Errorf("%w: %v -> %v", ErrUnknownReplacement, st, r))
			}
			if r == st {
				hasIdentity = true
			}
		}
		if !hasIdentity {
			errs = append(errs, fmt.Errorf("%w: %v", ErrMissingIdentityRepl, st))
		}
	}

	return errs
}

// Normalize returns a copy of c with OutputDesiredArrowWeights scaled to
// sum to 1. It does not validate; call Validate first.
func Normalize(c CoreConfig) CoreConfig {
	out := c
	sum := 0.0
	for _, w := range c.OutputDesiredArrowWeights {
		sum += w
	}
	if sum <= 0 {
		return out
	}
	weights := make([]float64, len(c.OutputDesiredArrowWeights))
	for i, w := range c.OutputDesiredArrowWeights {
		weights[i] = w / sum
	}
	out.OutputDesiredArrowWeights = weights
	return out
}
