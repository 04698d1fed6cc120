package coreconfig

import "github.com/padflow/go-padflow/steptype"

// Builder provides a fluent API for assembling a CoreConfig, mirroring
// the construction-by-chaining style used elsewhere in this codebase for
// composite configuration objects.
//
// Example:
//
//	cfg := coreconfig.Build(8).
//	    Replace(steptype.NewArrow, steptype.CrossoverFront).
//	    ArrowWeight(0, 0.2).
//	    MaxBracketSeparation(2).
//	    SeedSource("my-song.sm").
//	    Done()
type Builder struct {
	cfg CoreConfig
}

// Build starts a Builder for a pad with numArrows lanes: identity-only
// replacements and uniform arrow weights.
func Build(numArrows int) *Builder {
	repls := make(map[steptype.StepType][]steptype.StepType, len(steptype.All()))
	for _, st := range steptype.All() {
		repls[st] = []steptype.StepType{st}
	}
	weights := make([]float64, numArrows)
	for i := range weights {
		weights[i] = 1
	}
	return &Builder{cfg: CoreConfig{
		StepTypeReplacements:      repls,
		OutputDesiredArrowWeights: weights,
		MaxBracketSeparation:      1,
	}}
}

// Replace adds to's StepTypes to from's replacement set, alongside
// whatever is already registered (identity included).
func (b *Builder) Replace(from steptype.StepType, to ...steptype.StepType) *Builder {
	b.cfg.StepTypeReplacements[from] = append(b.cfg.StepTypeReplacements[from], to...)
	return b
}

// ArrowWeight sets one arrow's desired lane-usage weight.
func (b *Builder) ArrowWeight(arrow int, weight float64) *Builder {
	if arrow >= 0 && arrow < len(b.cfg.OutputDesiredArrowWeights) {
		b.cfg.OutputDesiredArrowWeights[arrow] = weight
	}
	return b
}

// ArrowWeights replaces the whole weight vector.
func (b *Builder) ArrowWeights(weights []float64) *Builder {
	b.cfg.OutputDesiredArrowWeights = weights
	return b
}

// MaxBracketSeparation sets the bracket-candidate distance limit.
func (b *Builder) MaxBracketSeparation(n int) *Builder {
	b.cfg.MaxBracketSeparation = n
	return b
}

// SeedSource sets the string the deterministic random seed derives from.
func (b *Builder) SeedSource(s string) *Builder {
	b.cfg.RandomSeedSource = s
	return b
}

// Done returns the assembled, normalised CoreConfig.
func (b *Builder) Done() CoreConfig {
	return Normalize(b.cfg)
}

// Net returns the CoreConfig as built, without normalising the weights —
// useful when a caller wants to validate the raw shape first.
func (b *Builder) Net() CoreConfig {
	return b.cfg
}
