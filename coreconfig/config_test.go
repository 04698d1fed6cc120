package coreconfig

import (
	"encoding/json"
	"testing"

	"github.com/padflow/go-padflow/steptype"
)

func TestBuilderProducesValidConfig(t *testing.T) {
	cfg := Build(8).SeedSource("song.sm").Done()
	if errs := Validate(cfg); len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	sum := 0.0
	for _, w := range cfg.OutputDesiredArrowWeights {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("weights sum to %f, want ~1", sum)
	}
}

func TestValidateCatchesMissingSeedSource(t *testing.T) {
	cfg := Build(4).Net()
	errs := Validate(cfg)
	found := false
	for _, err := range errs {
		if err == ErrEmptySeedSource {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ErrEmptySeedSource among: %v", errs)
	}
}

func TestReplaceAddsToIdentitySet(t *testing.T) {
	cfg := Build(4).Replace(steptype.NewArrow, steptype.CrossoverFront).SeedSource("x").Done()
	repls := cfg.StepTypeReplacements[steptype.NewArrow]
	hasIdentity, hasCrossover := false, false
	for _, r := range repls {
		if r == steptype.NewArrow {
			hasIdentity = true
		}
		if r == steptype.CrossoverFront {
			hasCrossover = true
		}
	}
	if !hasIdentity || !hasCrossover {
		t.Errorf("NewArrow replacements = %v, want identity and CrossoverFront", repls)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	cfg := Build(4).SeedSource("song.sm").MaxBracketSeparation(2).Done()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got CoreConfig
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RandomSeedSource != cfg.RandomSeedSource || got.MaxBracketSeparation != cfg.MaxBracketSeparation {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, cfg)
	}
	if len(got.StepTypeReplacements[steptype.SameArrow]) == 0 {
		t.Errorf("expected SameArrow replacements to survive the round trip")
	}
}
