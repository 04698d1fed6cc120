package coreconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/padflow/go-padflow/steptype"
)

// jsonConfig is CoreConfig's wire shape: StepType names instead of raw
// enum integers, so a hand-edited config file reads the way spec §6
// describes it.
type jsonConfig struct {
	StepTypeReplacements      map[string][]string `json:"step_type_replacements"`
	OutputDesiredArrowWeights []float64           `json:"output_desired_arrow_weights"`
	MaxBracketSeparation      int                 `json:"max_bracket_separation"`
	RandomSeedSource          string              `json:"random_seed_source"`
}

// MarshalJSON implements json.Marshaler.
func (c CoreConfig) MarshalJSON() ([]byte, error) {
	repls := make(map[string][]string, len(c.StepTypeReplacements))
	for from, tos := range c.StepTypeReplacements {
		names := make([]string, len(tos))
		for i, to := range tos {
			names[i] = to.String()
		}
		repls[from.String()] = names
	}
	return json.Marshal(jsonConfig{
		StepTypeReplacements:      repls,
		OutputDesiredArrowWeights: c.OutputDesiredArrowWeights,
		MaxBracketSeparation:      c.MaxBracketSeparation,
		RandomSeedSource:          c.RandomSeedSource,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CoreConfig) UnmarshalJSON(data []byte) error {
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("coreconfig: unmarshal: %w", err)
	}
	repls := make(map[steptype.StepType][]steptype.StepType, len(jc.StepTypeReplacements))
	for fromName, toNames := range jc.StepTypeReplacements {
		from, ok := steptype.Parse(fromName)
		if !ok {
			return fmt.Errorf("coreconfig: unknown StepType %q", fromName)
		}
		tos := make([]steptype.StepType, len(toNames))
		for i, toName := range toNames {
			to, ok := steptype.Parse(toName)
			if !ok {
				return fmt.Errorf("coreconfig: unknown StepType %q", toName)
			}
			tos[i] = to
		}
		repls[from] = tos
	}
	c.StepTypeReplacements = repls
	c.OutputDesiredArrowWeights = jc.OutputDesiredArrowWeights
	c.MaxBracketSeparation = jc.MaxBracketSeparation
	c.RandomSeedSource = jc.RandomSeedSource
	return nil
}

// WriteJSON writes cfg to filename as indented JSON.
func WriteJSON(cfg CoreConfig, filename string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("coreconfig: marshal: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("coreconfig: write file: %w", err)
	}
	return nil
}

// ReadJSON reads a CoreConfig from filename. The weights are normalised to
// sum to 1 before returning (spec §6: "normalised internally to sum to
// 1") — Builder.Done does the same for configs assembled in-process, and a
// config loaded from disk must not skip that step just because it bypassed
// the Builder.
func ReadJSON(filename string) (CoreConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return CoreConfig{}, fmt.Errorf("coreconfig: read file: %w", err)
	}
	var cfg CoreConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return CoreConfig{}, fmt.Errorf("coreconfig: unmarshal: %w", err)
	}
	return Normalize(cfg), nil
}
