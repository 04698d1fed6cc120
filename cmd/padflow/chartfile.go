package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/padflow/go-padflow/event"
)

// chartFile is the on-disk JSON shape cmd/padflow reads and writes. It is
// explicitly outside the core's scope (spec §1 "Out of scope: chart-file
// parsing/serialisation... treated as external collaborators"; SPEC_FULL
// NON-GOALS: "driver exposes these as interfaces/injected collaborators,
// never implements a parser or renderer") — this file is that
// collaborator, owned by the CLI, not by driver or any core package.
type chartFile struct {
	Pad         string           `json:"pad"`
	Author      string           `json:"author"`
	Description string           `json:"description"`
	Events      []jsonChartEvent `json:"events"`
}

// jsonChartEvent mirrors event.InputEvent/event.OutputEvent's shape with
// a human-readable Kind name and a Position given as "num/den".
type jsonChartEvent struct {
	Position string `json:"position"`
	Kind     string `json:"kind"`
	Lane     int    `json:"lane,omitempty"`
	Roll     bool   `json:"roll,omitempty"`
	Fake     bool   `json:"fake,omitempty"`
	Lift     bool   `json:"lift,omitempty"`
	Payload  string `json:"payload,omitempty"`
}

var kindNames = map[string]event.Kind{
	"TimeSignature": event.TimeSignature,
	"Tempo":         event.Tempo,
	"Stop":          event.Stop,
	"Tap":           event.LaneTap,
	"HoldStart":     event.LaneHoldStart,
	"HoldEnd":       event.LaneHoldEnd,
	"Mine":          event.LaneMine,
}

func kindName(k event.Kind) string {
	for name, v := range kindNames {
		if v == k {
			return name
		}
	}
	return "Unknown"
}

func readChartFile(path string) (chartFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chartFile{}, fmt.Errorf("read chart file: %w", err)
	}
	var cf chartFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return chartFile{}, fmt.Errorf("parse chart file %s: %w", path, err)
	}
	return cf, nil
}

func writeChartFile(path string, cf chartFile) error {
	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chart file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write chart file %s: %w", path, err)
	}
	return nil
}

// toInputEvents converts cf's events into the core's InputEvent list,
// sorted by position (event.Sort is idempotent, so a caller that already
// has a sorted file pays nothing extra).
func toInputEvents(cf chartFile) ([]event.InputEvent, error) {
	out := make([]event.InputEvent, 0, len(cf.Events))
	for i, je := range cf.Events {
		pos, err := parsePosition(je.Position)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		kind, ok := kindNames[je.Kind]
		if !ok {
			return nil, fmt.Errorf("event %d: unknown kind %q", i, je.Kind)
		}
		annotation := event.AnnotationNormal
		if je.Roll {
			annotation = event.AnnotationRoll
		}
		lane := je.Lane
		if !kind.IsLaneEvent() {
			lane = -1
		}
		out = append(out, event.InputEvent{
			Position:   pos,
			Kind:       kind,
			Lane:       lane,
			Annotation: annotation,
			Payload:    event.Payload{Raw: je.Payload},
		})
	}
	event.Sort(out)
	return out, nil
}

// fromOutputEvents converts the core's OutputEvent list back to the
// on-disk shape.
func fromOutputEvents(events []event.OutputEvent) []jsonChartEvent {
	out := make([]jsonChartEvent, 0, len(events))
	for _, e := range events {
		je := jsonChartEvent{
			Position: e.Position.String(),
			Kind:     kindName(e.Kind),
			Lane:     e.Lane,
			Payload:  e.Payload.Raw,
		}
		switch e.Annotation {
		case event.AnnotationRoll:
			je.Roll = true
		case event.AnnotationFake:
			je.Fake = true
		case event.AnnotationLift:
			je.Lift = true
		}
		out = append(out, je)
	}
	return out
}

// parsePosition parses a "num/den" position string into an event.Position.
func parsePosition(s string) (event.Position, error) {
	var num, den int64
	if _, err := fmt.Sscanf(s, "%d/%d", &num, &den); err != nil {
		return event.Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	if den == 0 {
		return event.Position{}, fmt.Errorf("invalid position %q: zero denominator", s)
	}
	return event.NewPosition(num, den), nil
}
