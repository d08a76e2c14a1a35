package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot captures a scenario execution for golden comparison.
type Snapshot struct {
	ScenarioName string
	Trace        []TraceEvent
}

// toCanonicalMap converts the snapshot to the value MarshalCanonical accepts.
func (s *Snapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		m := map[string]any{
			"seq":       event.Seq,
			"direction": event.Direction,
			"input":     event.Input,
		}
		if event.Output != "" {
			m["output"] = event.Output
		}
		if event.ErrorKind != "" {
			m["error_kind"] = event.ErrorKind
		}
		trace[i] = m
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         trace,
	}
}

// Marshal returns the canonical JSON of the snapshot followed by a newline.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := MarshalCanonical(s.toCanonicalMap())
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// SnapshotOf builds the snapshot for a finished run.
func SnapshotOf(scenario *Scenario, result *Result) *Snapshot {
	return &Snapshot{ScenarioName: scenario.Name, Trace: result.Trace}
}

// RunWithGolden runs scenario and compares its trace against
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./... -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(t.Context(), scenario)
	if err != nil {
		return nil, err
	}

	data, err := SnapshotOf(scenario, result).Marshal()
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
