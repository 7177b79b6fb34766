package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir holds the shipped scenarios' golden transcripts, relative to
// this package.
const GoldenDir = "../../testdata/scenarios/golden"

// RunWithGolden executes a scenario and compares its diagnostic transcript
// against GoldenDir/<scenario.Name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can make further checks. Execution errors
// are returned; golden mismatches fail t through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's transcript against a golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, result.Transcript())
}
