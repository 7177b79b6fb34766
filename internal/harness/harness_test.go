package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/symhash/internal/ir"
	"github.com/roach88/symhash/internal/testutil"
)

func inlineScenario(fns ...ir.Function) *Scenario {
	return &Scenario{
		Name:        "inline",
		Description: "inline table",
		ModuleName:  "inline",
		Functions:   fns,
	}
}

func TestRun_HelloInline(t *testing.T) {
	hello := testutil.HelloModule()
	scenario := inlineScenario(hello.Functions...)
	scenario.Expect = map[string]string{
		"getHello": ExpectRenamed,
		"getWorld": ExpectRenamed,
		"main":     "entry point",
		"printf":   "external declaration",
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, testutil.FixedRunID, result.RunID)
	assert.Equal(t, []string{"getHello", "getWorld", "main", "printf"}, result.Before)
	assert.Equal(t, []string{testutil.DigestGetHello, testutil.DigestGetWorld, "main", "printf"}, result.After)
	require.Len(t, result.Decisions, 4)
	for i, d := range result.Decisions {
		assert.Equal(t, int64(i+1), d.Seq, "decisions come back in seq order")
	}
}

func TestRun_DoesNotMutateInlineTable(t *testing.T) {
	scenario := inlineScenario(ir.Function{Name: "getHello", Definition: true})
	scenario.Expect = map[string]string{"getHello": ExpectRenamed}

	_, err := Run(scenario)
	require.NoError(t, err)
	assert.Equal(t, "getHello", scenario.Functions[0].Name)
}

func TestRun_Deterministic(t *testing.T) {
	scenario := inlineScenario(testutil.MixedModule().Functions...)
	scenario.Expect = map[string]string{"computeChecksum": ExpectRenamed}

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Decisions, second.Decisions)
	assert.Equal(t, first.Transcript(), second.Transcript())
}

func TestRun_FailedExpectationsAreReported(t *testing.T) {
	scenario := inlineScenario(
		ir.Function{Name: "main", Definition: true},
		ir.Function{Name: "getHello", Definition: true},
	)
	scenario.Expect = map[string]string{
		"main":     ExpectRenamed,
		"getHello": "entry point",
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	// expect keys are checked in sorted order
	assert.Contains(t, result.Errors[0], "getHello skipped (entry point)")
	assert.Contains(t, result.Errors[1], "main -> "+testutil.DigestMain)
}

func TestRun_InvalidModule(t *testing.T) {
	scenario := inlineScenario(
		ir.Function{Name: "dup", Definition: true},
		ir.Function{Name: "dup"},
	)
	scenario.Expect = map[string]string{"dup": ExpectRenamed}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E103")
}

func TestRun_BadPipeline(t *testing.T) {
	scenario := inlineScenario(ir.Function{Name: "f", Definition: true})
	scenario.Pipeline = "function(no-such-pass)"
	scenario.Expect = map[string]string{"f": ExpectRenamed}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E202")
}

func TestRun_EmptyTable(t *testing.T) {
	scenario := &Scenario{
		Name:        "empty",
		Description: "nothing to rename",
		Functions:   []ir.Function{},
		Assertions:  []Assertion{{Type: AssertDecisionCount, Count: 0}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, []string{"MD5FunctionNamePass plugin loaded successfully."}, result.Diagnostics)
}
