package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShippedScenarios runs every scenario under testdata/scenarios and
// compares its diagnostic transcript with the golden file of the same name.
func TestShippedScenarios(t *testing.T) {
	for _, name := range []string{"hello", "mixed", "double_pass", "optnone", "custom_exclusions"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("..", "..", "testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)
			require.Equal(t, name, scenario.Name, "golden files are keyed by scenario name")

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, result.Errors)
		})
	}
}
