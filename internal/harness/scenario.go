package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/symhash/internal/ir"
	"github.com/roach88/symhash/internal/pass"
)

// ExpectRenamed is the expect value meaning "renamed to its digest".
const ExpectRenamed = "renamed"

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Module is a path to a module description file. Relative paths are
	// resolved against the scenario file's directory.
	Module string `yaml:"module,omitempty"`

	// ModuleName and Functions describe an inline table instead of Module.
	ModuleName string        `yaml:"module_name,omitempty"`
	Functions  []ir.Function `yaml:"functions,omitempty"`

	// Pipeline is the pipeline text; empty means the default pipeline.
	Pipeline string `yaml:"pipeline,omitempty"`

	// Reserved and EntryPoint override the pass exclusions. A nil
	// Reserved keeps the defaults; an empty list reserves nothing.
	Reserved   []string `yaml:"reserved,omitempty"`
	EntryPoint string   `yaml:"entry_point,omitempty"`

	// RunID fixes the run identifier. Defaults to testutil.FixedRunID.
	RunID string `yaml:"run_id,omitempty"`

	// Expect maps an original function name to "renamed" or a skip reason.
	// Only the first pass's decision for the function is checked.
	Expect map[string]string `yaml:"expect,omitempty"`

	// Assertions validate the decisions, final table and diagnostics.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// dir is the scenario file's directory, set by LoadScenario.
	dir string
}

// Assertion validates one aspect of a run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Function is the original name (renamed, skipped).
	Function string `yaml:"function,omitempty"`

	// Digest is the expected new name (renamed). Empty means
	// ir.NameDigest(Function).
	Digest string `yaml:"digest,omitempty"`

	// Reason is the expected skip reason (skipped).
	Reason string `yaml:"reason,omitempty"`

	// Names is the expected final table (final_names).
	Names []string `yaml:"names,omitempty"`

	// Line is an exact diagnostic line (diagnostic).
	Line string `yaml:"line,omitempty"`

	// Count is the expected number of decisions (decision_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertRenamed       = "renamed"
	AssertSkipped       = "skipped"
	AssertFinalNames    = "final_names"
	AssertDiagnostic    = "diagnostic"
	AssertDecisionCount = "decision_count"
)

// knownReasons are the skip reasons an expect value may name.
var knownReasons = map[string]bool{
	string(pass.SkipDeclaration): true,
	string(pass.SkipReserved):    true,
	string(pass.SkipComdat):      true,
	string(pass.SkipEntryPoint):  true,
	string(pass.SkipOptNone):     true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	scenario.dir = filepath.Dir(path)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// ModulePath returns Module resolved against the scenario's directory.
func (s *Scenario) ModulePath() string {
	if s.Module == "" || filepath.IsAbs(s.Module) || s.dir == "" {
		return s.Module
	}
	return filepath.Join(s.dir, s.Module)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Module != "" && len(s.Functions) > 0:
		return fmt.Errorf("module and functions are mutually exclusive")
	case s.Module == "" && len(s.Functions) == 0:
		return fmt.Errorf("one of module or functions is required")
	case s.Module != "":
		if _, err := os.Stat(s.ModulePath()); err != nil {
			return fmt.Errorf("module file not found: %s", s.ModulePath())
		}
	}

	if len(s.Expect) == 0 && len(s.Assertions) == 0 {
		return fmt.Errorf("expect or assertions is required")
	}

	for name, want := range s.Expect {
		if want != ExpectRenamed && !knownReasons[want] {
			return fmt.Errorf("expect[%s]: %q is neither %q nor a skip reason", name, want, ExpectRenamed)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRenamed:
		if a.Function == "" {
			return fmt.Errorf("assertions[%d]: function is required for renamed", index)
		}
	case AssertSkipped:
		if a.Function == "" {
			return fmt.Errorf("assertions[%d]: function is required for skipped", index)
		}
		if !knownReasons[a.Reason] {
			return fmt.Errorf("assertions[%d]: unknown skip reason %q", index, a.Reason)
		}
	case AssertFinalNames:
		if a.Names == nil {
			return fmt.Errorf("assertions[%d]: names is required for final_names", index)
		}
	case AssertDiagnostic:
		if a.Line == "" {
			return fmt.Errorf("assertions[%d]: line is required for diagnostic", index)
		}
	case AssertDecisionCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for decision_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
