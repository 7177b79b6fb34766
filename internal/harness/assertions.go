package harness

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/symhash/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes the decision log to help debug the failure.
type AssertionError struct {
	Type      string
	Expected  string
	Actual    string
	Decisions []ir.DecisionRecord
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Decisions) > 0 {
		fmt.Fprintf(&buf, "\nDecisions:\n")
		for _, d := range e.Decisions {
			fmt.Fprintf(&buf, "  [%d] %s\n", d.Seq, describe(d))
		}
	}

	return buf.String()
}

func describe(d ir.DecisionRecord) string {
	if d.Changed {
		return fmt.Sprintf("%s -> %s", d.Original, d.Renamed)
	}
	return fmt.Sprintf("%s skipped (%s)", d.Original, d.Reason)
}

// firstDecision returns the earliest decision for an original name.
func firstDecision(decisions []ir.DecisionRecord, name string) (ir.DecisionRecord, bool) {
	for _, d := range decisions {
		if d.Original == name {
			return d, true
		}
	}
	return ir.DecisionRecord{}, false
}

// checkExpect evaluates the scenario's expect map in name order.
func checkExpect(r *Result, expect map[string]string) []string {
	names := make([]string, 0, len(expect))
	for name := range expect {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		var err error
		if want := expect[name]; want == ExpectRenamed {
			err = assertRenamed(r, Assertion{Type: AssertRenamed, Function: name})
		} else {
			err = assertSkipped(r, Assertion{Type: AssertSkipped, Function: name, Reason: want})
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// EvaluateAssertions runs every assertion and returns failure messages.
func EvaluateAssertions(r *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertRenamed:
			err = assertRenamed(r, a)
		case AssertSkipped:
			err = assertSkipped(r, a)
		case AssertFinalNames:
			err = assertFinalNames(r, a)
		case AssertDiagnostic:
			err = assertDiagnostic(r, a)
		case AssertDecisionCount:
			err = assertDecisionCount(r, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func assertRenamed(r *Result, a Assertion) error {
	want := a.Digest
	if want == "" {
		want = ir.NameDigest(a.Function)
	}

	d, ok := firstDecision(r.Decisions, a.Function)
	switch {
	case !ok:
		return &AssertionError{
			Type:      AssertRenamed,
			Expected:  fmt.Sprintf("%s -> %s", a.Function, want),
			Actual:    "no decision for function",
			Decisions: r.Decisions,
		}
	case !d.Changed, d.Renamed != want:
		return &AssertionError{
			Type:      AssertRenamed,
			Expected:  fmt.Sprintf("%s -> %s", a.Function, want),
			Actual:    describe(d),
			Decisions: r.Decisions,
		}
	}
	return nil
}

func assertSkipped(r *Result, a Assertion) error {
	d, ok := firstDecision(r.Decisions, a.Function)
	if ok && !d.Changed && d.Reason == a.Reason {
		return nil
	}

	actual := "no decision for function"
	if ok {
		actual = describe(d)
	}
	return &AssertionError{
		Type:      AssertSkipped,
		Expected:  fmt.Sprintf("%s skipped (%s)", a.Function, a.Reason),
		Actual:    actual,
		Decisions: r.Decisions,
	}
}

func assertFinalNames(r *Result, a Assertion) error {
	if slices.Equal(r.After, a.Names) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalNames,
		Expected: fmt.Sprintf("%v", a.Names),
		Actual:   fmt.Sprintf("%v", r.After),
	}
}

func assertDiagnostic(r *Result, a Assertion) error {
	if slices.Contains(r.Diagnostics, a.Line) {
		return nil
	}
	return &AssertionError{
		Type:     AssertDiagnostic,
		Expected: fmt.Sprintf("line %q", a.Line),
		Actual:   fmt.Sprintf("%d diagnostic line(s) without it", len(r.Diagnostics)),
	}
}

func assertDecisionCount(r *Result, a Assertion) error {
	if len(r.Decisions) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:      AssertDecisionCount,
		Expected:  fmt.Sprintf("%d decision(s)", a.Count),
		Actual:    fmt.Sprintf("%d decision(s)", len(r.Decisions)),
		Decisions: r.Decisions,
	}
}
