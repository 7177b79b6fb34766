package harness

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/symhash/internal/compiler"
	"github.com/roach88/symhash/internal/ir"
	"github.com/roach88/symhash/internal/logging"
	"github.com/roach88/symhash/internal/pass"
	"github.com/roach88/symhash/internal/pass/md5name"
	"github.com/roach88/symhash/internal/pipeline"
	"github.com/roach88/symhash/internal/store"
	"github.com/roach88/symhash/internal/testutil"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// RunID identifies the run in the rename log.
	RunID string `json:"run_id"`

	// Decisions are read back from the rename log, ordered by seq.
	Decisions []ir.DecisionRecord `json:"decisions"`

	// Before and After are the table's names around the run.
	Before []string `json:"before"`
	After  []string `json:"after"`

	// Diagnostics are the classic diagnostic lines, in emission order.
	Diagnostics []string `json:"diagnostics"`

	// Errors lists failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Transcript renders the diagnostics as they would appear on stderr.
func (r *Result) Transcript() []byte {
	var buf bytes.Buffer
	for _, line := range r.Diagnostics {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Harness holds the per-run collaborators.
type Harness struct {
	store  *store.Store
	clock  *testutil.SeqClock
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory rename log with a fixed run
// id and a clock starting at zero, so repeated runs are byte-identical.
// A returned error means the scenario could not run at all; failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		clock:  testutil.NewSeqClock(0),
		logger: logging.Discard(),
	}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	m, err := scenarioModule(scenario)
	if err != nil {
		return nil, err
	}
	if errs := compiler.Validate(m); len(errs) > 0 {
		return nil, fmt.Errorf("module %s: %w", m.Name, errs[0])
	}

	var diag bytes.Buffer
	rec := pass.NewTextRecorder(&diag)

	reg := pass.NewRegistry()
	if err := reg.Load(md5name.Plugin(passConfig(scenario)), rec); err != nil {
		return nil, err
	}

	runID := scenario.RunID
	if runID == "" {
		runID = testutil.FixedRunID
	}
	text := scenario.Pipeline
	if text == "" {
		text = pipeline.DefaultText
	}

	p, err := pipeline.Build(text, reg, rec,
		pipeline.WithRunIDGenerator(pipeline.NewFixedGenerator(runID)),
		pipeline.WithClock(h.clock),
		pipeline.WithLogger(h.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	result := &Result{Pass: true, Before: m.Names()}
	report, err := p.Run(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	result.RunID = report.RunID
	result.After = m.Names()

	if err := h.store.WriteReport(ctx, report.RunRecord(), report.DecisionRecords()); err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}
	result.Decisions, err = h.store.ReadDecisions(ctx, report.RunID)
	if err != nil {
		return nil, fmt.Errorf("read decisions: %w", err)
	}

	if s := strings.TrimSuffix(diag.String(), "\n"); s != "" {
		result.Diagnostics = strings.Split(s, "\n")
	} else {
		result.Diagnostics = []string{}
	}

	for _, msg := range checkExpect(result, scenario.Expect) {
		result.AddError(msg)
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished", "scenario", scenario.Name, "pass", result.Pass)
	return result, nil
}

// scenarioModule loads the file-backed or inline function table.
func scenarioModule(s *Scenario) (*ir.Module, error) {
	if s.Module != "" {
		m, err := compiler.LoadFile(s.ModulePath())
		if err != nil {
			return nil, fmt.Errorf("load module: %w", err)
		}
		return m, nil
	}

	name := s.ModuleName
	if name == "" {
		name = s.Name
	}
	m := &ir.Module{Name: name, Functions: s.Functions}
	return m.Clone(), nil
}

func passConfig(s *Scenario) md5name.Config {
	cfg := md5name.DefaultConfig()
	if s.Reserved != nil {
		cfg.Reserved = s.Reserved
	}
	if s.EntryPoint != "" {
		cfg.EntryPoint = s.EntryPoint
	}
	return cfg
}
