package pipeline

import (
	"context"
	"fmt"

	"github.com/roach88/symhash/internal/ir"
	"github.com/roach88/symhash/internal/pass"
)

// Decision is one pass outcome for one function.
type Decision struct {
	Seq   int64  `json:"seq"`
	Pass  string `json:"pass"`
	Index int    `json:"index"` // position in the module's function table
	pass.Result
}

// Report summarizes a pipeline run.
type Report struct {
	RunID      string     `json:"run_id"`
	Module     string     `json:"module"`
	ModuleHash string     `json:"module_hash"` // hash of the table before the run
	Pipeline   string     `json:"pipeline"`
	Decisions  []Decision `json:"decisions"`
	Renamed    int        `json:"renamed"`
	Skipped    int        `json:"skipped"`
}

// Run applies every pass to every function in m, mutating m in place.
//
// Passes run in pipeline order; within a pass, functions are visited in
// table order and each receives exactly one Apply call. Functions marked
// optnone are skipped for passes that are not Required.
//
// Cancellation is checked between records. On cancellation m may be
// partially renamed and the returned report covers the decisions made.
func (p *Pipeline) Run(ctx context.Context, m *ir.Module) (*Report, error) {
	hash, err := ir.ModuleHash(m)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	report := &Report{
		RunID:      p.runIDs.Generate(),
		Module:     m.Name,
		ModuleHash: hash,
		Pipeline:   p.String(),
	}
	logger := p.logger.With("run_id", report.RunID, "module", m.Name)
	logger.Info("pipeline started", "pipeline", report.Pipeline, "functions", len(m.Functions))

	for _, fp := range p.passes {
		for i := range m.Functions {
			if err := ctx.Err(); err != nil {
				logger.Warn("pipeline cancelled", "pass", fp.Name(), "index", i)
				return report, err
			}

			res := p.apply(fp, &m.Functions[i])
			report.Decisions = append(report.Decisions, Decision{
				Seq:    p.clock.Next(),
				Pass:   fp.Name(),
				Index:  i,
				Result: res,
			})
			if res.Changed {
				report.Renamed++
			} else {
				report.Skipped++
			}
		}
	}

	logger.Info("pipeline finished", "renamed", report.Renamed, "skipped", report.Skipped)
	return report, nil
}

// apply makes the host-level optnone decision, then delegates to the pass.
func (p *Pipeline) apply(fp pass.FunctionPass, fn *ir.Function) pass.Result {
	if fn.HasAttribute(ir.AttrOptNone) && !fp.Required() {
		p.rec.Record(pass.Event{
			Kind:     pass.EventSkip,
			Pass:     fp.Name(),
			Function: fn.Name,
			Reason:   pass.SkipOptNone,
		})
		return pass.Skip(fn.Name, pass.SkipOptNone)
	}
	return fp.Apply(fn)
}

// RunRecord converts the report summary into its store row.
func (r *Report) RunRecord() ir.RunRecord {
	return ir.RunRecord{
		ID:          r.RunID,
		Module:      r.Module,
		ModuleHash:  r.ModuleHash,
		Pipeline:    r.Pipeline,
		Renamed:     r.Renamed,
		Skipped:     r.Skipped,
		IRVersion:   ir.IRVersion,
		ToolVersion: ir.ToolVersion,
	}
}

// DecisionRecords converts every decision into its store row, in seq order.
func (r *Report) DecisionRecords() []ir.DecisionRecord {
	out := make([]ir.DecisionRecord, len(r.Decisions))
	for i, d := range r.Decisions {
		out[i] = ir.DecisionRecord{
			RunID:    r.RunID,
			Seq:      d.Seq,
			Pass:     d.Pass,
			Index:    d.Index,
			Original: d.Original,
			Renamed:  d.Renamed,
			Changed:  d.Changed,
			Reason:   string(d.Reason),
		}
	}
	return out
}
