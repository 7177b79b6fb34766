package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/symhash/internal/ir"
)

// ReadRun returns the run with the given ID, or ErrRunNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, module, module_hash, pipeline, renamed, skipped, ir_version, tool_version
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.RunRecord{}, fmt.Errorf("read run %q: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("read run %q: %w", id, err)
	}
	return run, nil
}

// ListRuns returns every run, oldest first. UUIDv7 IDs sort by creation
// time, so ordering by id is chronological.
//
// Returns an empty slice (not nil) if the log is empty.
func (s *Store) ListRuns(ctx context.Context) ([]ir.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, module, module_hash, pipeline, renamed, skipped, ir_version, tool_version
		FROM runs
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadDecisions returns every decision of a run, ordered by seq.
//
// Returns an empty slice (not nil) if the run has no decisions.
func (s *Store) ReadDecisions(ctx context.Context, runID string) ([]ir.DecisionRecord, error) {
	return s.queryDecisions(ctx, `
		SELECT run_id, seq, pass, fn_index, original, renamed, changed, reason
		FROM decisions
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
}

// ReadFunctionDecisions returns the decisions a run made for one entry of
// the function table, one per pass, ordered by seq.
func (s *Store) ReadFunctionDecisions(ctx context.Context, runID string, index int) ([]ir.DecisionRecord, error) {
	return s.queryDecisions(ctx, `
		SELECT run_id, seq, pass, fn_index, original, renamed, changed, reason
		FROM decisions
		WHERE run_id = ? AND fn_index = ?
		ORDER BY seq ASC
	`, runID, index)
}

func (s *Store) queryDecisions(ctx context.Context, query string, args ...any) ([]ir.DecisionRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	decisions := []ir.DecisionRecord{}
	for rows.Next() {
		var d ir.DecisionRecord
		if err := rows.Scan(&d.RunID, &d.Seq, &d.Pass, &d.Index, &d.Original, &d.Renamed, &d.Changed, &d.Reason); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return decisions, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (ir.RunRecord, error) {
	var run ir.RunRecord
	err := row.Scan(
		&run.ID,
		&run.Module,
		&run.ModuleHash,
		&run.Pipeline,
		&run.Renamed,
		&run.Skipped,
		&run.IRVersion,
		&run.ToolVersion,
	)
	return run, err
}
