package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/symhash/internal/ir"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WriteRun inserts a run record.
// Uses ON CONFLICT(id) DO NOTHING: rewriting a run ID is a no-op.
func (s *Store) WriteRun(ctx context.Context, run ir.RunRecord) error {
	if err := writeRun(ctx, s.db, run); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteDecision inserts one decision. The referenced run must exist
// (foreign key constraint).
func (s *Store) WriteDecision(ctx context.Context, d ir.DecisionRecord) error {
	if err := writeDecision(ctx, s.db, d); err != nil {
		return fmt.Errorf("write decision: %w", err)
	}
	return nil
}

// WriteReport stores a run and all of its decisions in one transaction.
// Either every row lands or none does.
func (s *Store) WriteReport(ctx context.Context, run ir.RunRecord, decisions []ir.DecisionRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write report: begin: %w", err)
	}
	defer tx.Rollback()

	if err := writeRun(ctx, tx, run); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	for _, d := range decisions {
		if d.RunID != run.ID {
			return fmt.Errorf("write report: decision seq %d belongs to run %q, not %q", d.Seq, d.RunID, run.ID)
		}
		if err := writeDecision(ctx, tx, d); err != nil {
			return fmt.Errorf("write report: seq %d: %w", d.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write report: commit: %w", err)
	}
	return nil
}

func writeRun(ctx context.Context, db execer, run ir.RunRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO runs
		(id, module, module_hash, pipeline, renamed, skipped, ir_version, tool_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Module,
		run.ModuleHash,
		run.Pipeline,
		run.Renamed,
		run.Skipped,
		run.IRVersion,
		run.ToolVersion,
	)
	return err
}

func writeDecision(ctx context.Context, db execer, d ir.DecisionRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO decisions
		(run_id, seq, pass, fn_index, original, renamed, changed, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO NOTHING
	`,
		d.RunID,
		d.Seq,
		d.Pass,
		d.Index,
		d.Original,
		d.Renamed,
		d.Changed,
		d.Reason,
	)
	return err
}
