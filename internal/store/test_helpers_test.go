package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/symhash/internal/ir"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run record with minimal required fields.
func createTestRun(id string) ir.RunRecord {
	return ir.RunRecord{
		ID:          id,
		Module:      "hello",
		ModuleHash:  "test-hash",
		Pipeline:    "function(md5-function-name-pass)",
		IRVersion:   ir.IRVersion,
		ToolVersion: ir.ToolVersion,
	}
}

func renameDecision(runID string, seq int64, index int, original string) ir.DecisionRecord {
	return ir.DecisionRecord{
		RunID:    runID,
		Seq:      seq,
		Pass:     "md5-function-name-pass",
		Index:    index,
		Original: original,
		Renamed:  ir.NameDigest(original),
		Changed:  true,
	}
}

func skipDecision(runID string, seq int64, index int, original, reason string) ir.DecisionRecord {
	return ir.DecisionRecord{
		RunID:    runID,
		Seq:      seq,
		Pass:     "md5-function-name-pass",
		Index:    index,
		Original: original,
		Reason:   reason,
	}
}
