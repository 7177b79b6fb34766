package store

import (
	"context"
	"errors"
	"testing"

	"github.com/roach88/symhash/internal/ir"
)

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "nope")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("ReadRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestReadRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	want := createTestRun("run-1")
	want.Renamed, want.Skipped = 3, 1
	if err := s.WriteRun(ctx, want); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}

	got, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if got != want {
		t.Errorf("ReadRun() = %+v, want %+v", got, want)
	}
}

func TestListRuns_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if runs == nil {
		t.Error("ListRuns() returned nil, want empty slice")
	}
}

func TestListRuns_OrderedByID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"0003", "0001", "0002"} {
		if err := s.WriteRun(ctx, createTestRun(id)); err != nil {
			t.Fatalf("WriteRun(%s) failed: %v", id, err)
		}
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	want := []string{"0001", "0002", "0003"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestReadDecisions_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.WriteRun(ctx, createTestRun("run-1")); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	// Insert out of order.
	for _, d := range []ir.DecisionRecord{
		renameDecision("run-1", 3, 2, "c"),
		renameDecision("run-1", 1, 0, "a"),
		renameDecision("run-1", 2, 1, "b"),
	} {
		if err := s.WriteDecision(ctx, d); err != nil {
			t.Fatalf("WriteDecision() failed: %v", err)
		}
	}

	got, err := s.ReadDecisions(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadDecisions() failed: %v", err)
	}
	for i, d := range got {
		if d.Seq != int64(i+1) {
			t.Errorf("got[%d].Seq = %d, want %d", i, d.Seq, i+1)
		}
	}
}

func TestReadDecisions_UnknownRunEmpty(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ReadDecisions(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ReadDecisions() failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ReadDecisions() = %v, want empty slice", got)
	}
}

func TestReadFunctionDecisions(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-1")
	decisions := []ir.DecisionRecord{
		renameDecision("run-1", 1, 0, "getHello"),
		skipDecision("run-1", 2, 1, "main", "entry point"),
		// Second pass over the same table.
		renameDecision("run-1", 3, 0, ir.NameDigest("getHello")),
		skipDecision("run-1", 4, 1, "main", "entry point"),
	}
	if err := s.WriteReport(ctx, run, decisions); err != nil {
		t.Fatalf("WriteReport() failed: %v", err)
	}

	got, err := s.ReadFunctionDecisions(ctx, "run-1", 0)
	if err != nil {
		t.Fatalf("ReadFunctionDecisions() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[1].Renamed != "c7344a7cb76dff7d94824d711b5ed77a" {
		t.Errorf("second pass renamed = %q", got[1].Renamed)
	}
}
