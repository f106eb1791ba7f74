package journal

import (
	"path/filepath"
	"testing"
)

func TestJournalRoundTrip(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer j.Close()

	runID, err := j.BeginRun("organize", "/in", "/out")
	if err != nil {
		t.Fatalf("BeginRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("BeginRun() returned zero id")
	}

	steps := []struct {
		name    string
		success bool
	}{
		{"classify:doc.pdf", true},
		{"place:doc.pdf", true},
		{"compress:doc.pdf", false},
	}
	for i, s := range steps {
		if err := j.RecordStep(runID, i+1, s.name, "", s.success, 10); err != nil {
			t.Fatalf("RecordStep(%d) error = %v", i, err)
		}
	}

	if err := j.FinishRun(runID, true); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	runs, err := j.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() = %d runs, want 1", len(runs))
	}

	run := runs[0]
	if run.Mode != "organize" {
		t.Errorf("Mode = %q, want organize", run.Mode)
	}
	if run.Steps != 3 {
		t.Errorf("Steps = %d, want 3", run.Steps)
	}
	if run.Failed != 1 {
		t.Errorf("Failed = %d, want 1", run.Failed)
	}
	if !run.OK.Valid || !run.OK.Bool {
		t.Errorf("OK = %+v, want true", run.OK)
	}
}

func TestJournalRecentRunsOrder(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer j.Close()

	first, err := j.BeginRun("organize", "/in", "/out")
	if err != nil {
		t.Fatalf("BeginRun() error = %v", err)
	}
	second, err := j.BeginRun("agent", "/in", "/out")
	if err != nil {
		t.Fatalf("BeginRun() error = %v", err)
	}

	runs, err := j.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns() = %d runs, want 2", len(runs))
	}
	// Новые первыми
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("Order = [%d, %d], want [%d, %d]", runs[0].ID, runs[1].ID, second, first)
	}
}
