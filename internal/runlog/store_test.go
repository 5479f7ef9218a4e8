package runlog

import (
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAssignsRunID(t *testing.T) {
	s := openStore(t)

	id, err := s.Append(Entry{
		Tool:   "evaluate",
		Inputs: []string{"test.csv", "pipeline.json"},
		Result: map[string]float64{"accuracy": 0.75},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated run id")
	}
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	s := openStore(t)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i, tool := range []string{"evaluate", "corr-report"} {
		_, err := s.Append(Entry{
			Tool:      tool,
			Inputs:    []string{"in.csv"},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("append %s: %v", tool, err)
		}
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Tool != "corr-report" || got[1].Tool != "evaluate" {
		t.Fatalf("order = [%s %s], want newest first", got[0].Tool, got[1].Tool)
	}
	if len(got[0].Inputs) != 1 || got[0].Inputs[0] != "in.csv" {
		t.Fatalf("inputs round-trip failed: %v", got[0].Inputs)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s1.Append(Entry{Tool: "evaluate"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	got, err := s2.Recent(1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected persisted entry, got %d", len(got))
	}
}
