package snapshot

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cc_session_stats/internal/session"
)

func sampleTotals() *session.Stats {
	totals := session.NewStats("")
	totals.Messages = session.MessageCounts{User: 4, Assistant: 6}
	totals.Tokens = session.TokenTotals{Input: 1000, Output: 500}
	totals.ToolCalls["Read"] = 3
	totals.ToolCalls["Bash"] = 2
	totals.ToolResultSizes["Read"] = session.SizeStat{Count: 3, TotalChars: 900}
	totals.ToolResultSizes["Bash"] = session.SizeStat{Count: 2, TotalChars: 100}
	return totals
}

func TestNew(t *testing.T) {
	snap := New(sampleTotals(), 2, true, "baseline", []string{"Read", "Glob", "Grep"})

	if snap.ID == "" {
		t.Error("snapshot ID should be set")
	}
	if _, err := time.Parse(time.RFC3339, snap.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", snap.Timestamp, err)
	}
	if snap.SessionsCount != 2 {
		t.Errorf("SessionsCount = %d, want 2", snap.SessionsCount)
	}
	if !snap.MCPEnabled {
		t.Error("MCPEnabled should be true")
	}
	if snap.Note != "baseline" {
		t.Errorf("Note = %q, want %q", snap.Note, "baseline")
	}
	if snap.Summary.ReadSearchCalls != 3 {
		t.Errorf("Summary.ReadSearchCalls = %d, want 3", snap.Summary.ReadSearchCalls)
	}
	if snap.Summary.ReadSearchChars != 900 {
		t.Errorf("Summary.ReadSearchChars = %d, want 900", snap.Summary.ReadSearchChars)
	}
	if snap.Summary.TotalToolResultChars != 1000 {
		t.Errorf("Summary.TotalToolResultChars = %d, want 1000", snap.Summary.TotalToolResultChars)
	}
}

func TestNewEmptySessions(t *testing.T) {
	// Export still succeeds with zero contributing sessions
	snap := New(session.Aggregate(nil), 0, false, "", []string{"Read"})
	if snap.SessionsCount != 0 {
		t.Errorf("SessionsCount = %d, want 0", snap.SessionsCount)
	}
	if snap.Summary != (session.Summary{}) {
		t.Errorf("Summary = %+v, want zeros", snap.Summary)
	}
}

func TestExportAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats", "session-stats.jsonl")

	first := New(sampleTotals(), 1, false, "first", []string{"Read"})
	second := New(sampleTotals(), 2, true, "second", []string{"Read"})

	if err := Export(first, path); err != nil {
		t.Fatalf("first Export: %v", err)
	}
	if err := Export(second, path); err != nil {
		t.Fatalf("second Export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var notes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var snap Snapshot
		if err := json.Unmarshal(scanner.Bytes(), &snap); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		notes = append(notes, snap.Note)
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}

	if len(notes) != 2 {
		t.Fatalf("got %d lines, want 2", len(notes))
	}
	if notes[0] != "first" || notes[1] != "second" {
		t.Errorf("lines out of order: %v", notes)
	}
}

func TestExportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	snap := New(sampleTotals(), 3, false, "", []string{"Read"})

	if err := Export(snap, path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal exported line: %v", err)
	}
	if got.ID != snap.ID {
		t.Errorf("ID = %q, want %q", got.ID, snap.ID)
	}
	if got.Tokens != snap.Tokens {
		t.Errorf("Tokens = %+v, want %+v", got.Tokens, snap.Tokens)
	}
	if got.ToolCalls["Read"] != 3 {
		t.Errorf("ToolCalls[Read] = %d, want 3", got.ToolCalls["Read"])
	}
}
