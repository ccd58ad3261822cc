package session

import (
	"fmt"
	"testing"
	"time"
)

func TestHistoryKeepsNewestFirst(t *testing.T) {
	history := NewHistory()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		history.Record(HistoryEntry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Success:   true,
		})
	}

	entries := history.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Fatalf("entries not ordered newest first: %v before %v", entries[i-1].Timestamp, entries[i].Timestamp)
		}
	}
}

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	history := NewHistory()

	for i := 0; i < 25; i++ {
		history.Record(HistoryEntry{
			Timestamp: time.Now(),
			Success:   i%2 == 0,
			Error:     fmt.Sprintf("attempt %d", i),
		})
	}

	entries := history.Entries()
	if len(entries) != historyCapacity {
		t.Fatalf("expected %d entries after overflow, got %d", historyCapacity, len(entries))
	}

	// The newest write survives, the oldest ones are evicted.
	if entries[0].Error != "attempt 24" {
		t.Errorf("expected newest entry first, got %q", entries[0].Error)
	}
	if entries[len(entries)-1].Error != "attempt 15" {
		t.Errorf("expected oldest retained entry to be attempt 15, got %q", entries[len(entries)-1].Error)
	}
}

func TestHistoryEntriesReturnsCopy(t *testing.T) {
	history := NewHistory()
	history.Record(HistoryEntry{Success: true})

	entries := history.Entries()
	entries[0].Success = false

	if !history.Entries()[0].Success {
		t.Fatal("mutating the returned slice must not affect the history")
	}
}
