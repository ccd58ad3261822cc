package session

import (
	"sync"
	"time"
)

// historyCapacity bounds the retained validation attempts.
const historyCapacity = 10

// HistoryEntry records one validation attempt.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// History is a fixed-capacity ring of validation attempts, newest first.
// Entries past the capacity are dropped. Safe for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []HistoryEntry
}

func NewHistory() *History {
	return &History{entries: make([]HistoryEntry, 0, historyCapacity)}
}

// Record prepends an entry, evicting the oldest one past capacity.
func (h *History) Record(entry HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]HistoryEntry{entry}, h.entries...)
	if len(h.entries) > historyCapacity {
		h.entries = h.entries[:historyCapacity]
	}
}

// Entries returns a copy of the retained attempts, newest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
