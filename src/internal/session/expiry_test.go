package session

import (
	"testing"
	"time"
)

func TestRemainingFloorsAtZero(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := Remaining(now.Add(-time.Minute), now); got != 0 {
		t.Errorf("expected 0 for expired session, got %v", got)
	}
	if got := Remaining(now.Add(90*time.Minute), now); got != 90*time.Minute {
		t.Errorf("expected 90m, got %v", got)
	}
}

func TestClassifyRemaining(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected ExpiryTier
	}{
		{"expired", 0, TierCritical},
		{"under an hour", 59 * time.Minute, TierCritical},
		{"exactly one hour", time.Hour, TierWarning},
		{"ninety minutes", 90 * time.Minute, TierWarning},
		{"just under two hours", 2*time.Hour - time.Minute, TierWarning},
		{"exactly two hours", 2 * time.Hour, TierNormal},
		{"half a day", 12 * time.Hour, TierNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRemaining(tt.d); got != tt.expected {
				t.Errorf("ClassifyRemaining(%v) = %q, expected %q", tt.d, got, tt.expected)
			}
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{time.Hour, "1h 0m"},
		{45 * time.Minute, "45m"},
		{0, "0m"},
		{-time.Minute, "0m"},
	}

	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.expected {
			t.Errorf("FormatRemaining(%v) = %q, expected %q", tt.d, got, tt.expected)
		}
	}
}
