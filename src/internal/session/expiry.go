package session

import (
	"fmt"
	"time"
)

// ExpiryTier classifies how close a session is to expiring.
type ExpiryTier string

const (
	TierCritical ExpiryTier = "critical"
	TierWarning  ExpiryTier = "warning"
	TierNormal   ExpiryTier = "normal"
)

const (
	criticalThreshold = time.Hour
	warningThreshold  = 2 * time.Hour
)

// Remaining returns the time left before expiry, floored at zero.
func Remaining(expiresAt, now time.Time) time.Duration {
	d := expiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// ClassifyRemaining maps time-to-expiry onto a tier. Boundaries are assigned
// upward: exactly one hour is warning, exactly two hours is normal.
func ClassifyRemaining(d time.Duration) ExpiryTier {
	switch {
	case d < criticalThreshold:
		return TierCritical
	case d < warningThreshold:
		return TierWarning
	default:
		return TierNormal
	}
}

// FormatRemaining renders a duration as "2h 15m", or "45m" under an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int(d%time.Hour) / int(time.Minute)

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
