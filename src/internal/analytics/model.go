package analytics

import "time"

// Params selects the reporting window in days.
type Params struct {
	Days int `json:"days" form:"days"`
}

type SystemAnalytics struct {
	WindowDays        int       `json:"windowDays"`
	TotalUsers        int64     `json:"totalUsers"`
	ActiveUsers       int64     `json:"activeUsers"`
	NewUsers          int64     `json:"newUsers"`
	ActiveSessions    int64     `json:"activeSessions"`
	TotalActions      int64     `json:"totalActions"`
	HighRiskActions   int64     `json:"highRiskActions"`
	MediumRiskActions int64     `json:"mediumRiskActions"`
	GeneratedAt       time.Time `json:"generatedAt"`
}

// RealtimeMetrics is the snapshot refreshed by the metrics tick job.
type RealtimeMetrics struct {
	ActiveSessions    int64     `json:"activeSessions"`
	ActionsLastMinute int64     `json:"actionsLastMinute"`
	CapturedAt        time.Time `json:"capturedAt"`
}
