package accesslog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Entry struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       string             `json:"userId" bson:"user_id"`
	SessionID    string             `json:"sessionId" bson:"session_id"`
	Action       string             `json:"action" bson:"action"`
	ResourceType string             `json:"resourceType,omitempty" bson:"resource_type,omitempty"`
	ResourceID   string             `json:"resourceId,omitempty" bson:"resource_id,omitempty"`
	IPAddress    string             `json:"ipAddress,omitempty" bson:"ip_address,omitempty"`
	UserAgent    string             `json:"userAgent,omitempty" bson:"user_agent,omitempty"`
	Details      map[string]string  `json:"details,omitempty" bson:"details,omitempty"`
	RiskLevel    string             `json:"riskLevel" bson:"risk_level"`
	Timestamp    time.Time          `json:"timestamp" bson:"timestamp"`
}

// GetLogsRequest carries the access-log filters. Fetching is on demand,
// driven by filter changes, never polled.
type GetLogsRequest struct {
	UserID    string    `json:"userId" form:"userId"`
	Action    string    `json:"action" form:"action"`
	RiskLevel string    `json:"riskLevel" form:"riskLevel"`
	From      time.Time `json:"from" form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        time.Time `json:"to" form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page      int       `json:"page" form:"page"`
	Limit     int       `json:"limit" form:"limit"`
}

type GetLogsResponse struct {
	Logs       []*Entry `json:"logs"`
	TotalCount int64    `json:"totalCount"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"totalPages"`
}

type Alert struct {
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	UserID    string    `json:"userId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AlertSnapshot replaces the previous one wholesale on every check; there is
// no merging or dedup between runs.
type AlertSnapshot struct {
	HasSuspiciousActivity bool      `json:"hasSuspiciousActivity"`
	Alerts                []Alert   `json:"alerts"`
	CheckedAt             time.Time `json:"checkedAt"`
}
