package models

import "time"

// Role constants
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type Session struct {
	SessionID    string     `json:"sessionId" bson:"session_id"`
	UserID       string     `json:"userId" bson:"user_id"`
	Role         string     `json:"role" bson:"role"`
	IPAddress    string     `json:"ipAddress" bson:"ip_address"`
	UserAgent    string     `json:"userAgent" bson:"user_agent"`
	IsActive     bool       `json:"isActive" bson:"is_active"`
	ExpiresAt    time.Time  `json:"expiresAt" bson:"expires_at"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
	LogoutAt     *time.Time `json:"logoutAt,omitempty" bson:"logout_at,omitempty"`
	LastActiveAt time.Time  `json:"lastActiveAt" bson:"last_active_at"`
}

// SessionInfo is the validated view of a session returned to the dashboard.
type SessionInfo struct {
	SessionID    string    `json:"sessionId"`
	UserID       string    `json:"userId"`
	Role         string    `json:"role"`
	IPAddress    string    `json:"ipAddress"`
	UserAgent    string    `json:"userAgent"`
	LastActivity time.Time `json:"lastActivity"`
	ExpiresAt    time.Time `json:"expiresAt"`
	IsValid      bool      `json:"isValid"`
}

// ToInfo converts a stored session into its validated view. A session is
// valid while it is active, not logged out, and not past its expiry.
func (s *Session) ToInfo(now time.Time) *SessionInfo {
	valid := s.IsActive && s.LogoutAt == nil && now.Before(s.ExpiresAt)
	return &SessionInfo{
		SessionID:    s.SessionID,
		UserID:       s.UserID,
		Role:         s.Role,
		IPAddress:    s.IPAddress,
		UserAgent:    s.UserAgent,
		LastActivity: s.LastActiveAt,
		ExpiresAt:    s.ExpiresAt,
		IsValid:      valid,
	}
}
