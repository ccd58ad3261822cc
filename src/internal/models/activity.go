package models

import "time"

// AuditMessage is published to the audit exchange for every admin action.
type AuditMessage struct {
	UserID       string            `json:"user_id"`
	SessionID    string            `json:"session_id"`
	ServiceName  string            `json:"service_name"`
	Action       string            `json:"action"`
	ResourceType string            `json:"resource_type,omitempty"`
	ResourceID   string            `json:"resource_id,omitempty"`
	IPAddress    string            `json:"ip_address,omitempty"`
	UserAgent    string            `json:"user_agent,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Audit action constants
const (
	ActionAdminLogout       = "admin_logout"
	ActionAPIKeyCreate      = "api_key_create"
	ActionAPIKeyUpdate      = "api_key_update"
	ActionAPIKeyDelete      = "api_key_delete"
	ActionFlagUpdate        = "feature_flag_update"
	ActionFlagBulkUpdate    = "feature_flag_bulk_update"
	ActionSystemConfigWrite = "system_config_update"
)

// Service name constants
const (
	ServiceAdminLogout    = "admin.logout.sequencer"
	ServiceAdminAPIKeys   = "admin.handler.api_keys"
	ServiceAdminFlags     = "admin.handler.feature_flags"
	ServiceAdminSysConfig = "admin.handler.system_config"
)
