package accesslog

import "strings"

// Risk level constants
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// detailsPatternKey is the details field checked for suspicious markers.
const detailsPatternKey = "pattern"

// sensitiveActions mark an entry high risk when the action name contains one.
var sensitiveActions = []string{
	"delete_user",
	"modify_permissions",
	"system_config",
}

// suspiciousPatterns mark an entry medium risk via its details pattern tag.
var suspiciousPatterns = map[string]struct{}{
	"rapid_actions":    {},
	"unusual_location": {},
	"failed_login":     {},
}

// AssessRisk classifies an access-log entry by a static rule table: sensitive
// action substring wins over a suspicious details pattern, everything else is
// low. This is a placeholder policy, not a detection system.
func AssessRisk(action string, details map[string]string) string {
	for _, sensitive := range sensitiveActions {
		if strings.Contains(action, sensitive) {
			return RiskHigh
		}
	}

	if details != nil {
		if _, ok := suspiciousPatterns[details[detailsPatternKey]]; ok {
			return RiskMedium
		}
	}

	return RiskLow
}
