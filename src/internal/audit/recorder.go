package audit

import (
	"context"
	"time"

	"admin-console-svc/src/internal/accesslog"
	"admin-console-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Publisher sends audit messages to the event exchange.
type Publisher interface {
	PublishAudit(message models.AuditMessage) error
}

// Recorder implements admin action logging: every action goes to the audit
// exchange and the access-log store. Both writes are best-effort; failures
// are logged and swallowed so they never abort the admin operation itself.
type Recorder struct {
	publisher Publisher
	logs      accesslog.Service
}

func NewRecorder(publisher Publisher, logs accesslog.Service) *Recorder {
	return &Recorder{
		publisher: publisher,
		logs:      logs,
	}
}

func (r *Recorder) LogAdminAction(ctx context.Context, serviceName, action string, c ActionContext) {
	message := models.AuditMessage{
		UserID:       c.UserID,
		SessionID:    c.SessionID,
		ServiceName:  serviceName,
		Action:       action,
		ResourceType: c.ResourceType,
		ResourceID:   c.ResourceID,
		IPAddress:    c.IPAddress,
		UserAgent:    c.UserAgent,
		Details:      c.Details,
		Timestamp:    time.Now(),
	}

	if err := r.publisher.PublishAudit(message); err != nil {
		logrus.WithError(err).WithField("action", action).Warn("Failed to publish audit message")
	}

	entry := &accesslog.Entry{
		UserID:       c.UserID,
		SessionID:    c.SessionID,
		Action:       action,
		ResourceType: c.ResourceType,
		ResourceID:   c.ResourceID,
		IPAddress:    c.IPAddress,
		UserAgent:    c.UserAgent,
		Details:      c.Details,
	}

	if err := r.logs.Record(ctx, entry); err != nil {
		logrus.WithError(err).WithField("action", action).Warn("Failed to record access log entry")
	}
}

// ActionContext identifies who did what to which resource.
type ActionContext struct {
	UserID       string
	SessionID    string
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
	Details      map[string]string
}

// ContextFrom builds an ActionContext from an authenticated gin request.
func ContextFrom(c *gin.Context) ActionContext {
	return ActionContext{
		UserID:    c.GetString("user_id"),
		SessionID: c.GetString("session_id"),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
