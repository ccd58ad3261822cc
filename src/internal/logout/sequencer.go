package logout

import (
	"context"
	"time"

	"admin-console-svc/src/internal/cache"
	"admin-console-svc/src/internal/csrf"
	"admin-console-svc/src/internal/models"
	"admin-console-svc/src/internal/session"

	"github.com/sirupsen/logrus"
)

type StepStatus string

const (
	StatusPending    StepStatus = "pending"
	StatusInProgress StepStatus = "in_progress"
	StatusCompleted  StepStatus = "completed"
	StatusFailed     StepStatus = "failed"
)

// Step is the progress view of one cleanup action.
type Step struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      StepStatus `json:"status"`
	Error       string     `json:"error,omitempty"`
}

// Result reports the full sequence outcome. Err carries the first failure
// from a required step; best-effort failures only show up in Steps.
type Result struct {
	Steps []Step `json:"steps"`
	Err   error  `json:"-"`
}

// AuthGateway covers the remote calls the sequencer makes.
type AuthGateway interface {
	InvalidateSession(ctx context.Context, sessionID string) error
	PublishAudit(message models.AuditMessage) error
}

// Sequencer runs the fixed logout cleanup sequence. Steps execute strictly
// in order; a failed step never stops the ones after it. The end state is
// always "session logged out locally", however many steps failed.
type Sequencer struct {
	repo       session.Repository
	cache      cache.Service
	csrf       csrf.Service
	auth       AuthGateway
	onComplete func(userID, sessionID string)
	observer   func(step Step)
}

// NewSequencer builds the sequencer. onComplete and observer may be nil;
// observer receives every step status transition for progress reporting.
func NewSequencer(repo session.Repository, cacheService cache.Service, csrfService csrf.Service,
	auth AuthGateway, onComplete func(userID, sessionID string), observer func(step Step)) *Sequencer {
	return &Sequencer{
		repo:       repo,
		cache:      cacheService,
		csrf:       csrfService,
		auth:       auth,
		onComplete: onComplete,
		observer:   observer,
	}
}

type stepDef struct {
	id          string
	name        string
	description string
	required    bool
	run         func(ctx context.Context) error
}

// Execute runs all six steps top to bottom and returns their terminal
// statuses. Required-step errors are collected into Result.Err but never
// halt the sequence.
func (s *Sequencer) Execute(ctx context.Context, userID, sessionID string) *Result {
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": sessionID,
	}).Info("Logout sequence started")

	defs := s.steps(userID, sessionID)
	result := &Result{Steps: make([]Step, len(defs))}

	for i, def := range defs {
		step := Step{
			ID:          def.id,
			Name:        def.name,
			Description: def.description,
			Status:      StatusInProgress,
		}
		s.notify(step)

		err := def.run(ctx)
		if err != nil {
			step.Status = StatusFailed
			step.Error = err.Error()

			logrus.WithError(err).WithFields(logrus.Fields{
				"step":       def.id,
				"session_id": sessionID,
			}).Warn("Logout step failed, continuing")

			if def.required && result.Err == nil {
				result.Err = err
			}
		} else {
			step.Status = StatusCompleted
		}

		s.notify(step)
		result.Steps[i] = step
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": sessionID,
	}).Info("Logout sequence finished")

	return result
}

func (s *Sequencer) steps(userID, sessionID string) []stepDef {
	return []stepDef{
		{
			id:          "audit_log",
			name:        "Audit log",
			description: "Record the logout in the audit trail",
			run: func(ctx context.Context) error {
				return s.auth.PublishAudit(models.AuditMessage{
					UserID:      userID,
					SessionID:   sessionID,
					ServiceName: models.ServiceAdminLogout,
					Action:      models.ActionAdminLogout,
					Timestamp:   time.Now(),
				})
			},
		},
		{
			id:          "invalidate_session",
			name:        "Invalidate remote session",
			description: "Ask the auth service to revoke the session",
			run: func(ctx context.Context) error {
				return s.auth.InvalidateSession(ctx, sessionID)
			},
		},
		{
			id:          "clear_session_store",
			name:        "Clear session store",
			description: "Mark the session logged out and drop its cache entries",
			required:    true,
			run: func(ctx context.Context) error {
				if err := s.repo.MarkLoggedOut(ctx, sessionID); err != nil {
					return err
				}
				return s.cache.DeleteSessionEntries(ctx, userID, sessionID)
			},
		},
		{
			id:          "clear_csrf_tokens",
			name:        "Clear CSRF tokens",
			description: "Drop the CSRF token issued to this session",
			required:    true,
			run: func(ctx context.Context) error {
				return s.csrf.Invalidate(ctx, sessionID)
			},
		},
		{
			id:          "purge_cache",
			name:        "Purge cached data",
			description: "Remove cached admin dashboard entries",
			run: func(ctx context.Context) error {
				return s.cache.PurgeAdminEntries(ctx)
			},
		},
		{
			id:          "finalize",
			name:        "Finalize",
			description: "Signal logout completion",
			run: func(ctx context.Context) error {
				if s.onComplete != nil {
					s.onComplete(userID, sessionID)
				}
				return nil
			},
		},
	}
}

func (s *Sequencer) notify(step Step) {
	if s.observer != nil {
		s.observer(step)
	}
}
