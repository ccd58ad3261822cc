package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admin-console-svc/src/internal/cache"
	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
)

// AuthGateway is the auth-service lookup used as source of truth when a
// session is in neither the cache nor the local store.
type AuthGateway interface {
	GetSessionById(ctx context.Context, sessionID string) (*models.Session, error)
}

// ExpiryStatus is the derived time-to-expiry view for the dashboard. It is a
// pure function of wall-clock time and is recomputed on every request.
type ExpiryStatus struct {
	Remaining string     `json:"remaining"`
	Tier      ExpiryTier `json:"tier"`
}

type Service interface {
	Validate(ctx context.Context, userID, sessionID string) (*models.SessionInfo, error)
	History() []HistoryEntry
	ExpiryStatus(info *models.SessionInfo) ExpiryStatus
}

type sessionService struct {
	repo      Repository
	cache     cache.Service
	auth      AuthGateway
	history   *History
	onInvalid func(sessionID string)
	now       func() time.Time
}

// NewService builds the session validator. onInvalid is called whenever a
// validation attempt fails or reports an invalid session; it may be nil.
func NewService(repo Repository, cacheService cache.Service, auth AuthGateway, onInvalid func(sessionID string)) Service {
	return &sessionService{
		repo:      repo,
		cache:     cacheService,
		auth:      auth,
		history:   NewHistory(),
		onInvalid: onInvalid,
		now:       time.Now,
	}
}

// Validate resolves the session to its current state: Redis cache first, the
// session store next, the auth service as source of truth last. Errors and
// invalid results both go through the invalidation path; there is no retry.
func (s *sessionService) Validate(ctx context.Context, userID, sessionID string) (*models.SessionInfo, error) {
	sess, err := s.lookup(ctx, userID, sessionID)
	if err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Session validation failed")
		s.record(false, "Session validation failed")
		s.invalidate(sessionID)
		return nil, fmt.Errorf("session validation failed: %w", err)
	}

	info := sess.ToInfo(s.now())
	s.record(info.IsValid, "")

	if !info.IsValid {
		logrus.WithField("session_id", sessionID).Warn("Session reported invalid")
		s.invalidate(sessionID)
		return info, nil
	}

	s.repo.UpdateActivity(ctx, sessionID)

	logrus.WithFields(logrus.Fields{
		"session_id": sessionID,
		"user_id":    info.UserID,
		"role":       info.Role,
	}).Debug("Session validated successfully")

	return info, nil
}

func (s *sessionService) lookup(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	key := fmt.Sprintf("session:%s:%s", userID, sessionID)

	cached, err := s.cache.GetActiveSession(ctx, key)
	if err == nil && cached != nil {
		s.cache.UpdateSessionActivity(ctx, key)
		return cached, nil
	}

	sess, err := s.repo.GetByID(ctx, sessionID)
	if err == nil {
		s.cache.CacheActiveSession(ctx, sess)
		return sess, nil
	}
	if !errors.Is(err, models.ErrSessionNotFound) {
		return nil, err
	}

	sess, err = s.auth.GetSessionById(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.cache.CacheActiveSession(ctx, sess)
	return sess, nil
}

func (s *sessionService) record(success bool, message string) {
	entry := HistoryEntry{
		Timestamp: s.now(),
		Success:   success,
	}
	if !success && message != "" {
		entry.Error = message
	}
	s.history.Record(entry)
}

func (s *sessionService) invalidate(sessionID string) {
	if s.onInvalid != nil {
		s.onInvalid(sessionID)
	}
}

func (s *sessionService) History() []HistoryEntry {
	return s.history.Entries()
}

func (s *sessionService) ExpiryStatus(info *models.SessionInfo) ExpiryStatus {
	remaining := Remaining(info.ExpiresAt, s.now())
	return ExpiryStatus{
		Remaining: FormatRemaining(remaining),
		Tier:      ClassifyRemaining(remaining),
	}
}
