package csrf

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"admin-console-svc/src/internal/cache"
	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
)

// serviceSessionID keys the token this process uses for its own outbound
// secure calls, as opposed to tokens issued to dashboard sessions.
const serviceSessionID = "service"

const tokenBytes = 32

// Token is what the dashboard receives when it asks for a CSRF token.
type Token struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

type Service interface {
	// Issue mints a fresh token for a session, replacing any previous one.
	Issue(ctx context.Context, sessionID string) (*Token, error)
	// Validate checks a presented token against the stored one.
	Validate(ctx context.Context, sessionID, token string) (bool, error)
	// Invalidate drops the stored token for a session.
	Invalidate(ctx context.Context, sessionID string) error
	// Refresh replaces the service's own outbound token.
	Refresh(ctx context.Context) error
	// Current returns the outbound token, empty when none is held.
	Current() string
	// HasToken is the shallow local check: token present, nothing more.
	// It deliberately proves nothing about server-side validity.
	HasToken() bool
}

type csrfService struct {
	cache cache.Service
	ttl   time.Duration

	mu       sync.RWMutex
	outbound string
}

func NewService(cacheService cache.Service, cfg *config.Configuration) Service {
	return &csrfService{
		cache: cacheService,
		ttl:   time.Duration(cfg.Security.CsrfTokenTTLMinutes) * time.Minute,
	}
}

func (s *csrfService) Issue(ctx context.Context, sessionID string) (*Token, error) {
	token, err := generateToken()
	if err != nil {
		logrus.WithError(err).Error("Failed to generate csrf token")
		return nil, models.ErrCsrfTokenIssuing
	}

	if err := s.cache.SaveCsrfToken(ctx, sessionID, token, s.ttl); err != nil {
		return nil, models.ErrCsrfTokenIssuing
	}

	logrus.WithField("session_id", sessionID).Debug("CSRF token issued")

	return &Token{
		Token:     token,
		ExpiresIn: int(s.ttl.Seconds()),
	}, nil
}

func (s *csrfService) Validate(ctx context.Context, sessionID, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	stored, err := s.cache.GetCsrfToken(ctx, sessionID)
	if err != nil {
		return false, err
	}

	return stored != "" && stored == token, nil
}

func (s *csrfService) Invalidate(ctx context.Context, sessionID string) error {
	if err := s.cache.DeleteCsrfToken(ctx, sessionID); err != nil {
		return models.ErrCsrfTokenDeleting
	}
	return nil
}

// Refresh mints a new outbound token and swaps it in wholesale. The previous
// token is gone once this returns; callers pick up the new one via Current.
func (s *csrfService) Refresh(ctx context.Context) error {
	issued, err := s.Issue(ctx, serviceSessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.outbound = issued.Token
	s.mu.Unlock()

	logrus.Debug("Outbound CSRF token refreshed")
	return nil
}

func (s *csrfService) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outbound
}

func (s *csrfService) HasToken() bool {
	return s.Current() != ""
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
