package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"admin-console-svc/src/internal/accesslog"
	"admin-console-svc/src/internal/cache"
	"admin-console-svc/src/internal/session"

	"github.com/sirupsen/logrus"
)

const defaultWindowDays = 7

type Service interface {
	GetSystemAnalytics(ctx context.Context, params *Params) (*SystemAnalytics, error)
	CaptureRealtime(ctx context.Context) error
	Realtime() *RealtimeMetrics
}

type analyticsService struct {
	repo     Repository
	sessions session.Repository
	cache    cache.Service
	now      func() time.Time

	mu       sync.RWMutex
	realtime RealtimeMetrics
}

func NewService(repo Repository, sessions session.Repository, cacheService cache.Service) Service {
	return &analyticsService{
		repo:     repo,
		sessions: sessions,
		cache:    cacheService,
		now:      time.Now,
	}
}

// GetSystemAnalytics aggregates counts over the requested window. Results
// for the default window are served from the Redis cache when fresh.
func (s *analyticsService) GetSystemAnalytics(ctx context.Context, params *Params) (*SystemAnalytics, error) {
	days := params.Days
	if days <= 0 {
		days = defaultWindowDays
	}

	if days == defaultWindowDays {
		if cached := s.fromCache(ctx); cached != nil {
			logrus.Debug("System analytics served from cache")
			return cached, nil
		}
	}

	result, err := s.aggregate(ctx, days)
	if err != nil {
		logrus.WithError(err).Error("Failed to aggregate system analytics")
		return nil, err
	}

	if days == defaultWindowDays {
		if data, err := json.Marshal(result); err == nil {
			s.cache.SaveAnalytics(ctx, data)
		}
	}

	logrus.WithFields(logrus.Fields{
		"window_days":     result.WindowDays,
		"total_users":     result.TotalUsers,
		"active_sessions": result.ActiveSessions,
		"total_actions":   result.TotalActions,
	}).Info("Successfully aggregated system analytics")

	return result, nil
}

func (s *analyticsService) aggregate(ctx context.Context, days int) (*SystemAnalytics, error) {
	since := s.now().AddDate(0, 0, -days)

	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	activeUsers, err := s.repo.CountActiveUsers(ctx)
	if err != nil {
		return nil, err
	}

	newUsers, err := s.repo.CountNewUsersSince(ctx, since)
	if err != nil {
		return nil, err
	}

	activeSessions, err := s.sessions.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	totalActions, err := s.repo.CountActionsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	highRisk, err := s.repo.CountActionsByRiskSince(ctx, accesslog.RiskHigh, since)
	if err != nil {
		return nil, err
	}

	mediumRisk, err := s.repo.CountActionsByRiskSince(ctx, accesslog.RiskMedium, since)
	if err != nil {
		return nil, err
	}

	return &SystemAnalytics{
		WindowDays:        days,
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		NewUsers:          newUsers,
		ActiveSessions:    activeSessions,
		TotalActions:      totalActions,
		HighRiskActions:   highRisk,
		MediumRiskActions: mediumRisk,
		GeneratedAt:       s.now(),
	}, nil
}

func (s *analyticsService) fromCache(ctx context.Context) *SystemAnalytics {
	data, err := s.cache.GetAnalytics(ctx)
	if err != nil || data == nil {
		return nil
	}

	var cached SystemAnalytics
	if err := json.Unmarshal(data, &cached); err != nil {
		logrus.WithError(err).Error("Failed to unmarshal cached analytics")
		return nil
	}

	return &cached
}

// CaptureRealtime refreshes the realtime gauge; runs on the metrics tick.
func (s *analyticsService) CaptureRealtime(ctx context.Context) error {
	activeSessions, err := s.sessions.CountActive(ctx)
	if err != nil {
		return err
	}

	lastMinute, err := s.repo.CountActionsSince(ctx, s.now().Add(-time.Minute))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.realtime = RealtimeMetrics{
		ActiveSessions:    activeSessions,
		ActionsLastMinute: lastMinute,
		CapturedAt:        s.now(),
	}
	s.mu.Unlock()

	return nil
}

func (s *analyticsService) Realtime() *RealtimeMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.realtime
	return &snapshot
}
