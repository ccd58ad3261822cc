package accesslog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"admin-console-svc/src/internal/cache"
	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
)

// suspiciousWindow is how far back each suspicious-activity check looks.
const suspiciousWindow = 15 * time.Minute

// rapidActionThreshold is the per-user action count inside the window that
// raises a rapid_actions alert.
const rapidActionThreshold = 20

type Service interface {
	Record(ctx context.Context, entry *Entry) error
	GetLogs(ctx context.Context, req *GetLogsRequest) (*GetLogsResponse, error)
	CheckSuspiciousActivity(ctx context.Context) (*AlertSnapshot, error)
	Snapshot(ctx context.Context) (*AlertSnapshot, error)
}

type logService struct {
	repo  Repository
	cache cache.Service
	cfg   *config.Configuration
	now   func() time.Time
}

func NewService(repo Repository, cacheService cache.Service, cfg *config.Configuration) Service {
	return &logService{
		repo:  repo,
		cache: cacheService,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Record classifies the entry and persists it. The risk level is always
// assigned here so stored entries never carry a caller-supplied level.
func (s *logService) Record(ctx context.Context, entry *Entry) error {
	entry.RiskLevel = AssessRisk(entry.Action, entry.Details)
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    entry.UserID,
		"action":     entry.Action,
		"risk_level": entry.RiskLevel,
	}).Debug("Access log entry recorded")

	return nil
}

func (s *logService) GetLogs(ctx context.Context, req *GetLogsRequest) (*GetLogsResponse, error) {
	if req.Limit <= 0 {
		req.Limit = s.cfg.Search.MinQueryLimit
	}
	if req.Limit > s.cfg.Search.MaxQueryLimit {
		req.Limit = s.cfg.Search.MaxQueryLimit
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	if req.RiskLevel != "" && !isValidRiskLevel(req.RiskLevel) {
		return nil, models.ErrInvalidParams
	}

	entries, totalCount, err := s.repo.Find(ctx, req)
	if err != nil {
		logrus.WithError(err).Error("Failed to get access logs from repository")
		return nil, err
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(req.Limit)))

	logrus.WithFields(logrus.Fields{
		"logs_count":  len(entries),
		"total_count": totalCount,
		"total_pages": totalPages,
	}).Info("Successfully retrieved access logs")

	return &GetLogsResponse{
		Logs:       entries,
		TotalCount: totalCount,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// CheckSuspiciousActivity scans the recent window for elevated-risk entries
// and replaces the stored alert snapshot wholesale. Runs on the scheduler
// every 30 seconds; results are never merged with the previous run.
func (s *logService) CheckSuspiciousActivity(ctx context.Context) (*AlertSnapshot, error) {
	since := s.now().Add(-suspiciousWindow)

	entries, err := s.repo.FindSince(ctx, since, []string{RiskHigh, RiskMedium})
	if err != nil {
		logrus.WithError(err).Error("Suspicious activity check failed")
		return nil, err
	}

	snapshot := &AlertSnapshot{
		Alerts:    make([]Alert, 0, len(entries)),
		CheckedAt: s.now(),
	}

	for _, entry := range entries {
		snapshot.Alerts = append(snapshot.Alerts, Alert{
			Type:      alertType(entry),
			Severity:  entry.RiskLevel,
			Message:   fmt.Sprintf("%s risk action %q by user %s", entry.RiskLevel, entry.Action, entry.UserID),
			UserID:    entry.UserID,
			Timestamp: entry.Timestamp,
		})
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		if _, ok := seen[entry.UserID]; ok {
			continue
		}
		seen[entry.UserID] = struct{}{}

		count, err := s.repo.CountByUserSince(ctx, entry.UserID, since)
		if err != nil {
			logrus.WithError(err).WithField("user_id", entry.UserID).Warn("Rapid action count failed")
			continue
		}
		if count >= rapidActionThreshold {
			snapshot.Alerts = append(snapshot.Alerts, Alert{
				Type:      "rapid_actions",
				Severity:  RiskMedium,
				Message:   fmt.Sprintf("user %s performed %d actions in the last %s", entry.UserID, count, suspiciousWindow),
				UserID:    entry.UserID,
				Timestamp: s.now(),
			})
		}
	}

	snapshot.HasSuspiciousActivity = len(snapshot.Alerts) > 0

	data, err := json.Marshal(snapshot)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal alert snapshot")
		return nil, err
	}

	if err := s.cache.SaveAlertSnapshot(ctx, data); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"alerts":     len(snapshot.Alerts),
		"suspicious": snapshot.HasSuspiciousActivity,
	}).Debug("Alert snapshot replaced")

	return snapshot, nil
}

// Snapshot returns the latest stored alert snapshot, or an empty one when no
// check has run yet.
func (s *logService) Snapshot(ctx context.Context) (*AlertSnapshot, error) {
	data, err := s.cache.GetAlertSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return &AlertSnapshot{Alerts: []Alert{}, CheckedAt: s.now()}, nil
	}

	var snapshot AlertSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logrus.WithError(err).Error("Failed to unmarshal alert snapshot")
		return nil, models.ErrRedisGet
	}

	return &snapshot, nil
}

func alertType(entry *Entry) string {
	if entry.RiskLevel == RiskHigh {
		return "sensitive_action"
	}
	if entry.Details != nil {
		if pattern := entry.Details[detailsPatternKey]; pattern != "" {
			return pattern
		}
	}
	return "suspicious_pattern"
}

func isValidRiskLevel(level string) bool {
	switch level {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}
