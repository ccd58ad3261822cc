package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Service interface {
	GetActiveSession(ctx context.Context, key string) (*models.Session, error)
	UpdateSessionActivity(ctx context.Context, key string) error
	CacheActiveSession(ctx context.Context, session *models.Session) error
	DeleteSessionEntries(ctx context.Context, userID, sessionID string) error

	SaveCsrfToken(ctx context.Context, sessionID, token string, ttl time.Duration) error
	GetCsrfToken(ctx context.Context, sessionID string) (string, error)
	DeleteCsrfToken(ctx context.Context, sessionID string) error

	SaveAnalytics(ctx context.Context, data []byte) error
	GetAnalytics(ctx context.Context) ([]byte, error)
	SaveAlertSnapshot(ctx context.Context, data []byte) error
	GetAlertSnapshot(ctx context.Context) ([]byte, error)

	PurgeAdminEntries(ctx context.Context) error
}

type cacheService struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

const (
	sessionKeyPattern = "session:%s:%s" // session:userID:sessionID
	csrfKeyPattern    = "csrf:%s"       // csrf:sessionID
	alertSnapshotKey  = "admin:alerts"
	adminKeyPrefix    = "admin:*"
)

func NewCacheService(client *redis.Client, cfg *config.Configuration) Service {
	return &cacheService{
		client: client,
		cfg:    &cfg.Cache}
}

func (c *cacheService) GetActiveSession(ctx context.Context, key string) (*models.Session, error) {
	logrus.WithField("key", key).Debug("Getting active session from cache")

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.WithField("key", key).Debug("Session not found in cache")
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get session from cache")
		return nil, models.ErrRedisGet
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to unmarshal session from cache")
		return nil, models.ErrRedisGet
	}

	logrus.WithField("key", key).Debug("Session retrieved from cache successfully")
	return &session, nil
}

func (c *cacheService) UpdateSessionActivity(ctx context.Context, key string) error {
	logrus.WithField("key", key).Debug("Updating session activity in cache")

	session, err := c.GetActiveSession(ctx, key)
	if err != nil || session == nil {
		return err
	}

	session.LastActiveAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal session for activity update")
		return models.ErrRedisSet
	}

	extendedTTL := time.Duration(c.cfg.SessionExpirationMinutes) * time.Minute
	err = c.client.Set(ctx, key, data, extendedTTL).Err()
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to update session activity")
		return models.ErrRedisSet
	}

	logrus.WithField("key", key).Debug("Session activity updated successfully")
	return nil
}

func (c *cacheService) CacheActiveSession(ctx context.Context, session *models.Session) error {
	key := fmt.Sprintf(sessionKeyPattern, session.UserID, session.SessionID)

	data, err := json.Marshal(session)
	if err != nil {
		logrus.WithError(err).WithField("session_id", session.SessionID).Error("Failed to marshal session for cache")
		return models.ErrRedisSet
	}

	expiration := time.Until(session.LastActiveAt.Add(time.Minute * time.Duration(c.cfg.SessionExpirationMinutes)))
	if expiration <= 0 {
		logrus.WithField("session_id", session.SessionID).Warn("Session already expired, not caching")
		return nil
	}

	err = c.client.Set(ctx, key, data, expiration).Err()
	if err != nil {
		logrus.WithError(err).WithField("session_id", session.SessionID).Error("Failed to cache session")
		return models.ErrRedisSet
	}

	logrus.WithField("session_id", session.SessionID).Debug("Session cached successfully")
	return nil
}

func (c *cacheService) DeleteSessionEntries(ctx context.Context, userID, sessionID string) error {
	key := fmt.Sprintf(sessionKeyPattern, userID, sessionID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to delete session from cache")
		return models.ErrRedisDelete
	}

	logrus.WithField("key", key).Debug("Session cache entries deleted")
	return nil
}

func (c *cacheService) SaveCsrfToken(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	key := fmt.Sprintf(csrfKeyPattern, sessionID)

	if err := c.client.Set(ctx, key, token, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to cache csrf token")
		return models.ErrRedisSet
	}

	logrus.WithField("session_id", sessionID).Debug("CSRF token cached")
	return nil
}

func (c *cacheService) GetCsrfToken(ctx context.Context, sessionID string) (string, error) {
	key := fmt.Sprintf(csrfKeyPattern, sessionID)

	token, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil // Not an error, just not found
		}
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to get csrf token from cache")
		return "", models.ErrRedisGet
	}

	return token, nil
}

func (c *cacheService) DeleteCsrfToken(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(csrfKeyPattern, sessionID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to delete csrf token")
		return models.ErrRedisDelete
	}

	logrus.WithField("session_id", sessionID).Debug("CSRF token deleted")
	return nil
}

func (c *cacheService) SaveAnalytics(ctx context.Context, data []byte) error {
	expiration := time.Duration(c.cfg.AnalyticsExpirationMins) * time.Minute
	if err := c.client.Set(ctx, c.cfg.AnalyticsKey, data, expiration).Err(); err != nil {
		logrus.WithError(err).Error("Failed to cache analytics")
		return models.ErrRedisSet
	}
	return nil
}

func (c *cacheService) GetAnalytics(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, c.cfg.AnalyticsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.Debug("Analytics not found in cache")
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).Error("Failed to get analytics from cache")
		return nil, models.ErrRedisGet
	}

	logrus.Debug("Analytics retrieved from cache successfully")
	return data, nil
}

func (c *cacheService) SaveAlertSnapshot(ctx context.Context, data []byte) error {
	if err := c.client.Set(ctx, alertSnapshotKey, data, 0).Err(); err != nil {
		logrus.WithError(err).Error("Failed to cache alert snapshot")
		return models.ErrRedisSet
	}
	return nil
}

func (c *cacheService) GetAlertSnapshot(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, alertSnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).Error("Failed to get alert snapshot from cache")
		return nil, models.ErrRedisGet
	}
	return data, nil
}

// PurgeAdminEntries removes every cached admin dashboard entry. Used by the
// logout sequencer; alert snapshots and analytics are rebuilt by their jobs.
func (c *cacheService) PurgeAdminEntries(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, adminKeyPrefix, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logrus.WithError(err).WithField("key", iter.Val()).Error("Failed to purge cache entry")
			return models.ErrRedisDelete
		}
	}
	if err := iter.Err(); err != nil {
		logrus.WithError(err).Error("Failed to scan admin cache entries")
		return models.ErrRedisGet
	}

	logrus.Debug("Admin cache entries purged")
	return nil
}
