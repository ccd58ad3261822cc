package dependency

import (
	"admin-console-svc/src/clients"
	"admin-console-svc/src/internal/accesslog"
	"admin-console-svc/src/internal/analytics"
	"admin-console-svc/src/internal/apikey"
	"admin-console-svc/src/internal/audit"
	"admin-console-svc/src/internal/cache"
	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/csrf"
	"admin-console-svc/src/internal/featureflag"
	"admin-console-svc/src/internal/logout"
	"admin-console-svc/src/internal/session"
	"admin-console-svc/src/internal/sysconfig"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Manager struct {
	Router   *gin.Engine
	Config   *config.Configuration
	Mongodb  *clients.MongoDB
	Redis    *clients.RedisClient
	RabbitMQ *clients.RabbitMQ

	AuthClient    *clients.AuthClient
	CacheService  cache.Service
	CsrfService   csrf.Service
	AuditRecorder *audit.Recorder

	SessionService   session.Service
	AccessLogService accesslog.Service
	AnalyticsService analytics.Service
	LogoutSequencer  *logout.Sequencer

	SessionHandler   session.Handler
	CsrfHandler      csrf.Handler
	LogoutHandler    logout.Handler
	AccessLogHandler accesslog.Handler
	APIKeyHandler    apikey.Handler
	FlagHandler      featureflag.Handler
	SysConfigHandler sysconfig.Handler
	AnalyticsHandler analytics.Handler
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {
	cacheService := cache.NewCacheService(redisClient.Client, cfg)
	csrfService := csrf.NewService(cacheService, cfg)
	authClient := clients.NewAuthClient(cfg, rabbitMQ.Channel, csrfService)

	sessionRepo := session.NewSessionRepository(mongodb, cfg.Database.Collections.Sessions)
	accessLogRepo := accesslog.NewRepository(mongodb, cfg.Database.Collections.AccessLogs)
	accessLogService := accesslog.NewService(accessLogRepo, cacheService, cfg)
	auditRecorder := audit.NewRecorder(authClient, accessLogService)

	sessionService := session.NewService(sessionRepo, cacheService, authClient, func(sessionID string) {
		logrus.WithField("session_id", sessionID).Warn("Session invalidated")
	})

	logoutSequencer := logout.NewSequencer(sessionRepo, cacheService, csrfService, authClient, nil,
		func(step logout.Step) {
			logrus.WithFields(logrus.Fields{
				"step":   step.ID,
				"status": step.Status,
			}).Debug("Logout step transition")
		})

	analyticsRepo := analytics.NewRepository(mongodb, &cfg.Database.Collections)
	analyticsService := analytics.NewService(analyticsRepo, sessionRepo, cacheService)

	apiKeyRepo := apikey.NewRepository(mongodb, cfg.Database.Collections.APIKeys)
	apiKeyService := apikey.NewService(apiKeyRepo)

	flagRepo := featureflag.NewRepository(mongodb, cfg.Database.Collections.FeatureFlags)
	flagService := featureflag.NewService(flagRepo)

	sysConfigRepo := sysconfig.NewRepository(mongodb, cfg.Database.Collections.SystemConfig)
	sysConfigService := sysconfig.NewService(sysConfigRepo)

	return &Manager{
		Router:   router,
		Config:   cfg,
		Mongodb:  mongodb,
		Redis:    redisClient,
		RabbitMQ: rabbitMQ,

		AuthClient:    authClient,
		CacheService:  cacheService,
		CsrfService:   csrfService,
		AuditRecorder: auditRecorder,

		SessionService:   sessionService,
		AccessLogService: accessLogService,
		AnalyticsService: analyticsService,
		LogoutSequencer:  logoutSequencer,

		SessionHandler:   session.NewHandler(cfg, sessionService),
		CsrfHandler:      csrf.NewHandler(cfg, csrfService),
		LogoutHandler:    logout.NewHandler(cfg, logoutSequencer),
		AccessLogHandler: accesslog.NewHandler(cfg, accessLogService),
		APIKeyHandler:    apikey.NewHandler(cfg, apiKeyService, auditRecorder),
		FlagHandler:      featureflag.NewHandler(cfg, flagService, auditRecorder),
		SysConfigHandler: sysconfig.NewHandler(cfg, sysConfigService, auditRecorder),
		AnalyticsHandler: analytics.NewHandler(cfg, analyticsService),
	}
}
