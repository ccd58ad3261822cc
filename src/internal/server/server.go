package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-console-svc/src/clients"
	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/dependency"
	"admin-console-svc/src/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

type Server struct {
	cfg   *config.Configuration
	deps  *dependency.Manager
	jobs  *scheduler.Scheduler
	httpS *http.Server
}

func New(cfg *config.Configuration) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())

	mongodb, err := clients.NewMongoDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize MongoDB client")
	}

	redisClient, err := clients.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize Redis client")
	}

	rabbitMQ, err := clients.NewRabbitMQ(&cfg.Queue)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
	}

	if err := rabbitMQ.SetupExchange(); err != nil {
		log.WithError(err).Fatal("Failed to declare RabbitMQ exchange")
	}

	deps := dependency.NewDependencyManager(router, mongodb, redisClient, rabbitMQ, cfg)

	SetupRoutes(deps)

	return &Server{
		cfg:  cfg,
		deps: deps,
		jobs: setupScheduler(deps),
		httpS: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		},
	}
}

// setupScheduler registers every interval job in one place; no component
// owns its own timer.
func setupScheduler(deps *dependency.Manager) *scheduler.Scheduler {
	jobs := scheduler.New()
	cfg := deps.Config

	jobs.Register("csrf_refresh",
		time.Duration(cfg.Jobs.CsrfRefreshMinutes)*time.Minute,
		deps.CsrfService.Refresh)

	jobs.Register("suspicious_activity",
		time.Duration(cfg.Jobs.SuspiciousIntervalSeconds)*time.Second,
		func(ctx context.Context) error {
			_, err := deps.AccessLogService.CheckSuspiciousActivity(ctx)
			return err
		})

	jobs.Register("metrics_tick",
		time.Duration(cfg.Jobs.MetricsTickSeconds)*time.Second,
		deps.AnalyticsService.CaptureRealtime)

	return jobs
}

func (s *Server) Start() error {
	s.jobs.Start()

	go func() {
		log.Infof("HTTP server listening on :%s", s.cfg.Server.Port)
		if err := s.httpS.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	s.jobs.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.App.Timeout)*time.Second)
	defer cancel()

	if err := s.httpS.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	if err := s.deps.RabbitMQ.Close(); err != nil {
		log.WithError(err).Error("Failed to close RabbitMQ")
	}

	if err := s.deps.Redis.Close(); err != nil {
		log.WithError(err).Error("Failed to close Redis")
	}

	if err := s.deps.Mongodb.Close(ctx); err != nil {
		log.WithError(err).Error("Failed to close MongoDB")
	}

	log.Info("Server stopped")
	return nil
}
