package server

import (
	"time"

	"admin-console-svc/src/clients"
	"admin-console-svc/src/internal/dependency"
	"admin-console-svc/src/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS)

	setupHealthEndpoint(deps)
	setupPublicRoutes(router, deps)
	setupAdminRoutes(router, deps)
}

func setupHealthEndpoint(deps *dependency.Manager) {
	router := deps.Router
	mongodb := deps.Mongodb
	redisClient := deps.Redis
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		log.Info("Health check endpoint requested")

		mongoStatus := "ok"
		if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
			mongoStatus = "error: " + err.Error()
		}

		redisStatus := "ok"
		if err := redisClient.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mongodb":   mongoStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		log.Info("Detailed health check endpoint requested")

		c.JSON(200, gin.H{
			"status":  "operational",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"components": gin.H{
				"database": gin.H{
					"mongodb": getStatus(isMongoConnected(mongodb, c)),
					"redis":   getStatus(isRedisConnected(redisClient.Client, c)),
				},
				"services": gin.H{
					"session":   "operational",
					"csrf":      "operational",
					"analytics": "operational",
				},
			},
		})
	})
}

func setupPublicRoutes(router *gin.Engine, deps *dependency.Manager) {
	// API status endpoint
	router.GET("/api/v1/status", func(c *gin.Context) {
		log.Info("API status requested")
		c.JSON(200, gin.H{
			"api_version": "v1",
			"status":      "operational",
			"service":     "admin-console-svc",
		})
	})
}

func setupAdminRoutes(router *gin.Engine, deps *dependency.Manager) {
	authMiddleware := middleware.NewAuthMiddleware(
		deps.Config.Security.JwtKey,
		deps.SessionService,
	)
	csrfMiddleware := middleware.NewCsrfMiddleware(deps.CsrfService)

	requireAuth := authMiddleware.RequireAuth()
	requireAdmin := authMiddleware.RequireAdminRights()
	requireCsrf := csrfMiddleware.RequireCsrf()

	// Apply route name FIRST, then auth middlewares
	admin := router.Group("/api/v1/admin")
	{
		// Session & security
		admin.GET("/session/validate",
			setRouteName("validateSession"),
			requireAuth, requireAdmin,
			deps.SessionHandler.ValidateSession)

		admin.GET("/session/history",
			setRouteName("getValidationHistory"),
			requireAuth, requireAdmin,
			deps.SessionHandler.GetValidationHistory)

		admin.GET("/csrf-token",
			setRouteName("getCsrfToken"),
			requireAuth, requireAdmin,
			deps.CsrfHandler.GetToken)

		admin.POST("/logout",
			setRouteName("secureLogout"),
			requireAuth, requireAdmin,
			deps.LogoutHandler.Logout)

		// Access logs & alerts
		admin.GET("/access-logs",
			setRouteName("getAccessLogs"),
			requireAuth, requireAdmin,
			deps.AccessLogHandler.GetAccessLogs)

		admin.GET("/suspicious-activity",
			setRouteName("getSuspiciousActivity"),
			requireAuth, requireAdmin,
			deps.AccessLogHandler.GetSuspiciousActivity)

		// API keys
		admin.GET("/api-keys",
			setRouteName("getAPIKeys"),
			requireAuth, requireAdmin,
			deps.APIKeyHandler.ListKeys)

		admin.POST("/api-keys",
			setRouteName("createAPIKey"),
			requireAuth, requireAdmin, requireCsrf,
			deps.APIKeyHandler.CreateKey)

		admin.PATCH("/api-keys/:id",
			setRouteName("updateAPIKey"),
			requireAuth, requireAdmin, requireCsrf,
			deps.APIKeyHandler.UpdateKey)

		admin.DELETE("/api-keys/:id",
			setRouteName("deleteAPIKey"),
			requireAuth, requireAdmin, requireCsrf,
			deps.APIKeyHandler.DeleteKey)

		// Feature flags
		admin.GET("/feature-flags",
			setRouteName("getFeatureFlags"),
			requireAuth, requireAdmin,
			deps.FlagHandler.ListFlags)

		admin.GET("/feature-flags/export",
			setRouteName("exportFeatureFlags"),
			requireAuth, requireAdmin,
			deps.FlagHandler.ExportFlags)

		admin.PATCH("/feature-flags/:key",
			setRouteName("updateFeatureFlag"),
			requireAuth, requireAdmin, requireCsrf,
			deps.FlagHandler.UpdateFlag)

		admin.POST("/feature-flags/bulk",
			setRouteName("bulkUpdateFeatureFlags"),
			requireAuth, requireAdmin, requireCsrf,
			deps.FlagHandler.BulkUpdateFlags)

		// System config
		admin.GET("/system-config",
			setRouteName("getSystemConfig"),
			requireAuth, requireAdmin,
			deps.SysConfigHandler.GetConfig)

		admin.PUT("/system-config/:key",
			setRouteName("updateSystemConfig"),
			requireAuth, requireAdmin, requireCsrf,
			deps.SysConfigHandler.UpdateConfig)

		// Analytics
		admin.GET("/analytics",
			setRouteName("getSystemAnalytics"),
			requireAuth, requireAdmin,
			deps.AnalyticsHandler.GetSystemAnalytics)

		admin.GET("/analytics/realtime",
			setRouteName("getRealtimeMetrics"),
			requireAuth, requireAdmin,
			deps.AnalyticsHandler.GetRealtimeMetrics)
	}
}

func setRouteName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("route_name", name)
		c.Next()
	}
}

func isMongoConnected(mongodb *clients.MongoDB, c *gin.Context) bool {
	if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
		return false
	}
	return true
}

func isRedisConnected(redisClient *redis.Client, c *gin.Context) bool {
	if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
		return false
	}
	return true
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-CSRF-Token, X-Admin-Request")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
