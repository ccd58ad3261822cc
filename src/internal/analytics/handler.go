package analytics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"admin-console-svc/src/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	GetSystemAnalytics(c *gin.Context)
	GetRealtimeMetrics(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{
		config:  cfg,
		service: service,
	}
}

func (h *handler) GetSystemAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	params := &Params{}
	if days := c.Query("days"); days != "" {
		if parsed, err := strconv.Atoi(days); err == nil {
			params.Days = parsed
		}
	}

	logrus.WithField("days", params.Days).Info("GetSystemAnalytics request received")

	result, err := h.service.GetSystemAnalytics(ctx, params)
	if err != nil {
		logrus.WithError(err).Error("Failed to get system analytics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve system analytics",
			"message": "Unable to retrieve system analytics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
		"message": "System analytics retrieved successfully",
	})
}

// GetRealtimeMetrics serves the in-memory snapshot maintained by the
// metrics tick job; it never hits storage on the request path.
func (h *handler) GetRealtimeMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.service.Realtime(),
		"message": "Realtime metrics retrieved successfully",
	})
}
