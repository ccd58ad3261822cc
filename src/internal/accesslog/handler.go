package accesslog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	GetAccessLogs(c *gin.Context)
	GetSuspiciousActivity(c *gin.Context)
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

func (h *handler) GetAccessLogs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	req := &GetLogsRequest{
		UserID:    c.Query("userId"),
		Action:    c.Query("action"),
		RiskLevel: c.Query("riskLevel"),
		Page:      parseIntParam(c, "page", 1),
		Limit:     parseIntParam(c, "limit", 20),
	}

	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			req.From = parsed
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			req.To = parsed
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    req.UserID,
		"action":     req.Action,
		"risk_level": req.RiskLevel,
		"page":       req.Page,
		"limit":      req.Limit,
	}).Info("GetAccessLogs request received")

	response, err := h.service.GetLogs(ctx, req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid filters",
				"message": "Please provide valid access log filters",
			})
			return
		}
		logrus.WithError(err).Error("Failed to get access logs")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve access logs",
			"message": "Unable to retrieve access logs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
		"message": "Access logs retrieved successfully",
	})
}

// GetSuspiciousActivity returns the latest alert snapshot. The snapshot is
// refreshed by the scheduler, not by this request.
func (h *handler) GetSuspiciousActivity(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	logrus.Debug("GetSuspiciousActivity request received")

	snapshot, err := h.service.Snapshot(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get alert snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve suspicious activity",
			"message": "Unable to retrieve suspicious activity",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshot,
		"message": "Suspicious activity retrieved successfully",
	})
}

func parseIntParam(c *gin.Context, param string, defaultValue int) int {
	value := c.Query(param)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"param": param,
			"value": value,
			"error": err,
		}).Warn("Invalid integer parameter, using default")

		return defaultValue
	}
	return parsed
}
