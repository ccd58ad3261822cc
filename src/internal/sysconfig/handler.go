package sysconfig

import (
	"context"
	"errors"
	"net/http"
	"time"

	"admin-console-svc/src/internal/audit"
	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	GetConfig(c *gin.Context)
	UpdateConfig(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
	audit   *audit.Recorder
}

func NewHandler(cfg *config.Configuration, service Service, auditRecorder *audit.Recorder) Handler {
	return &handler{
		config:  cfg,
		service: service,
		audit:   auditRecorder,
	}
}

func (h *handler) GetConfig(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	logrus.Info("GetConfig request received")

	entries, err := h.service.GetConfig(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get system config")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve system configuration",
			"message": "Unable to retrieve system configuration",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"message": "System configuration retrieved successfully",
	})
}

func (h *handler) UpdateConfig(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Config key is required",
			"message": "Please provide a valid configuration key",
		})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": "Please provide a valid configuration update",
		})
		return
	}

	userID := c.GetString("user_id")

	logrus.WithField("config_key", key).Info("UpdateConfig request received")

	entry, err := h.service.UpdateConfig(ctx, key, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidParams):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid parameters",
				"message": "Please provide valid configuration parameters",
			})
		default:
			logrus.WithError(err).Error("Failed to update system config")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to update system configuration",
				"message": "An internal error occurred",
			})
		}
		return
	}

	actionCtx := audit.ContextFrom(c)
	actionCtx.ResourceType = "system_config"
	actionCtx.ResourceID = key
	h.audit.LogAdminAction(ctx, models.ServiceAdminSysConfig, models.ActionSystemConfigWrite, actionCtx)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entry,
		"message": "System configuration updated successfully",
	})
}
