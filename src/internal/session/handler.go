package session

import (
	"context"
	"net/http"
	"time"

	"admin-console-svc/src/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	ValidateSession(c *gin.Context)
	GetValidationHistory(c *gin.Context)
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

// ValidateSession re-checks the caller's own session on demand and returns
// the record together with its derived expiry status. There is no automatic
// retry; the dashboard re-invokes this explicitly.
func (h *handler) ValidateSession(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	userID := c.GetString("user_id")
	sessionID := c.GetString("session_id")

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": sessionID,
	}).Info("ValidateSession request received")

	info, err := h.service.Validate(ctx, userID, sessionID)
	if err != nil {
		logrus.WithError(err).Error("Failed to validate session")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Session validation failed",
			"message": "Unable to validate session",
		})
		return
	}

	if !info.IsValid {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"data":    info,
			"message": "Session is no longer valid",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"session": info,
			"expiry":  h.service.ExpiryStatus(info),
		},
		"message": "Session validated successfully",
	})
}

func (h *handler) GetValidationHistory(c *gin.Context) {
	logrus.Debug("GetValidationHistory request received")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.service.History(),
		"message": "Validation history retrieved successfully",
	})
}
