package csrf

import (
	"context"
	"net/http"
	"time"

	"admin-console-svc/src/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	GetToken(c *gin.Context)
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

// GetToken issues a fresh CSRF token for the authenticated session. The
// previous token, if any, is replaced wholesale.
func (h *handler) GetToken(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	sessionID := c.GetString("session_id")

	logrus.WithField("session_id", sessionID).Debug("GetToken request received")

	token, err := h.service.Issue(ctx, sessionID)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue csrf token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to issue CSRF token",
			"message": "Unable to issue CSRF token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    token,
		"message": "CSRF token issued successfully",
	})
}
