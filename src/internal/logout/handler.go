package logout

import (
	"context"
	"net/http"
	"time"

	"admin-console-svc/src/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	Logout(c *gin.Context)
}

type handler struct {
	config    *config.Configuration
	sequencer *Sequencer
}

func NewHandler(cfg *config.Configuration, sequencer *Sequencer) Handler {
	return &handler{
		config:    cfg,
		sequencer: sequencer,
	}
}

// Logout runs the cleanup sequence and always reports the caller as logged
// out; per-step outcomes are returned so the dashboard can show progress.
func (h *handler) Logout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	userID := c.GetString("user_id")
	sessionID := c.GetString("session_id")

	result := h.sequencer.Execute(ctx, userID, sessionID)

	if result.Err != nil {
		logrus.WithError(result.Err).WithField("session_id", sessionID).Warn("Logout completed with failed required steps")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result.Steps,
			"message": "Logged out with cleanup errors",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Steps,
		"message": "Logged out successfully",
	})
}
