package apikey

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
	ListKeys(c *gin.Context)
	CreateKey(c *gin.Context)
	UpdateKey(c *gin.Context)
	DeleteKey(c *gin.Context)
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

func (h *handler) ListKeys(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	logrus.Info("ListKeys request received")

	keys, err := h.service.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list api keys")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve API keys",
			"message": "Unable to retrieve API keys",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    keys,
		"message": "API keys retrieved successfully",
	})
}

func (h *handler) CreateKey(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": "Please provide a valid API key definition",
		})
		return
	}

	userID := c.GetString("user_id")

	logrus.WithFields(logrus.Fields{
		"name": req.Name,
		"tier": req.Tier,
	}).Info("CreateKey request received")

	response, err := h.service.Create(ctx, userID, &req)
	if err != nil {
		h.handleError(c, err, "Failed to create API key")
		return
	}

	actionCtx := audit.ContextFrom(c)
	actionCtx.ResourceType = "api_key"
	actionCtx.ResourceID = response.Key.ID.Hex()
	h.audit.LogAdminAction(ctx, models.ServiceAdminAPIKeys, models.ActionAPIKeyCreate, actionCtx)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    response,
		"message": "API key created successfully",
	})
}

func (h *handler) UpdateKey(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	keyID := c.Param("id")
	if keyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Key ID is required",
			"message": "Please provide a valid API key ID",
		})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": "Please provide a valid API key update",
		})
		return
	}

	logrus.WithField("key_id", keyID).Info("UpdateKey request received")

	key, err := h.service.Update(ctx, keyID, &req)
	if err != nil {
		h.handleError(c, err, "Failed to update API key")
		return
	}

	actionCtx := audit.ContextFrom(c)
	actionCtx.ResourceType = "api_key"
	actionCtx.ResourceID = keyID
	h.audit.LogAdminAction(ctx, models.ServiceAdminAPIKeys, models.ActionAPIKeyUpdate, actionCtx)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    key,
		"message": "API key updated successfully",
	})
}

func (h *handler) DeleteKey(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	keyID := c.Param("id")
	if keyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Key ID is required",
			"message": "Please provide a valid API key ID",
		})
		return
	}

	logrus.WithField("key_id", keyID).Info("DeleteKey request received")

	if err := h.service.Delete(ctx, keyID); err != nil {
		h.handleError(c, err, "Failed to delete API key")
		return
	}

	actionCtx := audit.ContextFrom(c)
	actionCtx.ResourceType = "api_key"
	actionCtx.ResourceID = keyID
	h.audit.LogAdminAction(ctx, models.ServiceAdminAPIKeys, models.ActionAPIKeyDelete, actionCtx)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "API key deleted successfully",
	})
}

func (h *handler) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrAPIKeyNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "API key not found",
			"message": "No API key found with the provided ID",
		})
	case errors.Is(err, models.ErrInvalidParams):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid parameters",
			"message": "Please provide valid API key parameters",
		})
	default:
		logrus.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   fallback,
			"message": "An internal error occurred",
		})
	}
}
