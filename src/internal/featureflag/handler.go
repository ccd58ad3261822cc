package featureflag

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"admin-console-svc/src/internal/audit"
	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	ListFlags(c *gin.Context)
	UpdateFlag(c *gin.Context)
	BulkUpdateFlags(c *gin.Context)
	ExportFlags(c *gin.Context)
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

func (h *handler) ListFlags(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	logrus.Info("ListFlags request received")

	flags, err := h.service.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list feature flags")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve feature flags",
			"message": "Unable to retrieve feature flags",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    flags,
		"message": "Feature flags retrieved successfully",
	})
}

func (h *handler) UpdateFlag(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Flag key is required",
			"message": "Please provide a valid feature flag key",
		})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": "Please provide a valid feature flag update",
		})
		return
	}

	userID := c.GetString("user_id")

	logrus.WithField("flag_key", key).Info("UpdateFlag request received")

	flag, err := h.service.Update(ctx, key, userID, &req)
	if err != nil {
		h.handleError(c, err, "Failed to update feature flag")
		return
	}

	actionCtx := audit.ContextFrom(c)
	actionCtx.ResourceType = "feature_flag"
	actionCtx.ResourceID = key
	h.audit.LogAdminAction(ctx, models.ServiceAdminFlags, models.ActionFlagUpdate, actionCtx)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    flag,
		"message": "Feature flag updated successfully",
	})
}

func (h *handler) BulkUpdateFlags(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": "Please provide a valid bulk update",
		})
		return
	}

	userID := c.GetString("user_id")

	logrus.WithField("flags", len(req.Flags)).Info("BulkUpdateFlags request received")

	response, err := h.service.BulkUpdate(ctx, userID, &req)
	if err != nil {
		h.handleError(c, err, "Failed to bulk update feature flags")
		return
	}

	actionCtx := audit.ContextFrom(c)
	actionCtx.ResourceType = "feature_flag"
	actionCtx.Details = map[string]string{"updated": strconv.Itoa(response.Updated)}
	h.audit.LogAdminAction(ctx, models.ServiceAdminFlags, models.ActionFlagBulkUpdate, actionCtx)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
		"message": "Feature flags updated successfully",
	})
}

// ExportFlags streams the flag report as a JSON or CSV download.
func (h *handler) ExportFlags(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	format := c.DefaultQuery("format", "json")

	flags, err := h.service.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to export feature flags")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to export feature flags",
			"message": "Unable to export feature flags",
		})
		return
	}

	filename := fmt.Sprintf("feature-flags-%s", time.Now().UTC().Format("2006-01-02"))

	switch format {
	case "csv":
		data, err := ExportCSV(flags)
		if err != nil {
			logrus.WithError(err).Error("Failed to render CSV export")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to export feature flags",
				"message": "Unable to export feature flags",
			})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv", data)
	case "json":
		data, err := ExportJSON(flags, time.Now())
		if err != nil {
			logrus.WithError(err).Error("Failed to render JSON export")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to export feature flags",
				"message": "Unable to export feature flags",
			})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", filename))
		c.Data(http.StatusOK, "application/json", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unsupported export format",
			"message": "Supported formats are json and csv",
		})
	}
}

func (h *handler) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrFeatureFlagNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Feature flag not found",
			"message": "No feature flag found with the provided key",
		})
	case errors.Is(err, models.ErrInvalidParams):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid parameters",
			"message": "Please provide valid feature flag parameters",
		})
	default:
		logrus.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   fallback,
			"message": "An internal error occurred",
		})
	}
}
