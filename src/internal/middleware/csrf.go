package middleware

import (
	"net/http"

	"admin-console-svc/src/internal/csrf"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	csrfHeader        = "X-CSRF-Token"
	adminMarkerHeader = "X-Admin-Request"
)

// CsrfMiddleware enforces the CSRF token on state-changing admin routes.
// The shallow non-empty check lives on the client side; the server always
// checks the presented token against the store.
type CsrfMiddleware struct {
	tokens csrf.Service
}

func NewCsrfMiddleware(tokens csrf.Service) *CsrfMiddleware {
	return &CsrfMiddleware{tokens: tokens}
}

// RequireCsrf rejects mutating requests without a valid token and admin
// marker. Must run after RequireAuth so the session is in context.
func (m *CsrfMiddleware) RequireCsrf() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(adminMarkerHeader) != "true" {
			logrus.Warn("Admin request marker missing")
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin request marker required",
			})
			c.Abort()
			return
		}

		token := c.GetHeader(csrfHeader)
		if token == "" {
			logrus.Warn("CSRF token missing")
			c.JSON(http.StatusForbidden, gin.H{
				"error": "CSRF token required",
			})
			c.Abort()
			return
		}

		sessionID := c.GetString("session_id")

		valid, err := m.tokens.Validate(c.Request.Context(), sessionID, token)
		if err != nil {
			logrus.WithError(err).Error("CSRF token validation failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "CSRF validation error",
			})
			c.Abort()
			return
		}

		if !valid {
			logrus.WithField("session_id", sessionID).Warn("CSRF token rejected")
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Invalid CSRF token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
