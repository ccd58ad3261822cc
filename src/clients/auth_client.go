package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// TokenSource yields the CSRF token attached to outbound secure requests.
type TokenSource interface {
	Current() string
}

// AuthClient handles communication with the auth service
type AuthClient struct {
	baseURL    string
	httpClient *http.Client
	channel    *amqp.Channel
	cfg        *config.QueueConfig
	tokens     TokenSource
}

// NewAuthClient creates new auth service client
func NewAuthClient(cfg *config.Configuration, channel *amqp.Channel, tokens TokenSource) *AuthClient {
	return &AuthClient{
		baseURL: cfg.External.AuthService.URL,
		channel: channel,
		cfg:     &cfg.Queue,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.External.AuthService.Timeout) * time.Second,
		},
	}
}

// GetSessionById retrieves session info from the auth service
func (c *AuthClient) GetSessionById(ctx context.Context, sessionID string) (*models.Session, error) {
	url := fmt.Sprintf("%s/session/%s", c.baseURL, sessionID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrSessionNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned status: %d", resp.StatusCode)
	}

	var response struct {
		Session *models.Session `json:"session"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.Session, nil
}

// InvalidateSession asks the auth service to revoke a session. State-changing,
// so it goes through the secure request path.
func (c *AuthClient) InvalidateSession(ctx context.Context, sessionID string) error {
	path := fmt.Sprintf("/session/%s", sessionID)

	resp, err := c.SecureRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("auth service returned status: %d", resp.StatusCode)
	}

	return nil
}

// SecureRequest performs a state-changing call against the auth service with
// the CSRF token and admin marker attached. It fails before any network I/O
// when no token is currently held.
func (c *AuthClient) SecureRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	token := c.tokens.Current()
	if token == "" {
		return nil, models.ErrCsrfTokenMissing
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-CSRF-Token", token)
	req.Header.Set("X-Admin-Request", "true")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth service: %w", err)
	}

	return resp, nil
}

// PublishAudit publishes an admin audit message to RabbitMQ
func (c *AuthClient) PublishAudit(message models.AuditMessage) error {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal audit message: %w", err)
	}

	err = c.channel.Publish(
		c.cfg.RabbitMQ.Exchange,
		c.cfg.RabbitMQ.AuditRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to publish audit message")
		return fmt.Errorf("failed to publish audit message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     message.UserID,
		"session_id":  message.SessionID,
		"service":     message.ServiceName,
		"action":      message.Action,
		"exchange":    c.cfg.RabbitMQ.Exchange,
		"routing_key": c.cfg.RabbitMQ.AuditRoutingKey,
	}).Debug("Audit message published")

	return nil
}
