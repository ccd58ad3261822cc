package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Current() string {
	return s.token
}

func newTestClient(url, token string) *AuthClient {
	cfg := &config.Configuration{}
	cfg.External.AuthService.URL = url
	cfg.External.AuthService.Timeout = 5
	return NewAuthClient(cfg, nil, &staticTokens{token: token})
}

func TestSecureRequestFailsFastWithoutToken(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	_, err := client.SecureRequest(context.Background(), http.MethodDelete, "/session/sess-1", nil)
	if !errors.Is(err, models.ErrCsrfTokenMissing) {
		t.Fatalf("expected ErrCsrfTokenMissing, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("request must not reach the network without a token, got %d calls", hits)
	}
}

func TestSecureRequestAttachesHeaders(t *testing.T) {
	const token = "a1b2c3d4e5f6"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-CSRF-Token"); got != token {
			t.Errorf("X-CSRF-Token = %q, expected %q", got, token)
		}
		if got := r.Header.Get("X-Admin-Request"); got != "true" {
			t.Errorf("X-Admin-Request = %q, expected %q", got, "true")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, token)

	resp, err := client.SecureRequest(context.Background(), http.MethodDelete, "/session/sess-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
}

func TestSecureRequestMarshalsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, expected application/json", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "token")

	resp, err := client.SecureRequest(context.Background(), http.MethodPost, "/session/revoke",
		map[string]string{"reason": "admin_logout"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
}

func TestInvalidateSessionSurfacesUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "token")

	if err := client.InvalidateSession(context.Background(), "sess-1"); err == nil {
		t.Fatal("expected error for upstream 500")
	}
}

func TestGetSessionByIdNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	_, err := client.GetSessionById(context.Background(), "missing")
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
