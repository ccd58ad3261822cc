package csrf

import (
	"context"
	"testing"
	"time"

	"admin-console-svc/src/internal/cache"
	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"
)

type fakeCache struct {
	cache.Service
	tokens  map[string]string
	ttls    map[string]time.Duration
	saveErr error
	getErr  error
	delErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		tokens: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (f *fakeCache) SaveCsrfToken(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.tokens[sessionID] = token
	f.ttls[sessionID] = ttl
	return nil
}

func (f *fakeCache) GetCsrfToken(ctx context.Context, sessionID string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.tokens[sessionID], nil
}

func (f *fakeCache) DeleteCsrfToken(ctx context.Context, sessionID string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.tokens, sessionID)
	return nil
}

func newTestService(store *fakeCache) Service {
	cfg := &config.Configuration{}
	cfg.Security.CsrfTokenTTLMinutes = 30
	return NewService(store, cfg)
}

func TestIssueStoresTokenWithTTL(t *testing.T) {
	store := newFakeCache()
	svc := newTestService(store)

	issued, err := svc.Issue(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(issued.Token) != 2*tokenBytes {
		t.Errorf("expected %d hex chars, got %d", 2*tokenBytes, len(issued.Token))
	}
	if issued.ExpiresIn != 30*60 {
		t.Errorf("expiresIn = %d, expected %d", issued.ExpiresIn, 30*60)
	}
	if store.tokens["sess-1"] != issued.Token {
		t.Error("issued token not stored for the session")
	}
	if store.ttls["sess-1"] != 30*time.Minute {
		t.Errorf("stored ttl = %v, expected 30m", store.ttls["sess-1"])
	}
}

func TestIssueReplacesPreviousToken(t *testing.T) {
	store := newFakeCache()
	svc := newTestService(store)

	first, _ := svc.Issue(context.Background(), "sess-1")
	second, err := svc.Issue(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Token == second.Token {
		t.Fatal("expected a fresh token on re-issue")
	}
	if store.tokens["sess-1"] != second.Token {
		t.Error("store still holds the old token")
	}
}

func TestValidate(t *testing.T) {
	store := newFakeCache()
	svc := newTestService(store)

	issued, _ := svc.Issue(context.Background(), "sess-1")

	tests := []struct {
		name      string
		sessionID string
		token     string
		expected  bool
	}{
		{"matching token", "sess-1", issued.Token, true},
		{"wrong token", "sess-1", "forged", false},
		{"empty token", "sess-1", "", false},
		{"unknown session", "sess-2", issued.Token, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.Validate(context.Background(), tt.sessionID, tt.token)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.expected {
				t.Errorf("Validate = %v, expected %v", ok, tt.expected)
			}
		})
	}
}

func TestInvalidateDropsToken(t *testing.T) {
	store := newFakeCache()
	svc := newTestService(store)

	issued, _ := svc.Issue(context.Background(), "sess-1")

	if err := svc.Invalidate(context.Background(), "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := svc.Validate(context.Background(), "sess-1", issued.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("token must not validate after invalidation")
	}
}

func TestInvalidateMapsStoreError(t *testing.T) {
	store := newFakeCache()
	store.delErr = models.ErrRedisDelete
	svc := newTestService(store)

	if err := svc.Invalidate(context.Background(), "sess-1"); err != models.ErrCsrfTokenDeleting {
		t.Fatalf("expected ErrCsrfTokenDeleting, got %v", err)
	}
}

func TestRefreshSwapsOutboundToken(t *testing.T) {
	store := newFakeCache()
	svc := newTestService(store)

	if svc.HasToken() {
		t.Fatal("no outbound token expected before first refresh")
	}
	if svc.Current() != "" {
		t.Fatal("Current must be empty before first refresh")
	}

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := svc.Current()
	if first == "" || !svc.HasToken() {
		t.Fatal("expected an outbound token after refresh")
	}
	if store.tokens[serviceSessionID] != first {
		t.Error("outbound token not stored under the service session")
	}

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Current() == first {
		t.Fatal("refresh must replace the outbound token wholesale")
	}
}

func TestRefreshKeepsOldTokenOnStoreFailure(t *testing.T) {
	store := newFakeCache()
	svc := newTestService(store)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := svc.Current()

	store.saveErr = models.ErrRedisSet
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh to fail when the store is down")
	}

	if svc.Current() != before {
		t.Error("a failed refresh must not clear the held token")
	}
}
