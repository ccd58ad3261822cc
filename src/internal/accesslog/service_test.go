package accesslog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"admin-console-svc/src/internal/cache"
	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"
)

type fakeRepository struct {
	inserted   []*Entry
	entries    []*Entry
	total      int64
	lastReq    *GetLogsRequest
	findErr    error
	userCounts map[string]int64
}

func (f *fakeRepository) Insert(ctx context.Context, entry *Entry) error {
	f.inserted = append(f.inserted, entry)
	return nil
}

func (f *fakeRepository) Find(ctx context.Context, req *GetLogsRequest) ([]*Entry, int64, error) {
	f.lastReq = req
	return f.entries, f.total, f.findErr
}

func (f *fakeRepository) FindSince(ctx context.Context, since time.Time, riskLevels []string) ([]*Entry, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var matched []*Entry
	for _, entry := range f.entries {
		if !entry.Timestamp.Before(since) {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func (f *fakeRepository) CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	return f.userCounts[userID], nil
}

type fakeCache struct {
	cache.Service
	snapshot []byte
	saves    int
}

func (f *fakeCache) SaveAlertSnapshot(ctx context.Context, data []byte) error {
	f.snapshot = data
	f.saves++
	return nil
}

func (f *fakeCache) GetAlertSnapshot(ctx context.Context) ([]byte, error) {
	return f.snapshot, nil
}

func testConfig() *config.Configuration {
	cfg := &config.Configuration{}
	cfg.Search.MinQueryLimit = 20
	cfg.Search.MaxQueryLimit = 100
	return cfg
}

func TestRecordAlwaysAssignsRiskLevel(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo, &fakeCache{}, testConfig())

	entry := &Entry{
		UserID:    "admin-1",
		Action:    "delete_user",
		RiskLevel: "low", // caller-supplied level must be overwritten
	}
	if err := svc.Record(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	if repo.inserted[0].RiskLevel != RiskHigh {
		t.Errorf("risk level = %q, expected %q", repo.inserted[0].RiskLevel, RiskHigh)
	}
	if repo.inserted[0].Timestamp.IsZero() {
		t.Error("expected a timestamp to be assigned")
	}
}

func TestGetLogsClampsPagination(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		page          int
		expectedLimit int
		expectedPage  int
	}{
		{"zero limit takes minimum", 0, 0, 20, 1},
		{"over maximum is clamped", 500, 2, 100, 2},
		{"in range untouched", 50, 3, 50, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{total: 10}
			svc := NewService(repo, &fakeCache{}, testConfig())

			resp, err := svc.GetLogs(context.Background(), &GetLogsRequest{Limit: tt.limit, Page: tt.page})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastReq.Limit != tt.expectedLimit {
				t.Errorf("limit = %d, expected %d", repo.lastReq.Limit, tt.expectedLimit)
			}
			if resp.Page != tt.expectedPage {
				t.Errorf("page = %d, expected %d", resp.Page, tt.expectedPage)
			}
		})
	}
}

func TestGetLogsRejectsUnknownRiskLevel(t *testing.T) {
	svc := NewService(&fakeRepository{}, &fakeCache{}, testConfig())

	_, err := svc.GetLogs(context.Background(), &GetLogsRequest{RiskLevel: "severe"})
	if !errors.Is(err, models.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestCheckSuspiciousActivityReplacesSnapshot(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{
		entries: []*Entry{
			{UserID: "admin-1", Action: "delete_user", RiskLevel: RiskHigh, Timestamp: now.Add(-5 * time.Minute)},
			{UserID: "admin-2", Action: "login", RiskLevel: RiskMedium, Details: map[string]string{"pattern": "failed_login"}, Timestamp: now.Add(-time.Minute)},
		},
	}
	store := &fakeCache{}
	svc := NewService(repo, store, testConfig()).(*logService)
	svc.now = func() time.Time { return now }

	snapshot, err := svc.CheckSuspiciousActivity(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !snapshot.HasSuspiciousActivity {
		t.Error("expected suspicious activity flag")
	}
	if len(snapshot.Alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(snapshot.Alerts))
	}
	if snapshot.Alerts[0].Type != "sensitive_action" {
		t.Errorf("alert type = %q, expected sensitive_action", snapshot.Alerts[0].Type)
	}
	if snapshot.Alerts[1].Type != "failed_login" {
		t.Errorf("alert type = %q, expected failed_login", snapshot.Alerts[1].Type)
	}

	// A quiet follow-up run replaces the stored snapshot wholesale.
	repo.entries = nil
	if _, err := svc.CheckSuspiciousActivity(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saves != 2 {
		t.Fatalf("expected snapshot saved on every check, got %d saves", store.saves)
	}

	var stored AlertSnapshot
	if err := json.Unmarshal(store.snapshot, &stored); err != nil {
		t.Fatalf("stored snapshot is not valid JSON: %v", err)
	}
	if stored.HasSuspiciousActivity || len(stored.Alerts) != 0 {
		t.Errorf("expected the quiet run to clear alerts, got %+v", stored)
	}
}

func TestCheckSuspiciousActivityFlagsRapidActions(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{
		entries: []*Entry{
			{UserID: "admin-1", Action: "modify_permissions_role", RiskLevel: RiskHigh, Timestamp: now.Add(-2 * time.Minute)},
			{UserID: "admin-1", Action: "delete_user", RiskLevel: RiskHigh, Timestamp: now.Add(-time.Minute)},
		},
		userCounts: map[string]int64{"admin-1": 25},
	}
	svc := NewService(repo, &fakeCache{}, testConfig()).(*logService)
	svc.now = func() time.Time { return now }

	snapshot, err := svc.CheckSuspiciousActivity(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rapid int
	for _, alert := range snapshot.Alerts {
		if alert.Type == "rapid_actions" {
			rapid++
			if alert.Severity != RiskMedium {
				t.Errorf("rapid alert severity = %q, expected %q", alert.Severity, RiskMedium)
			}
			if alert.UserID != "admin-1" {
				t.Errorf("rapid alert user = %q, expected admin-1", alert.UserID)
			}
		}
	}

	// One per user, however many of their entries fall in the window.
	if rapid != 1 {
		t.Fatalf("expected exactly one rapid_actions alert, got %d", rapid)
	}
	if len(snapshot.Alerts) != 3 {
		t.Fatalf("expected 2 entry alerts plus 1 rapid alert, got %d", len(snapshot.Alerts))
	}
}

func TestCheckSuspiciousActivityBelowRapidThreshold(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{
		entries: []*Entry{
			{UserID: "admin-1", Action: "delete_user", RiskLevel: RiskHigh, Timestamp: now.Add(-time.Minute)},
		},
		userCounts: map[string]int64{"admin-1": rapidActionThreshold - 1},
	}
	svc := NewService(repo, &fakeCache{}, testConfig()).(*logService)
	svc.now = func() time.Time { return now }

	snapshot, err := svc.CheckSuspiciousActivity(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, alert := range snapshot.Alerts {
		if alert.Type == "rapid_actions" {
			t.Fatal("no rapid_actions alert expected below the threshold")
		}
	}
}

func TestSnapshotWhenNoCheckHasRun(t *testing.T) {
	svc := NewService(&fakeRepository{}, &fakeCache{}, testConfig())

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.HasSuspiciousActivity || len(snapshot.Alerts) != 0 {
		t.Errorf("expected an empty snapshot, got %+v", snapshot)
	}
}
