package logout

import (
	"context"
	"errors"
	"testing"
	"time"

	"admin-console-svc/src/internal/cache"
	"admin-console-svc/src/internal/csrf"
	"admin-console-svc/src/internal/models"
)

type fakeSessionRepo struct {
	markErr     error
	markCalls   int
	activityErr error
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	return nil, models.ErrSessionNotFound
}

func (f *fakeSessionRepo) UpdateActivity(ctx context.Context, sessionID string) error {
	return f.activityErr
}

func (f *fakeSessionRepo) MarkLoggedOut(ctx context.Context, sessionID string) error {
	f.markCalls++
	return f.markErr
}

func (f *fakeSessionRepo) CountActive(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeCache struct {
	cache.Service
	deleteErr   error
	deleteCalls int
	purgeErr    error
	purgeCalls  int
}

func (f *fakeCache) DeleteSessionEntries(ctx context.Context, userID, sessionID string) error {
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeCache) PurgeAdminEntries(ctx context.Context) error {
	f.purgeCalls++
	return f.purgeErr
}

type fakeCsrf struct {
	csrf.Service
	invalidateErr   error
	invalidateCalls int
}

func (f *fakeCsrf) Invalidate(ctx context.Context, sessionID string) error {
	f.invalidateCalls++
	return f.invalidateErr
}

type fakeAuth struct {
	auditErr        error
	auditCalls      int
	invalidateErr   error
	invalidateCalls int
}

func (f *fakeAuth) PublishAudit(message models.AuditMessage) error {
	f.auditCalls++
	return f.auditErr
}

func (f *fakeAuth) InvalidateSession(ctx context.Context, sessionID string) error {
	f.invalidateCalls++
	return f.invalidateErr
}

var stepOrder = []string{
	"audit_log",
	"invalidate_session",
	"clear_session_store",
	"clear_csrf_tokens",
	"purge_cache",
	"finalize",
}

func terminal(status StepStatus) bool {
	return status == StatusCompleted || status == StatusFailed
}

func TestExecuteAllStepsSucceed(t *testing.T) {
	repo := &fakeSessionRepo{}
	cacheFake := &fakeCache{}
	csrfFake := &fakeCsrf{}
	auth := &fakeAuth{}

	var completed bool
	seq := NewSequencer(repo, cacheFake, csrfFake, auth, func(userID, sessionID string) {
		completed = true
	}, nil)

	result := seq.Execute(context.Background(), "admin-1", "sess-1")

	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Steps) != len(stepOrder) {
		t.Fatalf("expected %d steps, got %d", len(stepOrder), len(result.Steps))
	}

	for i, step := range result.Steps {
		if step.ID != stepOrder[i] {
			t.Errorf("step %d: expected %q, got %q", i, stepOrder[i], step.ID)
		}
		if step.Status != StatusCompleted {
			t.Errorf("step %q: expected completed, got %q", step.ID, step.Status)
		}
	}

	if !completed {
		t.Error("expected completion callback to fire")
	}
}

func TestExecuteBestEffortFailuresDoNotPropagate(t *testing.T) {
	repo := &fakeSessionRepo{}
	cacheFake := &fakeCache{purgeErr: models.ErrRedisDelete}
	csrfFake := &fakeCsrf{}
	auth := &fakeAuth{
		auditErr:      errors.New("amqp channel closed"),
		invalidateErr: errors.New("auth service unreachable"),
	}

	seq := NewSequencer(repo, cacheFake, csrfFake, auth, nil, nil)
	result := seq.Execute(context.Background(), "admin-1", "sess-1")

	if result.Err != nil {
		t.Fatalf("best-effort failures must not surface as sequence error, got %v", result.Err)
	}

	statuses := map[string]StepStatus{}
	for _, step := range result.Steps {
		statuses[step.ID] = step.Status
	}

	for _, id := range []string{"audit_log", "invalidate_session", "purge_cache"} {
		if statuses[id] != StatusFailed {
			t.Errorf("step %q: expected failed, got %q", id, statuses[id])
		}
	}
	for _, id := range []string{"clear_session_store", "clear_csrf_tokens", "finalize"} {
		if statuses[id] != StatusCompleted {
			t.Errorf("step %q: expected completed, got %q", id, statuses[id])
		}
	}
}

func TestExecuteRequiredFailurePropagatesButContinues(t *testing.T) {
	repo := &fakeSessionRepo{markErr: models.ErrSessionUpdating}
	cacheFake := &fakeCache{}
	csrfFake := &fakeCsrf{}
	auth := &fakeAuth{}

	seq := NewSequencer(repo, cacheFake, csrfFake, auth, nil, nil)
	result := seq.Execute(context.Background(), "admin-1", "sess-1")

	if !errors.Is(result.Err, models.ErrSessionUpdating) {
		t.Fatalf("expected required-step error to propagate, got %v", result.Err)
	}

	for _, step := range result.Steps {
		if !terminal(step.Status) {
			t.Errorf("step %q left in non-terminal status %q", step.ID, step.Status)
		}
	}

	// Later cleanup still ran exactly once.
	if csrfFake.invalidateCalls != 1 {
		t.Errorf("expected one csrf invalidation, got %d", csrfFake.invalidateCalls)
	}
	if cacheFake.purgeCalls != 1 {
		t.Errorf("expected one cache purge, got %d", cacheFake.purgeCalls)
	}
	if result.Steps[len(result.Steps)-1].Status != StatusCompleted {
		t.Error("finalize must complete regardless of earlier failures")
	}
}

func TestExecuteStorageClearsInvokedExactlyOnce(t *testing.T) {
	repo := &fakeSessionRepo{}
	cacheFake := &fakeCache{}
	csrfFake := &fakeCsrf{}
	auth := &fakeAuth{
		auditErr:      errors.New("audit down"),
		invalidateErr: errors.New("auth down"),
	}

	seq := NewSequencer(repo, cacheFake, csrfFake, auth, nil, nil)
	seq.Execute(context.Background(), "admin-1", "sess-1")

	if repo.markCalls != 1 {
		t.Errorf("expected session store cleared once, got %d", repo.markCalls)
	}
	if cacheFake.deleteCalls != 1 {
		t.Errorf("expected session cache cleared once, got %d", cacheFake.deleteCalls)
	}
	if csrfFake.invalidateCalls != 1 {
		t.Errorf("expected csrf token cleared once, got %d", csrfFake.invalidateCalls)
	}
}

func TestExecuteReportsStepTransitions(t *testing.T) {
	repo := &fakeSessionRepo{}
	auth := &fakeAuth{}

	var transitions []StepStatus
	seq := NewSequencer(repo, &fakeCache{}, &fakeCsrf{}, auth, nil, func(step Step) {
		transitions = append(transitions, step.Status)
	})

	start := time.Now()
	seq.Execute(context.Background(), "admin-1", "sess-1")
	if time.Since(start) > time.Second {
		t.Fatal("sequence took unexpectedly long")
	}

	// Two notifications per step: in_progress, then terminal.
	if len(transitions) != 2*len(stepOrder) {
		t.Fatalf("expected %d transitions, got %d", 2*len(stepOrder), len(transitions))
	}
	for i := 0; i < len(transitions); i += 2 {
		if transitions[i] != StatusInProgress {
			t.Errorf("transition %d: expected in_progress, got %q", i, transitions[i])
		}
		if !terminal(transitions[i+1]) {
			t.Errorf("transition %d: expected terminal status, got %q", i+1, transitions[i+1])
		}
	}
}
