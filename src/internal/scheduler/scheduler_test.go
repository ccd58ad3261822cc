package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestJobRunsImmediatelyAndOnTicks(t *testing.T) {
	var runs int64

	s := New()
	s.Register("counter", 20*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return nil
	})

	s.Start()
	time.Sleep(110 * time.Millisecond)
	s.Stop()

	got := atomic.LoadInt64(&runs)
	if got < 3 {
		t.Fatalf("expected the immediate run plus ticks, got %d runs", got)
	}
}

func TestJobErrorsDoNotStopSchedule(t *testing.T) {
	var runs int64

	s := New()
	s.Register("flaky", 15*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return errors.New("transient failure")
	})

	s.Start()
	time.Sleep(80 * time.Millisecond)
	s.Stop()

	if got := atomic.LoadInt64(&runs); got < 2 {
		t.Fatalf("expected the job to keep running after errors, got %d runs", got)
	}
}

func TestStopCancelsJobContext(t *testing.T) {
	cancelled := make(chan struct{})
	var once int64

	s := New()
	s.Register("watcher", 10*time.Millisecond, func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			if atomic.CompareAndSwapInt64(&once, 0, 1) {
				close(cancelled)
			}
		}()
		return nil
	})

	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("job context was not cancelled on Stop")
	}
}

func TestRegisterAfterStartIsIgnored(t *testing.T) {
	var late int64

	s := New()
	s.Register("first", 10*time.Millisecond, func(ctx context.Context) error { return nil })
	s.Start()

	s.Register("late", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&late, 1)
		return nil
	})

	time.Sleep(40 * time.Millisecond)
	s.Stop()

	if atomic.LoadInt64(&late) != 0 {
		t.Fatal("job registered after Start must not run")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := New()
	s.Register("noop", 10*time.Millisecond, func(ctx context.Context) error { return nil })

	s.Start()
	s.Stop()
	s.Stop()
}
