package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunStopsOnTerminalStatus(t *testing.T) {
	var calls int64

	p := &Poller{
		Interval: 5 * time.Millisecond,
		Fetch: func(ctx context.Context) (string, error) {
			n := atomic.AddInt64(&calls, 1)
			if n >= 3 {
				return "approved", nil
			}
			return "pending", nil
		},
	}

	status, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if status != "approved" {
		t.Fatalf("expected approved, got %q", status)
	}
	if got := atomic.LoadInt64(&calls); got != 3 {
		t.Fatalf("expected 3 fetches, got %d", got)
	}
}

func TestRunReturnsImmediatelyWhenAlreadyTerminal(t *testing.T) {
	p := &Poller{
		Interval: time.Hour, // 命中首查就返回，间隔不应该被等到
		Fetch: func(ctx context.Context) (string, error) {
			return "rejected", nil
		},
	}

	done := make(chan struct{})
	var status string
	go func() {
		status, _ = p.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return on initial terminal status")
	}
	if status != "rejected" {
		t.Fatalf("expected rejected, got %q", status)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := &Poller{
		Interval: 5 * time.Millisecond,
		Fetch: func(ctx context.Context) (string, error) {
			return "pending", nil
		},
	}

	done := make(chan error, 1)
	go func() {
		_, err := p.Run(ctx)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run leaked after context cancellation")
	}
}

func TestRunKeepsPollingThroughFetchErrors(t *testing.T) {
	var calls int64

	p := &Poller{
		Interval: 5 * time.Millisecond,
		Fetch: func(ctx context.Context) (string, error) {
			n := atomic.AddInt64(&calls, 1)
			if n < 3 {
				return "", context.DeadlineExceeded
			}
			return "approved", nil
		},
	}

	status, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if status != "approved" {
		t.Fatalf("expected approved after transient errors, got %q", status)
	}
}

func TestRunRequiresFetcher(t *testing.T) {
	p := &Poller{}
	if _, err := p.Run(context.Background()); err != ErrNoFetcher {
		t.Fatalf("expected ErrNoFetcher, got %v", err)
	}
}
