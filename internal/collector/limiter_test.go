package collector

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiterUnlimitedNeverBlocks(t *testing.T) {
	t.Parallel()

	l := NewHostLimiter(0, 1)
	start := time.Now()
	for i := 0; i < 50; i++ {
		if err := l.Wait(context.Background(), "https://api.example.com/v1"); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("unlimited limiter blocked for %v", elapsed)
	}
}

func TestHostLimiterRespectsCancellation(t *testing.T) {
	t.Parallel()

	l := NewHostLimiter(0.001, 1)
	if err := l.Wait(context.Background(), "https://slow.example.com/"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx, "https://slow.example.com/"); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestHostLimiterIsolatesHosts(t *testing.T) {
	t.Parallel()

	l := NewHostLimiter(0.001, 1)
	if err := l.Wait(context.Background(), "https://a.example.com/"); err != nil {
		t.Fatalf("Wait a: %v", err)
	}
	// A different host gets its own bucket and proceeds immediately.
	start := time.Now()
	if err := l.Wait(context.Background(), "https://b.example.com/"); err != nil {
		t.Fatalf("Wait b: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("second host blocked for %v", elapsed)
	}
}
