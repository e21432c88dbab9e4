package guidebook

import (
	"testing"
	"time"
)

func TestSearchLimiterBlocksAfterBurst(t *testing.T) {
	limiter := NewSearchLimiter(0.001, 2, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first search to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second search to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third search to be blocked")
	}
}

func TestSearchLimiterRefills(t *testing.T) {
	limiter := NewSearchLimiter(10, 1, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first search to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second search to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected search after refill to be allowed")
	}
}

func TestSearchLimiterIsPerIP(t *testing.T) {
	limiter := NewSearchLimiter(0.001, 1, time.Minute)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after burst")
	}
}

func TestSearchLimiterDropsIdleBuckets(t *testing.T) {
	limiter := NewSearchLimiter(0.001, 1, 50*time.Millisecond)
	defer limiter.Stop()

	limiter.Allow("203.0.113.40")
	time.Sleep(200 * time.Millisecond)

	limiter.mu.Lock()
	n := len(limiter.visitors)
	limiter.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected idle bucket to be dropped, have %d", n)
	}
}

func TestSearchLimiterStopTwice(t *testing.T) {
	limiter := NewSearchLimiter(1, 1, time.Minute)
	limiter.Stop()
	limiter.Stop()
}
