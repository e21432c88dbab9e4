package guidebook

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SearchLimiter rate-limits search requests per IP address with a token
// bucket each.
type SearchLimiter struct {
	mu       sync.Mutex
	visitors map[string]*limiterEntry
	rps      rate.Limit
	burst    int
	idle     time.Duration
	stop     chan struct{}
	once     sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewSearchLimiter allows rps requests per second per IP with the given
// burst. Buckets untouched for idle are dropped.
func NewSearchLimiter(rps float64, burst int, idle time.Duration) *SearchLimiter {
	l := &SearchLimiter{
		visitors: make(map[string]*limiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     idle,
		stop:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *SearchLimiter) cleanup() {
	ticker := time.NewTicker(l.idle)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-l.idle)
			l.mu.Lock()
			for ip, e := range l.visitors {
				if e.lastSeen.Before(cutoff) {
					delete(l.visitors, ip)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// Allow reports whether ip may search now and spends a token if so.
func (l *SearchLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.visitors[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

// Stop ends the cleanup goroutine.
func (l *SearchLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
