// internal/httpserver/ratelimit.go
//
// Per-client rate limiting for the game endpoints.
//
// Each client key (remote IP) gets its own token bucket. Exhausted buckets
// get 429 {"error":"rate_limited"}; idle, full buckets are pruned by the
// session sweeper.

package httpserver

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// limiterSet hands out one token bucket per client key.
type limiterSet struct {
	mu    sync.Mutex
	m     map[string]*rate.Limiter
	rps   rate.Limit
	burst int
}

func newLimiterSet(rps float64, burst int) *limiterSet {
	if rps <= 0 {
		rps = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &limiterSet{m: make(map[string]*rate.Limiter), rps: rate.Limit(rps), burst: burst}
}

func (l *limiterSet) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.m[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.m[key] = lim
	return lim
}

// prune forgets clients whose bucket has refilled completely.
func (l *limiterSet) prune() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, lim := range l.m {
		if lim.Tokens() >= float64(l.burst) {
			delete(l.m, key)
		}
	}
}

// rateLimit rejects clients that exceed their bucket with 429.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiters.get(clientKey(r)).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey is the remote host without port (RealIP has already run).
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
