package web

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/JonMunkholm/resdir/internal/directory"
	"golang.org/x/time/rate"
)

// visitorIdle is how long an IP keeps its limiter after its last request.
// Idle visitors are swept at most once per visitorIdle.
const visitorIdle = 5 * time.Minute

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter allows perMinute sustained requests per IP with the given burst.
func newRateLimiter(perMinute, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		now:      time.Now,
	}
}

// allow reports whether ip may make a request now.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if rl.lastSweep.IsZero() {
		rl.lastSweep = now
	} else if now.Sub(rl.lastSweep) >= visitorIdle {
		rl.sweep(now)
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep drops visitors idle for longer than visitorIdle. rl.mu must be held.
func (rl *rateLimiter) sweep(now time.Time) {
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorIdle {
			delete(rl.visitors, key)
		}
	}
	rl.lastSweep = now
}

// retryAfter is the whole number of seconds until one token refills.
func (rl *rateLimiter) retryAfter() string {
	if rl.limit <= 0 {
		return "60"
	}
	secs := int(1/float64(rl.limit)) + 1
	return strconv.Itoa(secs)
}

// middleware rejects requests over the limit with 429.
func (rl *rateLimiter) middleware(s *Server) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.allow(ip) {
				w.Header().Set("Retry-After", rl.retryAfter())
				s.respondError(w, r, fmt.Errorf("%s: %w", ip, directory.ErrRateLimited), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr, already rewritten by
// TrustedRealIP when the request came through a trusted proxy.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
