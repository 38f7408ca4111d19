package server

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/juju/ratelimit"
	"github.com/omimtools/catalog-api/config"
	"github.com/omimtools/catalog-api/handlers"
	"github.com/omimtools/catalog-api/logging"
	"github.com/omimtools/catalog-api/metrics"
)

// RealIPMiddleware extracts the real client IP from X-Forwarded-For.
func RealIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// Take the first IP from the comma-separated list
			if idx := strings.Index(xff, ","); idx != -1 {
				xff = xff[:idx]
			}
			r.RemoteAddr = strings.TrimSpace(xff)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestSizeMiddleware rejects request bodies above the configured limit.
// The API is read-only, so anything with a large body is abuse.
func RequestSizeMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if contentLength := r.Header.Get("Content-Length"); contentLength != "" {
				if length, err := strconv.ParseInt(contentLength, 10, 64); err == nil && length > cfg.MaxRequestBody {
					logging.Warn("Request body too large",
						"content_length", length,
						"max_allowed", cfg.MaxRequestBody,
						"remote_addr", r.RemoteAddr)
					handlers.RespondWithError(w, http.StatusRequestEntityTooLarge, "request body too large")
					return
				}
			}
			r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxRequestBody)
			next.ServeHTTP(w, r)
		})
	}
}

// Per-client rate limiting

type rateLimiter struct {
	clients map[string]*clientBucket
	mu      sync.Mutex
	idleTTL time.Duration
}

type clientBucket struct {
	bucket   *ratelimit.Bucket
	lastSeen time.Time
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*clientBucket),
		idleTTL: 5 * time.Minute,
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) getBucket(clientIP string) *ratelimit.Bucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cb, exists := rl.clients[clientIP]
	if !exists {
		// 10 tokens per second, burst of 100
		cb = &clientBucket{bucket: ratelimit.NewBucketWithRate(10, 100)}
		rl.clients[clientIP] = cb
		metrics.RateLimiterBucketsTotal.Set(float64(len(rl.clients)))
	}
	cb.lastSeen = time.Now()
	return cb.bucket
}

// cleanupLoop drops buckets for clients idle longer than idleTTL.
func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-rl.idleTTL)
		for ip, cb := range rl.clients {
			if cb.lastSeen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		metrics.RateLimiterBucketsTotal.Set(float64(len(rl.clients)))
		rl.mu.Unlock()
	}
}

// RateLimitMiddleware enforces a per-client token bucket.
func RateLimitMiddleware() func(http.Handler) http.Handler {
	rl := newRateLimiter()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bucket := rl.getBucket(r.RemoteAddr)
			if bucket.TakeAvailable(1) == 0 {
				w.Header().Set("Retry-After", "1")
				handlers.RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
