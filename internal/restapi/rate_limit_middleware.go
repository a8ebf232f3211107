package restapi

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware provides per-API-key rate limiting
type RateLimitMiddleware struct {
	limiters  map[string]*rate.Limiter
	mu        sync.Mutex
	rateLimit rate.Limit
	burstSize int
	done      chan struct{}
	stopOnce  sync.Once

	isInvalidKey func(string) bool
}

// invalidKeyBucket is shared by every request whose key is missing or rejected.
const invalidKeyBucket = "__invalid_key__"

// NewRateLimitMiddleware allows ratePerSecond requests per interval for each
// API key, with bursts of the same size. A non-positive rate disables limiting.
// Keys for which isInvalidKey reports true all draw from one bucket; a nil
// isInvalidKey treats every non-empty key as its own bucket.
func NewRateLimitMiddleware(ratePerSecond int, interval time.Duration, isInvalidKey func(string) bool) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		limiters:     make(map[string]*rate.Limiter),
		rateLimit:    rate.Inf,
		burstSize:    ratePerSecond,
		done:         make(chan struct{}),
		isInvalidKey: isInvalidKey,
	}
	if ratePerSecond > 0 {
		rl.rateLimit = rate.Every(interval / time.Duration(ratePerSecond))
	}

	go rl.cleanup(5 * time.Minute)
	return rl
}

// getLimiter gets or creates a rate limiter for the given API key
func (rl *RateLimitMiddleware) getLimiter(apiKey string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[apiKey]
	if !exists {
		limiter = rate.NewLimiter(rl.rateLimit, rl.burstSize)
		rl.limiters[apiKey] = limiter
	}
	return limiter
}

// Handler is the HTTP middleware function
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.rateLimit == rate.Inf {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.URL.Query().Get("key")
		if apiKey == "" || (rl.isInvalidKey != nil && rl.isInvalidKey(apiKey)) {
			apiKey = invalidKeyBucket
		}

		if !rl.getLimiter(apiKey).Allow() {
			rl.sendRateLimitExceeded(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter) {
	retryAfter := 1
	if seconds := int(time.Duration(float64(time.Second) / float64(rl.rateLimit)).Seconds()); seconds > retryAfter {
		retryAfter = seconds
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	_, _ = w.Write([]byte(`{"code":429,"text":"Rate limit exceeded. Please try again later.","version":1}` + "\n"))
}

// cleanup periodically drops limiters that have refilled to their full burst,
// i.e. keys that have been idle long enough to be recreated without effect.
func (rl *RateLimitMiddleware) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key, limiter := range rl.limiters {
				if limiter.Tokens() >= float64(rl.burstSize) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}
