package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	aierrors "github.com/hrygo/zai/server/internal/errors"
)

const (
	// DefaultRate is the steady request rate allowed per client.
	DefaultRate = rate.Limit(10)
	// DefaultBurst is the request burst allowed per client.
	DefaultBurst = 20
)

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*rate.Limiter
	rate   rate.Limit
	burst  int
}

// NewRateLimiter creates a limiter allowing 10 requests per second with a burst of 20.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithLimit(DefaultRate, DefaultBurst)
}

// NewRateLimiterWithLimit creates a limiter with a custom rate and burst.
func NewRateLimiterWithLimit(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limits: make(map[string]*rate.Limiter),
		rate:   r,
		burst:  burst,
	}
}

// getLimiter gets or creates a limiter for the given key.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware rejects requests over the per-IP limit with 429.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				err := aierrors.RateLimitExceeded("too many requests, slow down")
				c.Response().Header().Set("Retry-After", retryAfter(rl.rate))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": err.Message,
					"code":  string(err.Code),
				})
			}
			return next(c)
		}
	}
}

// retryAfter is the whole seconds until one token refills, at least 1.
func retryAfter(r rate.Limit) string {
	if r <= 0 {
		return "1"
	}
	secs := int(math.Ceil(1 / float64(r)))
	return strconv.Itoa(max(secs, 1))
}
