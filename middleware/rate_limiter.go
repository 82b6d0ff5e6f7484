// middleware/rate_limiter.go
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
	// perResource limits each path parameter set separately and answers
	// over-limit requests with 429 without blocking the address
	perResource bool
}

type RateLimiter struct {
	ips            map[string]*rate.Limiter
	blockedIPs     map[string]time.Time
	mu             sync.Mutex
	defaultLimit   endpointLimit
	blockDuration  time.Duration
	endpointLimits map[string]endpointLimit
}

// NewRateLimiter creates a per-IP limiter. The cleanup loop stops with ctx.
func NewRateLimiter(ctx context.Context) *RateLimiter {
	limiter := &RateLimiter{
		ips:        make(map[string]*rate.Limiter),
		blockedIPs: make(map[string]time.Time),
		defaultLimit: endpointLimit{
			limit: rate.Every(100 * time.Millisecond), // 10 requests per second
			burst: 20,
		},
		blockDuration:  time.Minute,
		endpointLimits: make(map[string]endpointLimit),
	}

	// Counter bumps are not deduplicated per caller; each lesson gets its own
	// bucket so browsing many lessons never trips the limit
	counterLimit := endpointLimit{limit: rate.Every(time.Second), burst: 5, perResource: true}
	for _, path := range []string{
		"/lessons/:id/view",
		"/lessons/:id/like",
		"/lessons/:id/save",
		"/lessons/:id/share",
		"/lessons/:id/comments/:commentId/like",
	} {
		limiter.endpointLimits[path] = counterLimit
	}

	limiter.endpointLimits["/create-checkout-session"] = endpointLimit{
		limit: rate.Every(2 * time.Second),
		burst: 3,
	}

	go limiter.cleanup(ctx)

	return limiter
}

func (r *RateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.mu.Lock()
			for ip, blockUntil := range r.blockedIPs {
				if now.After(blockUntil) {
					delete(r.blockedIPs, ip)
				}
			}
			// Limiters are cheap to rebuild; drop them so the map stays bounded
			r.ips = make(map[string]*rate.Limiter)
			r.mu.Unlock()
		}
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			path := c.Path()
			now := time.Now()

			r.mu.Lock()
			if blockUntil, blocked := r.blockedIPs[ip]; blocked {
				if now.Before(blockUntil) {
					r.mu.Unlock()
					return tooManyRequests(c, blockUntil)
				}
				delete(r.blockedIPs, ip)
			}
			r.mu.Unlock()

			cfg := r.defaultLimit
			if endpoint, exists := r.endpointLimits[path]; exists {
				cfg = endpoint
			}

			key := ip + "|" + path
			if cfg.perResource {
				key += "|" + c.Param("id") + "|" + c.Param("commentId")
			}

			if !r.getLimiter(key, cfg).Allow() {
				if cfg.perResource {
					return tooManyRequests(c, now.Add(time.Second))
				}
				blockUntil := now.Add(r.blockDuration)
				r.mu.Lock()
				r.blockedIPs[ip] = blockUntil
				r.mu.Unlock()
				return tooManyRequests(c, blockUntil)
			}

			return next(c)
		}
	}
}

func (r *RateLimiter) getLimiter(key string, cfg endpointLimit) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	limiter, exists := r.ips[key]
	if !exists {
		limiter = rate.NewLimiter(cfg.limit, cfg.burst)
		r.ips[key] = limiter
	}
	return limiter
}

func tooManyRequests(c echo.Context, retryAfter time.Time) error {
	c.Response().Header().Set("Retry-After", retryAfter.UTC().Format(http.TimeFormat))
	return c.JSON(http.StatusTooManyRequests, models.Response{
		Status:  http.StatusTooManyRequests,
		Message: "Too many requests",
	})
}
