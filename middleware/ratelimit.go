package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/pkg/clientip"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
)

// Limiter decides whether key may make another request.
type Limiter interface {
	Allow(ctx context.Context, key string) (ratelimiter.Result, error)
}

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Limiter is required.
	Limiter Limiter
	// KeyFunc derives the bucket key (default: client IP)
	KeyFunc func(ctx handler.Context) string
	// SetHeaders adds X-RateLimit-* headers to every response
	SetHeaders bool
}

// RateLimit rejects requests over the limit with 429 and a Retry-After
// header. Panics without a Limiter.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(ctx handler.Context) string {
			return clientip.GetIP(ctx.Request())
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			res, err := cfg.Limiter.Allow(ctx.Request().Context(), cfg.KeyFunc(ctx))
			if err != nil {
				return response.Error(err)
			}

			var resp handler.Response
			if res.Allowed() {
				resp = next(ctx)
			} else {
				resp = response.Error(response.ErrTooManyRequests)
			}

			if !cfg.SetHeaders && res.Allowed() {
				return resp
			}
			return withRateLimitHeaders(resp, res, cfg.SetHeaders)
		}
	}
}

func withRateLimitHeaders(resp handler.Response, res ratelimiter.Result, full bool) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		h := w.Header()
		if full {
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		}
		if !res.Allowed() {
			h.Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter().Seconds()))))
		}
		return resp(w, r)
	}
}
