package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/logger"
	"github.com/dmitrymomot/folio/core/response"
)

// DefaultTimeout bounds a readiness round.
const DefaultTimeout = 3 * time.Second

// Check is a named dependency probe.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// Readiness answers "READY" when every probe succeeds within
// DefaultTimeout, and 503 otherwise.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return ReadinessWithTimeout[C](log, DefaultTimeout, checks...)
}

// ReadinessWithTimeout is Readiness with a custom deadline.
func ReadinessWithTimeout[C handler.Context](log *slog.Logger, timeout time.Duration, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(ctx C) handler.Response {
		if err := probe(ctx, timeout, checks); err != nil {
			log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
			return response.Error(response.ErrServiceUnavailable)
		}
		return response.String("READY")
	}
}

func probe(ctx context.Context, timeout time.Duration, checks []Check) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range checks {
		if c.Probe == nil {
			continue
		}
		g.Go(func() error {
			if err := c.Probe(gctx); err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
