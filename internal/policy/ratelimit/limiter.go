// Package ratelimit throttles page fetches with a token bucket so a full run
// does not hammer the documentation host.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/JakeFAU/nginx-docs/internal/docs"
)

// Config holds rate limiter configuration.
type Config struct {
	// RPS is the sustained fetch rate. Zero or less disables throttling.
	RPS   float64
	Burst int
}

// Observer receives the time spent waiting for each fetch slot.
type Observer interface {
	ObserveThrottle(d time.Duration)
}

// Fetcher wraps a docs.Fetcher and waits for a token before every fetch.
type Fetcher struct {
	next     docs.Fetcher
	limiter  *rate.Limiter
	observer Observer
}

// Wrap returns next guarded by a limiter built from cfg. observer may be nil.
func Wrap(next docs.Fetcher, cfg Config, observer Observer) *Fetcher {
	r := rate.Limit(cfg.RPS)
	if cfg.RPS <= 0 {
		r = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Fetcher{
		next:     next,
		limiter:  rate.NewLimiter(r, burst),
		observer: observer,
	}
}

// Fetch blocks until a token is available, then delegates.
func (f *Fetcher) Fetch(ctx context.Context, url string) (docs.Page, error) {
	start := time.Now()
	if err := f.limiter.Wait(ctx); err != nil {
		return docs.Page{}, fmt.Errorf("rate limit wait: %w", err)
	}
	// Only waits that actually blocked are interesting.
	if waited := time.Since(start); waited > time.Millisecond && f.observer != nil {
		f.observer.ObserveThrottle(waited)
	}
	return f.next.Fetch(ctx, url)
}
