package openweather

import (
	"context"
	"fmt"

	"github.com/couchcryptid/sunshine-sync/internal/domain"
	"golang.org/x/time/rate"
)

// Fetcher is the contract wrapped by RateLimitedFetcher.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// RateLimitedFetcher wraps a Fetcher so scheduled and on-demand syncs
// together cannot exceed the upstream's request budget.
type RateLimitedFetcher struct {
	inner   Fetcher
	limiter *rate.Limiter
}

// NewRateLimitedFetcher allows rps requests per second (fractional for less
// than one) with the given burst.
func NewRateLimitedFetcher(inner Fetcher, rps float64, burst int) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch waits for a token, then delegates. A wait cut short by ctx is a
// transport failure.
func (r *RateLimitedFetcher) Fetch(ctx context.Context) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit wait: %w", domain.ErrTransport, err)
	}
	return r.inner.Fetch(ctx)
}
