package pipeline

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// retryBackoff is the first delay after a failed cycle; it doubles on each
// consecutive failure and is capped at the sync interval.
const retryBackoff = 30 * time.Second

// Run syncs immediately and then once per interval until ctx is cancelled.
// After a failed cycle the next attempt comes sooner, on an exponential
// backoff; a successful cycle restores the regular interval.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("scheduler started", "interval", p.interval)

	backoff := min(retryBackoff, p.interval)
	for {
		res := p.SyncWeather(ctx)
		if ctx.Err() != nil {
			p.logger.Info("scheduler stopping", "reason", ctx.Err())
			return nil
		}

		wait := p.interval
		if res.OK() {
			backoff = min(retryBackoff, p.interval)
		} else {
			wait = backoff
			backoff = nextBackoff(backoff, p.interval)
			p.logger.Info("retrying sync after backoff", "wait", wait, "status", res.Status)
		}

		if !sleepWithContext(ctx, p.clock, wait) {
			p.logger.Info("scheduler stopping", "reason", ctx.Err())
			return nil
		}
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
