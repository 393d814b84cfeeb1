package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/sunshine-sync/internal/domain"
	"github.com/couchcryptid/sunshine-sync/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Fetcher returns the raw forecast payload from the remote endpoint.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Store is the local forecast cache.
type Store interface {
	Replace(ctx context.Context, rows []domain.ForecastRow) error
	Count(ctx context.Context) (int, error)
}

// Publisher announces a committed snapshot downstream.
type Publisher interface {
	Publish(ctx context.Context, snapshot domain.Snapshot) error
}

// Pipeline orchestrates the fetch-parse-replace sync cycle. At most one cycle
// runs at a time per Pipeline.
type Pipeline struct {
	fetcher   Fetcher
	store     Store
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	interval  time.Duration

	lock  chan struct{}
	ready atomic.Bool
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithClock sets the time source for scheduling and date normalization.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// New creates a Pipeline. publisher may be nil to disable publishing.
// interval is the scheduler period used by Run.
func New(f Fetcher, s Store, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:   f,
		store:     s,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
		interval:  interval,
		lock:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once a cycle has replaced the cache, or when the
// store already holds rows from an earlier run.
func (p *Pipeline) CheckReadiness(ctx context.Context) error {
	if p.ready.Load() {
		return nil
	}
	n, err := p.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("check cached forecast: %w", err)
	}
	if n == 0 {
		return errors.New("no forecast has been synced yet")
	}
	return nil
}

// SyncWeather runs one fetch-parse-replace cycle and reports its outcome.
// A caller arriving while another cycle is in flight waits for it to finish;
// if ctx ends first the call returns StatusCanceled without doing anything.
// Failures are reported in the result and never leave the store partially
// replaced.
func (p *Pipeline) SyncWeather(ctx context.Context) domain.SyncResult {
	select {
	case p.lock <- struct{}{}:
	case <-ctx.Done():
		res := domain.SyncResult{Status: domain.StatusCanceled, Err: ctx.Err(), StartedAt: p.clock.Now()}
		p.record(res)
		return res
	}
	defer func() { <-p.lock }()

	p.metrics.SyncRunning.Set(1)
	defer p.metrics.SyncRunning.Set(0)

	start := p.clock.Now()
	res := p.cycle(ctx, start)
	res.StartedAt = start
	res.Duration = p.clock.Since(start)
	p.record(res)
	return res
}

func (p *Pipeline) cycle(ctx context.Context, now time.Time) domain.SyncResult {
	body, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return failed(ctx, domain.StatusTransportError, domain.ErrTransport, err)
	}

	rows, err := domain.ParseForecastAt(body, now)
	if err != nil {
		return failed(ctx, domain.StatusFormatError, domain.ErrFormat, err)
	}
	if len(rows) == 0 {
		return domain.SyncResult{Status: domain.StatusEmpty}
	}

	if err := p.store.Replace(ctx, rows); err != nil {
		return failed(ctx, domain.StatusStoreError, domain.ErrStore, err)
	}

	p.publish(ctx, domain.Snapshot{SyncedAt: now, Rows: rows})
	return domain.SyncResult{Status: domain.StatusSynced, Rows: len(rows)}
}

// publish is best-effort: the store is already committed, so a failure is
// logged and counted but does not fail the cycle.
func (p *Pipeline) publish(ctx context.Context, snap domain.Snapshot) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, snap); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Warn("publish snapshot failed", "error", err, "rows", len(snap.Rows))
	}
}

// failed builds a failure result, making sure err matches kind and that a
// cycle cut short by its context is reported as canceled.
func failed(ctx context.Context, status domain.SyncStatus, kind, err error) domain.SyncResult {
	if !errors.Is(err, kind) {
		err = fmt.Errorf("%w: %w", kind, err)
	}
	if ctx.Err() != nil {
		status = domain.StatusCanceled
	}
	return domain.SyncResult{Status: status, Err: err}
}

func (p *Pipeline) record(res domain.SyncResult) {
	p.metrics.SyncCycles.WithLabelValues(string(res.Status)).Inc()
	p.metrics.SyncDuration.Observe(res.Duration.Seconds())

	switch res.Status {
	case domain.StatusSynced:
		p.ready.Store(true)
		p.metrics.RowsStored.Set(float64(res.Rows))
		p.metrics.LastSuccess.Set(float64(res.StartedAt.Unix()))
		p.logger.Info("sync cycle finished", "status", res.Status, "rows", res.Rows, "duration", res.Duration)
	case domain.StatusEmpty:
		p.logger.Warn("forecast payload was empty, keeping cached rows", "status", res.Status, "duration", res.Duration)
	case domain.StatusCanceled:
		p.logger.Info("sync cycle canceled", "status", res.Status, "error", res.Err)
	default:
		p.logger.Error("sync cycle failed, keeping cached rows", "status", res.Status, "error", res.Err, "duration", res.Duration)
	}
}
