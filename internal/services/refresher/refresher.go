// Package refresher periodically pulls a price feed and publishes
// immutable catalog snapshots.
package refresher

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"tokendesk/internal/domain"
	"tokendesk/internal/services/catalog"
	"tokendesk/internal/services/feed"
)

// Refresher owns the only asynchronous boundary of the engine: it fetches
// the feed on a ticker and swaps in a freshly built catalog atomically.
// Readers always see either the previous or the new snapshot, never a
// half-updated one. A failed fetch keeps the previous snapshot live; there
// is no retry beyond the next tick.
type Refresher struct {
	feed     feed.Feed
	interval time.Duration
	logger   *zap.Logger
	snapshot atomic.Pointer[domain.Catalog]
}

// New creates a refresher. The catalog starts empty until the first fetch.
func New(f feed.Feed, interval time.Duration, logger *zap.Logger) *Refresher {
	r := &Refresher{feed: f, interval: interval, logger: logger}
	r.snapshot.Store(domain.NewCatalog(nil))
	return r
}

// Catalog returns the latest published snapshot.
func (r *Refresher) Catalog() *domain.Catalog {
	return r.snapshot.Load()
}

// Run fetches once immediately, then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	if err := r.refresh(ctx); err != nil {
		r.logger.Warn("initial price fetch failed", zap.Error(err))
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("starting price refresh loop", zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("context done, stopping price refresh loop")
			return ctx.Err()
		case <-ticker.C:
			if err := r.refresh(ctx); err != nil {
				r.logger.Error("price refresh failed", zap.Error(err))
			}
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) error {
	records, err := r.feed.Fetch(ctx)
	if err != nil {
		return err
	}

	cat := catalog.Build(records)
	r.snapshot.Store(cat)
	r.logger.Debug("published catalog snapshot",
		zap.Int("records", len(records)), zap.Int("currencies", cat.Len()))
	return nil
}
