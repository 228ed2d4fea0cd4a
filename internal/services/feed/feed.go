// Package feed provides price feed adapters producing raw records for the
// catalog. Every adapter does one fetch per call; retry policy, if any,
// belongs to the caller.
package feed

import (
	"context"

	"tokendesk/internal/domain"
)

// Feed fetches a snapshot of raw price records.
type Feed interface {
	Fetch(ctx context.Context) ([]domain.PriceRecord, error)
}

// StaticFeed serves a fixed set of records, for tests and offline runs.
type StaticFeed struct {
	records []domain.PriceRecord
}

// NewStaticFeed creates a feed that always returns the given records.
func NewStaticFeed(records []domain.PriceRecord) *StaticFeed {
	return &StaticFeed{records: records}
}

// Fetch returns a copy of the configured records.
func (f *StaticFeed) Fetch(_ context.Context) ([]domain.PriceRecord, error) {
	out := make([]domain.PriceRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}
