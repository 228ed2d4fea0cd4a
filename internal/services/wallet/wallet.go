// Package wallet supplies raw balance records to the portfolio pipeline.
package wallet

import (
	"context"

	"tokendesk/internal/domain"
)

// Source provides a snapshot of wallet balances.
type Source interface {
	Balances(ctx context.Context) ([]domain.BalanceRecord, error)
}

// StaticSource serves balances supplied up front, typically from config.
type StaticSource struct {
	records []domain.BalanceRecord
}

// NewStaticSource creates a source that always returns the given records.
func NewStaticSource(records []domain.BalanceRecord) *StaticSource {
	return &StaticSource{records: records}
}

// Balances returns a copy of the configured records.
func (s *StaticSource) Balances(_ context.Context) ([]domain.BalanceRecord, error) {
	out := make([]domain.BalanceRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
