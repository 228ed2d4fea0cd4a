// Package portfolio turns raw balances into filtered, sorted, USD-valued
// display rows.
package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"
	"tokendesk/internal/domain"
)

// DefaultAmountPrecision fractional digits used for formatted amounts.
const DefaultAmountPrecision = 4

// Pipeline renders balances through three stages: filter, stable sort by
// chain priority, then price formatting. FilterSort and Format are exposed
// separately so a price tick re-runs formatting only, without a new
// filter/sort pass.
type Pipeline struct {
	priorities      domain.PriorityTable
	amountPrecision int32
}

// NewPipeline creates a pipeline for the given priority table. A precision
// below zero falls back to DefaultAmountPrecision.
func NewPipeline(priorities domain.PriorityTable, amountPrecision int32) *Pipeline {
	if amountPrecision < 0 {
		amountPrecision = DefaultAmountPrecision
	}
	return &Pipeline{priorities: priorities, amountPrecision: amountPrecision}
}

type rankedBalance struct {
	record   domain.BalanceRecord
	priority int
}

// FilterSort keeps balances with a positive amount on a recognized chain
// (priority above domain.DefaultPriority) and orders them by priority
// descending. The sort is stable: equal-priority balances retain their
// relative input order. The input slice is never mutated.
func (p *Pipeline) FilterSort(balances []domain.BalanceRecord) []domain.BalanceRecord {
	ranked := make([]rankedBalance, 0, len(balances))
	for _, b := range balances {
		priority := p.priorities.Priority(b.Chain)
		// amounts must be strictly positive; zero and negative are dropped
		if priority > domain.DefaultPriority && b.Amount.IsPositive() {
			ranked = append(ranked, rankedBalance{record: b, priority: priority})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].priority > ranked[j].priority
	})

	out := make([]domain.BalanceRecord, len(ranked))
	for i, r := range ranked {
		out[i] = r.record
	}
	return out
}

// Format prices already filtered and sorted balances against a catalog
// snapshot. A currency missing from the catalog values the row at zero
// rather than poisoning it.
func (p *Pipeline) Format(sorted []domain.BalanceRecord, cat *domain.Catalog) []domain.DisplayRow {
	rows := make([]domain.DisplayRow, 0, len(sorted))
	for _, b := range sorted {
		usd := decimal.Zero
		if price, ok := cat.PriceOf(b.Currency); ok {
			usd = price.Mul(b.Amount)
		}
		rows = append(rows, domain.DisplayRow{
			Currency:        b.Currency,
			Chain:           b.Chain,
			Amount:          b.Amount,
			USDValue:        usd,
			FormattedAmount: b.Amount.StringFixed(p.amountPrecision),
			Key:             domain.RowKey(b.Chain, b.Currency),
		})
	}
	return rows
}

// Render runs both stages in one pass and returns a fresh row sequence.
func (p *Pipeline) Render(balances []domain.BalanceRecord, cat *domain.Catalog) []domain.DisplayRow {
	return p.Format(p.FilterSort(balances), cat)
}
