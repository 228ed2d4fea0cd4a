// Package domain defines core data structures shared by the pricing engine.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is a single raw observation from a price feed.
// Records may repeat per currency; deduplication happens in the catalog.
type PriceRecord struct {
	// Currency ticker symbol, e.g. "ETH".
	Currency string
	// Price quoted in USD. Zero or negative means the record is invalid.
	Price decimal.Decimal
	// ObservedAt feed timestamp of the observation.
	ObservedAt time.Time
}

// CatalogEntry canonical price for a single currency.
type CatalogEntry struct {
	Currency string          `json:"currency"`
	Price    decimal.Decimal `json:"price"`
}

// Catalog is an immutable snapshot of canonical prices. Entries are kept
// sorted ascending by currency; lookups go through an index map.
type Catalog struct {
	entries []CatalogEntry
	index   map[string]decimal.Decimal
}

// NewCatalog builds a catalog from entries that are already deduplicated
// and sorted by currency.
func NewCatalog(entries []CatalogEntry) *Catalog {
	index := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		index[e.Currency] = e.Price
	}
	return &Catalog{entries: entries, index: index}
}

// Entries returns a copy of the catalog entries in currency order.
func (c *Catalog) Entries() []CatalogEntry {
	if c == nil {
		return nil
	}
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// PriceOf returns the canonical price for a currency.
func (c *Catalog) PriceOf(currency string) (decimal.Decimal, bool) {
	if c == nil {
		return decimal.Zero, false
	}
	price, ok := c.index[currency]
	return price, ok
}

// Len returns the number of currencies in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
