// Package catalog normalizes raw price feed records into a canonical
// currency -> price snapshot.
package catalog

import (
	"sort"

	"tokendesk/internal/domain"
)

// Build produces a catalog from raw feed records. Records with a
// non-positive price are dropped. When a currency repeats, the record with
// the latest ObservedAt wins; equal timestamps keep the first-seen record.
// Entries come out sorted ascending by currency regardless of input order.
// Empty or fully-invalid input yields an empty catalog, never an error.
func Build(records []domain.PriceRecord) *domain.Catalog {
	latest := make(map[string]domain.PriceRecord, len(records))
	for _, r := range records {
		if !r.Price.IsPositive() {
			continue
		}
		kept, seen := latest[r.Currency]
		if !seen || r.ObservedAt.After(kept.ObservedAt) {
			latest[r.Currency] = r
		}
	}

	entries := make([]domain.CatalogEntry, 0, len(latest))
	for _, r := range latest {
		entries = append(entries, domain.CatalogEntry{Currency: r.Currency, Price: r.Price})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Currency < entries[j].Currency
	})

	return domain.NewCatalog(entries)
}
