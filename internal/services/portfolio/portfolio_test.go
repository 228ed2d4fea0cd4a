package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"tokendesk/internal/domain"
	"tokendesk/internal/services/catalog"
)

var testPriorities = domain.PriorityTable{
	"Osmosis":  100,
	"Ethereum": 50,
	"Arbitrum": 30,
	"Zilliqa":  20,
	"Neo":      20,
}

func balance(currency string, amount float64, chain string) domain.BalanceRecord {
	return domain.BalanceRecord{
		Currency: currency,
		Amount:   decimal.NewFromFloat(amount),
		Chain:    chain,
	}
}

func testCatalog(prices map[string]float64) *domain.Catalog {
	records := make([]domain.PriceRecord, 0, len(prices))
	for currency, price := range prices {
		records = append(records, domain.PriceRecord{
			Currency:   currency,
			Price:      decimal.NewFromFloat(price),
			ObservedAt: time.Now(),
		})
	}
	return catalog.Build(records)
}

func TestRender_DropsNonPositiveAndUnknownChains(t *testing.T) {
	balances := []domain.BalanceRecord{
		balance("OSMO", 100.5, "Osmosis"),
		balance("ARB", 0, "Arbitrum"),
		balance("ETH2", -5, "Ethereum"),
	}

	rows := NewPipeline(testPriorities, DefaultAmountPrecision).
		Render(balances, testCatalog(map[string]float64{"OSMO": 0.6129}))

	require.Len(t, rows, 1)
	require.Equal(t, "OSMO", rows[0].Currency)
	require.Equal(t, "Osmosis-OSMO", rows[0].Key)
	require.Equal(t, "100.5000", rows[0].FormattedAmount)
}

func TestFilterSort_UnrecognizedChainExcluded(t *testing.T) {
	p := NewPipeline(testPriorities, DefaultAmountPrecision)

	kept := p.FilterSort([]domain.BalanceRecord{
		balance("SOL", 12, "Solana"),
		balance("ETH", 1, "Ethereum"),
	})

	require.Len(t, kept, 1)
	require.Equal(t, "ETH", kept[0].Currency)
}

func TestFilterSort_DescendingPriorityStable(t *testing.T) {
	p := NewPipeline(testPriorities, DefaultAmountPrecision)

	kept := p.FilterSort([]domain.BalanceRecord{
		balance("ZIL", 500, "Zilliqa"),
		balance("ETH", 1, "Ethereum"),
		balance("NEO", 7, "Neo"),
		balance("OSMO", 100, "Osmosis"),
	})

	got := make([]string, 0, len(kept))
	for _, b := range kept {
		got = append(got, b.Currency)
	}
	// Zilliqa and Neo tie at 20 and must keep input order
	require.Equal(t, []string{"OSMO", "ETH", "ZIL", "NEO"}, got)
}

func TestFilterSort_DoesNotMutateInput(t *testing.T) {
	p := NewPipeline(testPriorities, DefaultAmountPrecision)
	balances := []domain.BalanceRecord{
		balance("ZIL", 500, "Zilliqa"),
		balance("OSMO", 100, "Osmosis"),
	}

	_ = p.FilterSort(balances)

	require.Equal(t, "ZIL", balances[0].Currency)
	require.Equal(t, "OSMO", balances[1].Currency)
}

func TestFormat_MissingPriceValuesRowAtZero(t *testing.T) {
	p := NewPipeline(testPriorities, DefaultAmountPrecision)
	sorted := p.FilterSort([]domain.BalanceRecord{balance("OSMO", 10, "Osmosis")})

	rows := p.Format(sorted, testCatalog(nil))

	require.Len(t, rows, 1)
	require.True(t, rows[0].USDValue.IsZero())
}

func TestFormat_USDValue(t *testing.T) {
	p := NewPipeline(testPriorities, DefaultAmountPrecision)
	sorted := p.FilterSort([]domain.BalanceRecord{balance("ETH", 2, "Ethereum")})

	rows := p.Format(sorted, testCatalog(map[string]float64{"ETH": 2600}))

	require.True(t, rows[0].USDValue.Equal(decimal.NewFromInt(5200)),
		"expected 5200, got %s", rows[0].USDValue.String())
}

func TestFormat_ReusableAcrossCatalogTicks(t *testing.T) {
	p := NewPipeline(testPriorities, DefaultAmountPrecision)
	sorted := p.FilterSort([]domain.BalanceRecord{
		balance("OSMO", 100, "Osmosis"),
		balance("ETH", 1, "Ethereum"),
	})

	before := p.Format(sorted, testCatalog(map[string]float64{"ETH": 2500}))
	after := p.Format(sorted, testCatalog(map[string]float64{"ETH": 2600}))

	// a price tick re-runs Format only; order and membership are unchanged
	require.Len(t, after, 2)
	require.Equal(t, before[0].Key, after[0].Key)
	require.Equal(t, before[1].Key, after[1].Key)
	require.True(t, after[1].USDValue.Equal(decimal.NewFromInt(2600)))
}
