// Package config loads and validates service configuration from a YAML
// file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"tokendesk/internal/domain"
)

const (
	// DefaultFeedURL is the JSON price list used when no feed is configured.
	DefaultFeedURL = "https://interview.switcheo.com/prices.json"

	defaultRefreshInterval = 30 * time.Second
	defaultListen          = ":8080"
	defaultQuotePrecision  = 6
	defaultAmountPrecision = 4
)

// defaultPriorities mirror the chains the service historically ranked.
var defaultPriorities = domain.PriorityTable{
	"Osmosis":  100,
	"Ethereum": 50,
	"Arbitrum": 30,
	"Zilliqa":  20,
	"Neo":      20,
}

// Config is the validated runtime configuration.
type Config struct {
	FeedSource      string
	FeedURL         string
	FeedCurrencies  []string
	QuoteCurrency   string
	RefreshInterval time.Duration

	WalletSource string
	WalletChain  string
	Balances     []domain.BalanceRecord

	Priorities      domain.PriorityTable
	QuotePrecision  int32
	AmountPrecision int32

	Listen       string
	TLSDomains   []string
	CertCacheDir string
	Interactive  bool
}

type balanceTmp struct {
	Currency string `yaml:"currency"`
	Amount   string `yaml:"amount"`
	Chain    string `yaml:"chain"`
}

type configTmp struct {
	FeedSource      string        `yaml:"feed_source,omitempty"`
	FeedURL         string        `yaml:"feed_url,omitempty"`
	FeedCurrencies  []string      `yaml:"feed_currencies,omitempty"`
	QuoteCurrency   string        `yaml:"quote_currency,omitempty"`
	RefreshInterval time.Duration `yaml:"refresh_interval,omitempty"`

	WalletSource string       `yaml:"wallet_source,omitempty"`
	WalletChain  string       `yaml:"wallet_chain,omitempty"`
	Balances     []balanceTmp `yaml:"balances,omitempty"`

	Priorities      map[string]int `yaml:"priorities,omitempty"`
	QuotePrecision  *int32         `yaml:"quote_precision,omitempty"`
	AmountPrecision *int32         `yaml:"amount_precision,omitempty"`

	Listen       string   `yaml:"listen,omitempty"`
	TLSDomains   []string `yaml:"tls_domains,omitempty"`
	CertCacheDir string   `yaml:"cert_cache_dir,omitempty"`
}

// Get parses flags and returns the configuration. With --config the YAML
// file wins; otherwise flag values are used directly.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	feedSource := flag.String("feed", "http", "price feed source: http, binance, bybit, hyperliquid or static")
	feedURL := flag.String("feedurl", DefaultFeedURL, "price list endpoint for the http feed")
	refreshInterval := flag.Duration("refreshinterval", defaultRefreshInterval, "price refresh interval")
	listen := flag.String("listen", defaultListen, "HTTP API listen address")
	interactive := flag.Bool("interactive", false, "run the terminal swap form instead of the HTTP API")
	flag.Parse()

	if *configPath != "" {
		cfg, err := getYaml(*configPath)
		if err != nil {
			return Config{}, err
		}
		cfg.Interactive = *interactive
		return cfg, nil
	}

	cfg := Config{
		FeedSource:      *feedSource,
		FeedURL:         *feedURL,
		RefreshInterval: *refreshInterval,
		WalletSource:    "static",
		Listen:          *listen,
		Interactive:     *interactive,
		QuotePrecision:  -1,
		AmountPrecision: -1,
	}
	return withDefaults(cfg)
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	cfg := Config{
		FeedSource:      tmp.FeedSource,
		FeedURL:         tmp.FeedURL,
		FeedCurrencies:  tmp.FeedCurrencies,
		QuoteCurrency:   tmp.QuoteCurrency,
		RefreshInterval: tmp.RefreshInterval,
		WalletSource:    tmp.WalletSource,
		WalletChain:     tmp.WalletChain,
		Listen:          tmp.Listen,
		TLSDomains:      tmp.TLSDomains,
		CertCacheDir:    tmp.CertCacheDir,
	}

	if len(tmp.Priorities) > 0 {
		cfg.Priorities = domain.PriorityTable(tmp.Priorities)
	}
	if tmp.QuotePrecision != nil {
		cfg.QuotePrecision = *tmp.QuotePrecision
	} else {
		cfg.QuotePrecision = -1
	}
	if tmp.AmountPrecision != nil {
		cfg.AmountPrecision = *tmp.AmountPrecision
	} else {
		cfg.AmountPrecision = -1
	}

	for _, b := range tmp.Balances {
		amount, err := decimal.NewFromString(b.Amount)
		if err != nil {
			return Config{}, fmt.Errorf("invalid balance amount %q for %s: %w", b.Amount, b.Currency, err)
		}
		cfg.Balances = append(cfg.Balances, domain.BalanceRecord{
			Currency: b.Currency,
			Amount:   amount,
			Chain:    b.Chain,
		})
	}

	return withDefaults(cfg)
}

func withDefaults(cfg Config) (Config, error) {
	if cfg.FeedSource == "" {
		cfg.FeedSource = "http"
	}
	switch cfg.FeedSource {
	case "http":
		if cfg.FeedURL == "" {
			cfg.FeedURL = DefaultFeedURL
		}
	case "binance", "bybit", "hyperliquid":
		if len(cfg.FeedCurrencies) == 0 {
			return Config{}, fmt.Errorf("feed_currencies must be set for the %s feed", cfg.FeedSource)
		}
		if cfg.QuoteCurrency == "" {
			cfg.QuoteCurrency = "USDT"
		}
	case "static":
	default:
		return Config{}, fmt.Errorf("unsupported feed source %q", cfg.FeedSource)
	}

	if cfg.WalletSource == "" {
		cfg.WalletSource = "static"
	}
	switch cfg.WalletSource {
	case "static":
	case "binance":
		if cfg.WalletChain == "" {
			cfg.WalletChain = "Ethereum"
		}
	default:
		return Config{}, fmt.Errorf("unsupported wallet source %q", cfg.WalletSource)
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaultRefreshInterval
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.Priorities == nil {
		cfg.Priorities = defaultPriorities
	}
	for chain, priority := range cfg.Priorities {
		if priority <= domain.DefaultPriority {
			return Config{}, fmt.Errorf("priority %d for chain %q must be above the default sentinel %d",
				priority, chain, domain.DefaultPriority)
		}
	}
	if cfg.QuotePrecision < 0 {
		cfg.QuotePrecision = defaultQuotePrecision
	}
	if cfg.AmountPrecision < 0 {
		cfg.AmountPrecision = defaultAmountPrecision
	}

	return cfg, nil
}
