// Command tokendesk serves normalized token prices, swap quotes and
// display-ready wallet balances over a JSON API. With --interactive it
// runs a terminal swap form against a one-shot price fetch instead.
//
// Usage:
//
//	tokendesk --config config.yaml
//	tokendesk --feed http --listen :8080
//	tokendesk --interactive
//
// Optional environment variables:
//
//	For the Binance wallet source: BINANCE_API_KEY, BINANCE_API_SECRET
//	For the Hyperliquid feed: HYPERLIQUID_PRIVATE_KEY
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"tokendesk/config"
	"tokendesk/internal/clients"
	"tokendesk/internal/services/catalog"
	"tokendesk/internal/services/feed"
	"tokendesk/internal/services/portfolio"
	"tokendesk/internal/services/refresher"
	"tokendesk/internal/services/wallet"
	"tokendesk/internal/setup"
	"tokendesk/internal/web"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	priceFeed, err := buildFeed(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Interactive {
		records, err := priceFeed.Fetch(ctx)
		if err != nil {
			log.Fatal(err)
		}
		if err := setup.RunSwapForm(catalog.Build(records), cfg.QuotePrecision); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	walletSrc, err := buildWallet(cfg)
	if err != nil {
		log.Fatal(err)
	}

	catalogs := refresher.New(priceFeed, cfg.RefreshInterval, logger)
	go func() {
		if err := catalogs.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("refresher stopped", zap.Error(err))
		}
	}()

	pipeline := portfolio.NewPipeline(cfg.Priorities, cfg.AmountPrecision)
	server := web.NewServer(cfg.Listen, catalogs, walletSrc, pipeline, cfg.QuotePrecision, logger)

	logger.Info("starting API server",
		zap.String("listen", cfg.Listen),
		zap.String("feed", cfg.FeedSource))

	if len(cfg.TLSDomains) > 0 {
		err = server.StartWithAutoTLS(ctx, cfg.TLSDomains, cfg.CertCacheDir)
	} else {
		err = server.Start(ctx)
	}
	if err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func buildFeed(cfg config.Config) (feed.Feed, error) {
	switch cfg.FeedSource {
	case "http":
		return feed.NewHTTPFeed(cfg.FeedURL), nil
	case "binance":
		client := clients.NewBinanceClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET"))
		return feed.NewBinanceFeed(client, cfg.FeedCurrencies, cfg.QuoteCurrency), nil
	case "bybit":
		client := clients.NewBybitClient(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET"))
		return feed.NewBybitFeed(client, cfg.FeedCurrencies, cfg.QuoteCurrency), nil
	case "hyperliquid":
		key := os.Getenv("HYPERLIQUID_PRIVATE_KEY")
		if key == "" {
			log.Fatal("HYPERLIQUID_PRIVATE_KEY environment variable must be set for the hyperliquid feed")
		}
		client, err := clients.NewHyperliquidClient(key, "")
		if err != nil {
			return nil, err
		}
		return feed.NewHyperliquidFeed(client.Info(), cfg.FeedCurrencies), nil
	default: // "static", validated in config
		return feed.NewStaticFeed(nil), nil
	}
}

func buildWallet(cfg config.Config) (wallet.Source, error) {
	switch cfg.WalletSource {
	case "binance":
		apiKey := os.Getenv("BINANCE_API_KEY")
		apiSecret := os.Getenv("BINANCE_API_SECRET")
		if apiKey == "" || apiSecret == "" {
			log.Fatal("BINANCE_API_KEY and BINANCE_API_SECRET environment variables must be set for the binance wallet source")
		}
		return wallet.NewBinanceSource(clients.NewBinanceClient(apiKey, apiSecret), cfg.WalletChain), nil
	default: // "static", validated in config
		return wallet.NewStaticSource(cfg.Balances), nil
	}
}
