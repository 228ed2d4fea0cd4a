// Package web exposes the pricing engine over a small JSON API.
package web

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
	"tokendesk/internal/domain"
	"tokendesk/internal/services/converter"
	"tokendesk/internal/services/portfolio"
	"tokendesk/internal/services/wallet"
)

// CatalogProvider yields the latest catalog snapshot.
type CatalogProvider interface {
	Catalog() *domain.Catalog
}

// Server exposes HTTP endpoints over the catalog, the portfolio pipeline
// and the conversion calculator.
type Server struct {
	Addr           string
	Catalogs       CatalogProvider
	Wallet         wallet.Source
	Pipeline       *portfolio.Pipeline
	QuotePrecision int32
	Logger         *zap.Logger
}

// NewServer creates a new API server instance.
func NewServer(addr string, catalogs CatalogProvider, walletSrc wallet.Source, pipeline *portfolio.Pipeline, quotePrecision int32, logger *zap.Logger) *Server {
	return &Server{
		Addr:           addr,
		Catalogs:       catalogs,
		Wallet:         walletSrc,
		Pipeline:       pipeline,
		QuotePrecision: quotePrecision,
		Logger:         logger,
	}
}

func (s *Server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/catalog", s.handleCatalog)
	mux.HandleFunc("/api/balances", s.handleBalances)
	mux.HandleFunc("/api/quote", s.handleQuote)
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartWithAutoTLS runs an HTTPS server with automatic TLS certificates via
// ACME, plus an HTTP server on port 80 for HTTP-01 challenges.
func (s *Server) StartWithAutoTLS(ctx context.Context, domains []string, cacheDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(domains) == 0 {
		return fmt.Errorf("no domains provided for automatic TLS")
	}
	if cacheDir == "" {
		cacheDir = "cert-cache"
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domains...),
		Cache:      autocert.DirCache(cacheDir),
	}

	httpSrv := &http.Server{
		Addr:              ":80",
		Handler:           manager.HTTPHandler(nil),
		ReadHeaderTimeout: 5 * time.Second,
	}

	tlsConfig := manager.TLSConfig()
	tlsConfig.MinVersion = tls.VersionTLS12

	httpsSrv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.mux(),
		ReadHeaderTimeout: 5 * time.Second,
		TLSConfig:         tlsConfig,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		_ = httpsSrv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("acme http server failed", zap.Error(err))
		}
	}()

	if err := httpsSrv.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"entries": s.Catalogs.Catalog().Entries(),
	})
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.Wallet.Balances(r.Context())
	if err != nil {
		s.Logger.Error("failed to load balances", zap.Error(err))
		s.writeJSON(w, http.StatusBadGateway, map[string]any{"error": "balance source unavailable"})
		return
	}

	rows := s.Pipeline.Render(balances, s.Catalogs.Catalog())
	s.writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

type quoteResponse struct {
	Resolved     bool   `json:"resolved"`
	FromCurrency string `json:"from_currency,omitempty"`
	ToCurrency   string `json:"to_currency,omitempty"`
	FromAmount   string `json:"from_amount,omitempty"`
	ToAmount     string `json:"to_amount,omitempty"`
	Rate         string `json:"rate,omitempty"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")

	side := domain.Side(query.Get("side"))
	if side == "" {
		side = domain.SideFrom
	}

	amount, err := decimal.NewFromString(query.Get("amount"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid amount"})
		return
	}

	quote, ok := converter.Quote(s.Catalogs.Catalog(), from, to, amount, side)
	if !ok {
		s.writeJSON(w, http.StatusOK, quoteResponse{Resolved: false})
		return
	}

	s.writeJSON(w, http.StatusOK, quoteResponse{
		Resolved:     true,
		FromCurrency: quote.FromCurrency,
		ToCurrency:   quote.ToCurrency,
		FromAmount:   quote.FormattedFrom(s.QuotePrecision),
		ToAmount:     quote.FormattedTo(s.QuotePrecision),
		Rate:         quote.Rate.String(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.Logger.Error("failed to encode response", zap.Error(err))
	}
}
