package app

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"cryptometric/internal/analytics"
	"cryptometric/internal/provider"
	"cryptometric/internal/provider/httpfetch"
	"cryptometric/internal/server"
	"cryptometric/internal/slogx"
	"cryptometric/internal/store"
)

// ProvideConfig loads and validates config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadAndValidate()
}

// ProvideLogger creates the application logger from config (for Wire).
func ProvideLogger(cfg *Config) *slog.Logger {
	return slogx.NewDefault(cfg.LogLevel)
}

// ProvideStore creates the dataset store and performs the initial load
// (for Wire). A missing directory or malformed dataset fails app startup
// instead of serving an empty dashboard.
func ProvideStore(cfg *Config, logger *slog.Logger) (*store.Store, error) {
	s := store.New(cfg.DataDir, logger)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// ProvideParams maps config onto analytics parameters (for Wire).
func ProvideParams(cfg *Config) analytics.Params {
	return analytics.Params{
		BaseFees:           cfg.Analytics.BaseFees,
		PreferentialShares: cfg.Analytics.PreferentialShares,
		InflationFactor:    cfg.Analytics.InflationFactor,
	}
}

// ProvideRegistry creates the Prometheus registry with process and Go
// runtime collectors pre-registered (for Wire).
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// ProvideServer creates the dashboard HTTP server (for Wire).
func ProvideServer(s *store.Store, params analytics.Params, reg *prometheus.Registry, logger *slog.Logger) *server.Server {
	return server.New(s, params, reg, logger)
}

// NewSnapshotProvider creates the fetch provider from config.
// Used by the fetch command, outside the serve dependency graph.
func NewSnapshotProvider(cfg *Config) provider.SnapshotProvider {
	var sources []httpfetch.Source
	if cfg.Fetch.StakingURL != "" {
		sources = append(sources, httpfetch.Source{Name: "staking_data.csv", URL: cfg.Fetch.StakingURL})
	}
	if cfg.Fetch.PriceURL != "" {
		sources = append(sources, httpfetch.Source{Name: "price_data.csv", URL: cfg.Fetch.PriceURL})
	}
	return httpfetch.New(cfg.DataDir, sources)
}
