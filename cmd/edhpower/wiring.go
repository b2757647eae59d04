package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ramonehamilton/edh-power/internal/commander/analysis"
	"github.com/ramonehamilton/edh-power/internal/commander/cards/scryfall"
	"github.com/ramonehamilton/edh-power/internal/commander/decksource"
	"github.com/ramonehamilton/edh-power/internal/commander/resolver"
	"github.com/ramonehamilton/edh-power/internal/config"
	"github.com/ramonehamilton/edh-power/internal/logging"
	"github.com/ramonehamilton/edh-power/internal/metrics"
)

// loadConfig reads the config file named by --config, or the default one.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(rootFlags.debug || cfg.App.DebugMode)
}

// buildAnalyzer wires deck sources, the card database and the resolver from cfg.
func buildAnalyzer(cfg *config.Config, logger *zap.Logger, m *metrics.AnalysisMetrics) (*analysis.Analyzer, error) {
	httpTimeout, err := cfg.GetHTTPTimeout()
	if err != nil {
		return nil, err
	}
	batchDelay, err := cfg.GetBatchDelay()
	if err != nil {
		return nil, err
	}

	// Empty base URLs keep each client's public default.
	registry := decksource.NewRegistry(
		decksource.NewMoxfieldClient(
			decksource.WithBaseURL(cfg.Sources.MoxfieldBaseURL),
			decksource.WithTimeout(httpTimeout),
			decksource.WithUserAgent(cfg.Scryfall.UserAgent),
		),
		decksource.NewArchidektClient(
			decksource.WithBaseURL(cfg.Sources.ArchidektBaseURL),
			decksource.WithTimeout(httpTimeout),
			decksource.WithUserAgent(cfg.Scryfall.UserAgent),
		),
	)

	res := resolver.New(
		scryfall.NewClient(
			scryfall.WithBaseURL(cfg.Scryfall.BaseURL),
			scryfall.WithUserAgent(cfg.Scryfall.UserAgent),
		),
		resolver.WithBatching(cfg.Scryfall.BatchSize, batchDelay),
		resolver.WithLogger(logger),
	)

	return analysis.New(registry, res,
		analysis.WithMetrics(m),
		analysis.WithLogger(logger),
	), nil
}
