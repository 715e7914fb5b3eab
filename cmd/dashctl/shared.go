package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/coingecko"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/config"
)

// stdout is swapped by tests.
var stdout io.Writer = os.Stdout

// loadConfig reads the same settings as the server.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *coingecko.FinanceClient {
	return coingecko.NewFinanceClient(cfg.Market.Timeout,
		coingecko.WithBaseURL(cfg.Market.BaseURL),
		coingecko.WithAPIKey(cfg.Market.APIKey),
	)
}
