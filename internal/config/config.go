package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// CronParser parses refresh schedules. Expressions carry a leading seconds field.
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Market   MarketConfig
	Currency CurrencyConfig
	Log      LogConfig
	SeedFile string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds the market-data provider configuration
type MarketConfig struct {
	BaseURL       string
	APIKey        string
	QuoteCurrency string
	Timeout       time.Duration
	RefreshCron   string
	ListLimit     int
}

// CurrencyConfig holds display currency settings
type CurrencyConfig struct {
	// BTCRate is the number of base units per bitcoin used by the BTC display unit.
	BTCRate decimal.Decimal
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string
	Development bool
}

var defaults = map[string]any{
	"SERVER_PORT":           "5001",
	"SERVER_HOST":           "localhost",
	"DB_PATH":               "./data/crypto_dashboard.db",
	"CORS_ALLOWED_ORIGINS":  "http://localhost:3000,http://localhost",
	"MARKET_BASE_URL":       "https://api.coingecko.com/api/v3",
	"MARKET_API_KEY":        "",
	"MARKET_QUOTE_CURRENCY": "eur",
	"MARKET_TIMEOUT":        "10s",
	"MARKET_REFRESH_CRON":   "0 */5 * * * *",
	"MARKET_LIST_LIMIT":     10,
	"CURRENCY_BTC_RATE":     "50000",
	"LOG_LEVEL":             "info",
	"LOG_DEVELOPMENT":       false,
	"SEED_FILE":             "",
}

// Load reads configuration from environment variables, an optional .env file
// and an optional YAML file named by CONFIG_FILE. Environment variables win.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("CURRENCY_BTC_RATE")))
	if err != nil {
		return nil, fmt.Errorf("invalid CURRENCY_BTC_RATE: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("DB_PATH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Market: MarketConfig{
			BaseURL:       v.GetString("MARKET_BASE_URL"),
			APIKey:        v.GetString("MARKET_API_KEY"),
			QuoteCurrency: strings.ToLower(v.GetString("MARKET_QUOTE_CURRENCY")),
			Timeout:       v.GetDuration("MARKET_TIMEOUT"),
			RefreshCron:   v.GetString("MARKET_REFRESH_CRON"),
			ListLimit:     v.GetInt("MARKET_LIST_LIMIT"),
		},
		Currency: CurrencyConfig{
			BTCRate: rate,
		},
		Log: LogConfig{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
		},
		SeedFile: v.GetString("SEED_FILE"),
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if !c.Currency.BTCRate.IsPositive() {
		errs = append(errs, errors.New("CURRENCY_BTC_RATE must be positive"))
	}
	if c.Market.QuoteCurrency == "" {
		errs = append(errs, errors.New("MARKET_QUOTE_CURRENCY is required"))
	}
	if c.Market.Timeout <= 0 {
		errs = append(errs, errors.New("MARKET_TIMEOUT must be positive"))
	}
	if c.Market.ListLimit < 1 || c.Market.ListLimit > 250 {
		errs = append(errs, errors.New("MARKET_LIST_LIMIT must be between 1 and 250"))
	}
	if _, err := CronParser.Parse(c.Market.RefreshCron); err != nil {
		errs = append(errs, fmt.Errorf("MARKET_REFRESH_CRON: %w", err))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
