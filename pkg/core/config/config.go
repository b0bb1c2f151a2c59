// Package config loads screener configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Vendor   VendorConfig
	Screener ScreenerConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL     string
	Enabled bool
}

type VendorConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
}

type ScreenerConfig struct {
	RiskFreeRate   float64
	MarketReturn   float64
	DefaultTaxRate float64
	MaxTickers     int
	ChunkSize      int
	AliasFile      string // optional YAML field alias overrides
}

type LoggingConfig struct {
	Level       string
	Format      string
	FileEnabled bool
	FilePath    string
}

// Load loads configuration from a .env file if present, else from
// environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine, the environment may already be set.
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URL:     getEnv("DATABASE_URL", ""),
			Enabled: getEnv("DATABASE_URL", "") != "",
		},
		Vendor: VendorConfig{
			BaseURL:   getEnv("VENDOR_BASE_URL", "https://query1.finance.example.com"),
			UserAgent: getEnv("VENDOR_USER_AGENT", ""),
			Timeout:   time.Duration(getEnvInt("VENDOR_TIMEOUT_SECONDS", 30)) * time.Second,
			Delay:     time.Duration(getEnvInt("VENDOR_DELAY_MS", 1000)) * time.Millisecond,
		},
		Screener: ScreenerConfig{
			RiskFreeRate:   getEnvFloat("RISK_FREE_RATE", 0.0435),
			MarketReturn:   getEnvFloat("MARKET_RETURN", 0.085),
			DefaultTaxRate: getEnvFloat("DEFAULT_TAX_RATE", 0.21),
			MaxTickers:     getEnvInt("MAX_TICKERS", 50),
			ChunkSize:      getEnvInt("CHUNK_SIZE", 10),
			AliasFile:      getEnv("ALIAS_FILE", ""),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Format:      getEnv("LOG_FORMAT", "console"),
			FileEnabled: getEnv("LOG_FILE_ENABLED", "false") == "true",
			FilePath:    getEnv("LOG_FILE_PATH", "logs"),
		},
	}

	return config, nil
}

// getEnv gets environment variable with fallback.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt gets an integer environment variable with fallback.
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvFloat gets a float environment variable with fallback.
func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
