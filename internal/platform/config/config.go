package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values of STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Storage
	StorageDriver      string
	DatabaseURL        string
	SQLitePath         string
	MemorySnapshotPath string
	StorageTimeout     time.Duration

	// Ledger defaults
	LowStockThreshold int
	ExpiryWindowDays  int
	TopSellingLimit   int

	// HTTP
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("STORAGE_DRIVER", DriverSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "medinventory.db")
	v.SetDefault("MEMORY_SNAPSHOT_PATH", "")
	v.SetDefault("STORAGE_TIMEOUT", "5s")
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("EXPIRY_WINDOW_DAYS", 30)
	v.SetDefault("TOP_SELLING_LIMIT", 5)
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:      strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		MemorySnapshotPath: v.GetString("MEMORY_SNAPSHOT_PATH"),
		LowStockThreshold:  v.GetInt("LOW_STOCK_THRESHOLD"),
		ExpiryWindowDays:   v.GetInt("EXPIRY_WINDOW_DAYS"),
		TopSellingLimit:    v.GetInt("TOP_SELLING_LIMIT"),
		RateLimit:          v.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	timeoutStr := v.GetString("STORAGE_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 5 * time.Second
		log.Printf("Warning: Invalid value for STORAGE_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.StorageTimeout = timeout

	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER is %q", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q (want %s, %s or %s)",
			cfg.StorageDriver, DriverMemory, DriverSQLite, DriverPostgres)
	}

	if cfg.LowStockThreshold <= 0 {
		log.Printf("Warning: LOW_STOCK_THRESHOLD must be positive, got %d. Defaulting to 10.\n", cfg.LowStockThreshold)
		cfg.LowStockThreshold = 10
	}
	if cfg.ExpiryWindowDays < 0 {
		log.Printf("Warning: EXPIRY_WINDOW_DAYS must not be negative, got %d. Defaulting to 30.\n", cfg.ExpiryWindowDays)
		cfg.ExpiryWindowDays = 30
	}
	if cfg.TopSellingLimit <= 0 {
		cfg.TopSellingLimit = 5
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
