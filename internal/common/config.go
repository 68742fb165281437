package common

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Extraction ExtractionConfig
	Batch      BatchConfig
	Log        LogConfig
}

// DatabaseConfig holds the customer directory connection settings.
// DSN selects Postgres; SQLitePath selects a SQLite file.
type DatabaseConfig struct {
	DSN              string
	SQLitePath       string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ExtractionConfig holds the purchase-order engine settings
type ExtractionConfig struct {
	OwnDomain          string // excluded when picking the customer email
	LookupTimeout      time.Duration
	MaxItemQuantity    float64
	MaxItemRate        float64
	MaxItemPrice       float64
	PriceTolerance     float64
	MaxBareItemPrice   float64
	MinBareDescription int
}

// BatchConfig holds batch runner settings
type BatchConfig struct {
	Workers int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables, after merging
// any .env file found in the working directory.
func LoadConfig() *Config {
	_ = LoadDotEnv(".env")
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			SQLitePath:       getEnv("SQLITE_PATH", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 1),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Extraction: ExtractionConfig{
			OwnDomain:          getEnv("PO_OWN_DOMAIN", ""),
			LookupTimeout:      getEnvAsDuration("PO_LOOKUP_TIMEOUT", 5*time.Second),
			MaxItemQuantity:    getEnvAsFloat64("PO_ITEM_MAX_QTY", 10000),
			MaxItemRate:        getEnvAsFloat64("PO_ITEM_MAX_RATE", 1000),
			MaxItemPrice:       getEnvAsFloat64("PO_ITEM_MAX_PRICE", 100000),
			PriceTolerance:     getEnvAsFloat64("PO_ITEM_PRICE_TOLERANCE", 0.01),
			MaxBareItemPrice:   getEnvAsFloat64("PO_ITEM_BARE_PRICE_MAX", 500),
			MinBareDescription: getEnvAsInt("PO_ITEM_BARE_DESC_MIN", 10),
		},
		Batch: BatchConfig{
			Workers: getEnvAsInt("PO_WORKERS", 4),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// LoadDotEnv merges key=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("PO_WORKERS", c.Batch.Workers, Positive)
	v.Field("PO_LOOKUP_TIMEOUT", c.Extraction.LookupTimeout, Positive)
	v.Field("PO_ITEM_MAX_QTY", c.Extraction.MaxItemQuantity, Positive)
	v.Field("PO_ITEM_MAX_RATE", c.Extraction.MaxItemRate, Positive)
	v.Field("PO_ITEM_MAX_PRICE", c.Extraction.MaxItemPrice, Positive)
	v.Field("PO_ITEM_PRICE_TOLERANCE", c.Extraction.PriceTolerance, Positive)
	v.Field("PO_ITEM_BARE_PRICE_MAX", c.Extraction.MaxBareItemPrice, Positive)
	v.Field("LOG_LEVEL", c.Log.Level, OneOf("debug", "info", "warn", "error"))
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
