package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	BackendHTTP     = "http"
	BackendPostgres = "postgres"
)

var (
	defaultTaxRate        = decimal.RequireFromString("0.0825")
	defaultSessionIdleTTL = 30 * time.Minute
)

type Config struct {
	AppPort    string
	AppEnv     string
	CORSOrigin string

	BackendMode string
	BackendURL  string
	KioskAPIKey string
	PaymentURL  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	TaxRate           decimal.Decimal
	PreferencesPath   string
	DeviceTokenSecret string
	SessionIdleTTL    time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           os.Getenv("APP_PORT"),
		AppEnv:            os.Getenv("APP_ENV"),
		CORSOrigin:        os.Getenv("CORS_ORIGIN"),
		BackendMode:       os.Getenv("BACKEND_MODE"),
		BackendURL:        os.Getenv("BACKEND_URL"),
		KioskAPIKey:       os.Getenv("KIOSK_API_KEY"),
		PaymentURL:        os.Getenv("PAYMENT_URL"),
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		PreferencesPath:   os.Getenv("PREFERENCES_PATH"),
		DeviceTokenSecret: os.Getenv("DEVICE_TOKEN_SECRET"),
		TaxRate:           parseTaxRate(os.Getenv("TAX_RATE")),
		SessionIdleTTL:    parseDuration(os.Getenv("SESSION_IDLE_TTL"), defaultSessionIdleTTL),
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3000"
	}
	if cfg.BackendMode == "" {
		cfg.BackendMode = BackendHTTP
	}
	if cfg.PaymentURL == "" {
		cfg.PaymentURL = cfg.BackendURL
	}
	if cfg.PreferencesPath == "" {
		cfg.PreferencesPath = "kiosk-preferences.db"
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}

	return cfg
}

// Validate checks that the settings required by the selected backend mode are present.
func (c *Config) Validate() error {
	switch c.BackendMode {
	case BackendHTTP:
		if c.BackendURL == "" {
			return errMissing("BACKEND_URL")
		}
	case BackendPostgres:
		if c.DBHost == "" {
			return errMissing("DB_HOST")
		}
	default:
		return errUnknownMode(c.BackendMode)
	}
	return nil
}

func parseTaxRate(raw string) decimal.Decimal {
	if raw == "" {
		return defaultTaxRate
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		log.Printf("invalid TAX_RATE %q, using %s", raw, defaultTaxRate)
		return defaultTaxRate
	}
	return rate
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
