package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("CORS_ORIGIN", "http://kiosk.local")
		t.Setenv("BACKEND_MODE", "postgres")
		t.Setenv("BACKEND_URL", "http://127.0.0.1:5000")
		t.Setenv("KIOSK_API_KEY", "kiosk-key")
		t.Setenv("PAYMENT_URL", "http://127.0.0.1:6000")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("TAX_RATE", "0.07")
		t.Setenv("PREFERENCES_PATH", "/tmp/prefs.db")
		t.Setenv("DEVICE_TOKEN_SECRET", "secret")
		t.Setenv("SESSION_IDLE_TTL", "5m")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "http://kiosk.local", cfg.CORSOrigin)
		assert.Equal(t, BackendPostgres, cfg.BackendMode)
		assert.Equal(t, "http://127.0.0.1:5000", cfg.BackendURL)
		assert.Equal(t, "kiosk-key", cfg.KioskAPIKey)
		assert.Equal(t, "http://127.0.0.1:6000", cfg.PaymentURL)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.True(t, decimal.RequireFromString("0.07").Equal(cfg.TaxRate))
		assert.Equal(t, "/tmp/prefs.db", cfg.PreferencesPath)
		assert.Equal(t, "secret", cfg.DeviceTokenSecret)
		assert.Equal(t, 5*time.Minute, cfg.SessionIdleTTL)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("APP_PORT", "")
		t.Setenv("CORS_ORIGIN", "")
		t.Setenv("BACKEND_MODE", "")
		t.Setenv("BACKEND_URL", "http://backend")
		t.Setenv("PAYMENT_URL", "")
		t.Setenv("TAX_RATE", "")
		t.Setenv("PREFERENCES_PATH", "")
		t.Setenv("SESSION_IDLE_TTL", "")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
		assert.Equal(t, BackendHTTP, cfg.BackendMode)
		assert.Equal(t, "http://backend", cfg.PaymentURL)
		assert.True(t, defaultTaxRate.Equal(cfg.TaxRate))
		assert.Equal(t, "kiosk-preferences.db", cfg.PreferencesPath)
		assert.Equal(t, defaultSessionIdleTTL, cfg.SessionIdleTTL)
	})
}

func TestValidate(t *testing.T) {
	t.Run("HTTP mode requires backend url", func(t *testing.T) {
		err := (&Config{BackendMode: BackendHTTP}).Validate()
		assert.ErrorIs(t, err, ErrMissingSetting)
		assert.Contains(t, err.Error(), "BACKEND_URL")
	})

	t.Run("Postgres mode requires db host", func(t *testing.T) {
		err := (&Config{BackendMode: BackendPostgres}).Validate()
		assert.ErrorIs(t, err, ErrMissingSetting)
		assert.Contains(t, err.Error(), "DB_HOST")
	})

	t.Run("Unknown mode", func(t *testing.T) {
		err := (&Config{BackendMode: "grpc"}).Validate()
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, (&Config{BackendMode: BackendHTTP, BackendURL: "http://x"}).Validate())
	})
}

func TestParseTaxRate(t *testing.T) {
	assert.True(t, defaultTaxRate.Equal(parseTaxRate("not-a-number")))
	assert.True(t, defaultTaxRate.Equal(parseTaxRate("-0.1")))
	assert.True(t, decimal.RequireFromString("0.1").Equal(parseTaxRate("0.1")))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("bogus", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("-5s", time.Minute))
	assert.Equal(t, 10*time.Second, parseDuration("10s", time.Minute))
}
