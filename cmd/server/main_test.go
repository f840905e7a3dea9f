package main

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"teahouse-kiosk/internal/config"
	"teahouse-kiosk/internal/preference"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppPort:         "8080",
		AppEnv:          "test",
		CORSOrigin:      "http://localhost:3000",
		BackendMode:     config.BackendHTTP,
		BackendURL:      "http://127.0.0.1:1",
		TaxRate:         decimal.RequireFromString("0.0825"),
		PreferencesPath: filepath.Join(t.TempDir(), "prefs.db"),
		SessionIdleTTL:  time.Minute,
	}
}

func openPrefs(t *testing.T, cfg *config.Config) preference.Store {
	t.Helper()
	prefs, err := preference.Open(cfg.PreferencesPath)
	require.NoError(t, err)
	t.Cleanup(func() { prefs.Close() })
	return prefs
}

func TestNewServer(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := newServer(ctx, cfg, nil, openPrefs(t, cfg))
	require.NotNil(t, router)

	t.Run("Health Check", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "OK")
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Cart needs a device", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/cart", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Empty cart for new device", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("X-Device-ID", "kiosk-1")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"items":[]`)
	})

	t.Run("Unreachable backend is unavailable", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/catalog", nil)
		req.Header.Set("X-Device-ID", "kiosk-2")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestBackends(t *testing.T) {
	t.Run("HTTP", func(t *testing.T) {
		source, validator, acceptor := backends(testConfig(t), nil)
		assert.NotNil(t, source)
		assert.NotNil(t, validator)
		assert.NotNil(t, acceptor)
	})

	t.Run("Postgres", func(t *testing.T) {
		db, err := sql.Open("mock_driver_main", "")
		require.NoError(t, err)
		cfg := testConfig(t)
		cfg.BackendMode = config.BackendPostgres

		source, validator, acceptor := backends(cfg, db)
		assert.NotNil(t, source)
		assert.NotNil(t, validator)
		assert.NotNil(t, acceptor)
	})
}

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	var addr string
	startServerFunc = func(a string, handler http.Handler) error {
		addr = a
		return nil
	}

	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("BACKEND_MODE", "postgres")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")
	t.Setenv("PREFERENCES_PATH", filepath.Join(t.TempDir(), "prefs.db"))

	assert.NoError(t, run())
	assert.Equal(t, ":8080", addr)
}
