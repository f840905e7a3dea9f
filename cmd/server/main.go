package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"teahouse-kiosk/internal/catalog"
	"teahouse-kiosk/internal/config"
	"teahouse-kiosk/internal/db"
	"teahouse-kiosk/internal/discount"
	"teahouse-kiosk/internal/handler"
	"teahouse-kiosk/internal/kiosk"
	"teahouse-kiosk/internal/logger"
	"teahouse-kiosk/internal/metrics"
	"teahouse-kiosk/internal/middleware"
	"teahouse-kiosk/internal/order"
	"teahouse-kiosk/internal/payment"
	"teahouse-kiosk/internal/preference"

	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(addr string, h http.Handler) error {
		return http.ListenAndServe(addr, h)
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	var database *sql.DB
	if cfg.BackendMode == config.BackendPostgres {
		database = initDBFunc(cfg)
		defer database.Close()
	}

	prefs, err := preference.Open(cfg.PreferencesPath)
	if err != nil {
		return err
	}
	defer prefs.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := newServer(ctx, cfg, database, prefs)

	logger.L().Info("kiosk server running",
		zap.String("port", cfg.AppPort),
		zap.String("backend", cfg.BackendMode),
	)
	return startServerFunc(":"+cfg.AppPort, router)
}

// backends picks the product source, discount validator and order acceptor
// for the configured mode.
func backends(cfg *config.Config, database *sql.DB) (catalog.Source, discount.Validator, order.Acceptor) {
	if cfg.BackendMode == config.BackendPostgres {
		return catalog.NewRepository(database), discount.NewRepository(database), order.NewRepository(database)
	}
	return catalog.NewHTTPSource(cfg.BackendURL, cfg.KioskAPIKey),
		discount.NewHTTPValidator(cfg.BackendURL, cfg.KioskAPIKey),
		order.NewHTTPAcceptor(cfg.BackendURL, cfg.KioskAPIKey)
}

func newServer(ctx context.Context, cfg *config.Config, database *sql.DB, prefs preference.Store) http.Handler {
	source, validator, acceptor := backends(cfg, database)
	m := &metrics.Kiosk{}

	registry := kiosk.NewRegistry(kiosk.Deps{
		Catalog:     catalog.NewCache(source),
		Discounts:   discount.NewService(validator),
		Orders:      order.NewService(acceptor, cfg.TaxRate),
		Payments:    payment.NewConfirmer(payment.NewHTTPGateway(cfg.PaymentURL, cfg.KioskAPIKey)),
		Preferences: prefs,
		Metrics:     m,
	}, cfg.SessionIdleTTL)
	go registry.Run(ctx)

	return setupRouter(handler.New(registry, prefs, m), cfg)
}

func setupRouter(h *handler.Handler, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)

	var root http.Handler = mux
	root = middleware.RateLimitMiddleware(root)
	root = middleware.DeviceAuth(cfg.DeviceTokenSecret)(root)
	root = middleware.CORS(cfg.CORSOrigin)(root)
	root = logger.LoggingMiddleware(root)
	root = logger.RequestIDMiddleware(root)
	return root
}
