package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"accessdesk/internal/access"
	accesshandler "accessdesk/internal/access/handler"
	"accessdesk/internal/access/metrics"
	"accessdesk/internal/auth"
	authhandler "accessdesk/internal/auth/handler"
	"accessdesk/internal/backend"
	"accessdesk/internal/directory"
	directoryhandler "accessdesk/internal/directory/handler"
	apphttp "accessdesk/internal/http"
	"accessdesk/internal/ledger"
	ledgerhandler "accessdesk/internal/ledger/handler"
	"accessdesk/internal/platform/config"
	"accessdesk/internal/platform/httpserver"
	"accessdesk/internal/platform/logger"
	"accessdesk/internal/platform/postgres"
	platformredis "accessdesk/internal/platform/redis"
	"accessdesk/internal/registry"
)

// main wires configuration, storage, the registry and the HTTP surface, then
// runs the API and metrics servers until a shutdown signal arrives. Business
// logic lives in the internal services.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New()

	coreDB, err := postgres.Open(ctx, cfg.CoreDatabaseURL)
	if err != nil {
		log.Error("core database unavailable", "error", err)
		os.Exit(1)
	}

	var (
		dirStore    directory.Store
		ledgerStore ledger.Store
		authStore   auth.Store
	)
	if coreDB != nil {
		dirStore = directory.NewPostgres(coreDB)
		ledgerStore = ledger.NewPostgres(coreDB)
		authStore = auth.NewPostgres(coreDB)
		defer coreDB.Close()
	} else {
		// No DSN configured: run against in-memory stores. Useful for local
		// development; nothing survives a restart.
		log.Warn("no core database configured, using in-memory stores")
		dirStore = directory.NewInMemoryStore()
		ledgerStore = ledger.NewInMemoryStore()
		authStore = auth.NewInMemoryStore()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		dirStore = directory.NewCachedStore(dirStore, redisClient.Client, cfg.LocationCacheTTL, log)
		defer redisClient.Close()
	}

	dirService := directory.NewService(dirStore)

	reg, err := registry.Default(dirService)
	if err != nil {
		log.Error("invalid application catalog", "error", err)
		os.Exit(1)
	}

	adapters, closeBackends, err := buildAdapters(ctx, cfg, log)
	if err != nil {
		log.Error("backend wiring failed", "error", err)
		os.Exit(1)
	}
	defer closeBackends()

	accessMetrics := metrics.New()
	accessService, err := access.NewService(reg, adapters, ledgerStore,
		access.WithLogger(log),
		access.WithMetrics(accessMetrics),
	)
	if err != nil {
		log.Error("orchestrator wiring failed", "error", err)
		os.Exit(1)
	}

	jwtService := auth.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	authService := auth.NewService(authStore, jwtService)
	ledgerService := ledger.NewService(ledgerStore)

	router := apphttp.NewRouter(apphttp.Deps{
		Logger:           log,
		JWT:              jwtService,
		AuthHandler:      authhandler.New(authService, log),
		AccessHandler:    accesshandler.New(accessService, log),
		LedgerHandler:    ledgerhandler.New(ledgerService),
		DirectoryHandler: directoryhandler.New(dirService),
	})

	apiServer := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := httpserver.New(cfg.MetricsAddr, metricsMux)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting access service", "addr", cfg.Addr)
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting metrics endpoint", "addr", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := apiServer.Shutdown(shutdownCtx)
		if merr := metricsServer.Shutdown(shutdownCtx); err == nil {
			err = merr
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

// buildAdapters opens each application's status store and constructs its
// adapter. Applications without a configured DSN fall back to an in-memory
// adapter so the service still starts in partial environments.
func buildAdapters(ctx context.Context, cfg config.Server, log *slog.Logger) (map[string]backend.Adapter, func(), error) {
	constructors := map[string]func(*sql.DB) backend.Adapter{
		"activate":     func(db *sql.DB) backend.Adapter { return backend.NewActivate(db) },
		"announcement": func(db *sql.DB) backend.Adapter { return backend.NewAnnouncement(db) },
		"avayalogout":  func(db *sql.DB) backend.Adapter { return backend.NewAvayaLogout(db) },
		"helpdesk":     func(db *sql.DB) backend.Adapter { return backend.NewHelpDesk(db) },
		"sdotp":        func(db *sql.DB) backend.Adapter { return backend.NewSdotp(db) },
		"wifiguest":    func(db *sql.DB) backend.Adapter { return backend.NewWifiGuest(db) },
	}

	adapters := make(map[string]backend.Adapter, len(constructors))
	var dbs []*sql.DB
	closeAll := func() {
		for _, db := range dbs {
			db.Close()
		}
	}

	for name, construct := range constructors {
		db, err := postgres.Open(ctx, cfg.BackendDatabaseURLs[name])
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		if db == nil {
			log.Warn("no database configured for application, using in-memory adapter", "app", name)
			adapters[name] = backend.NewInMemory()
			continue
		}
		dbs = append(dbs, db)
		adapters[name] = construct(db)
	}
	return adapters, closeAll, nil
}
