// Package main is the entry point for the livestock logbook API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/tanchoice/livestock/backend/internal/auth"
	"github.com/tanchoice/livestock/backend/internal/config"
	"github.com/tanchoice/livestock/backend/internal/handler"
	"github.com/tanchoice/livestock/backend/internal/localdb"
	"github.com/tanchoice/livestock/backend/internal/middleware"
	"github.com/tanchoice/livestock/backend/internal/repo"
	"github.com/tanchoice/livestock/backend/internal/service"
	"github.com/tanchoice/livestock/backend/migrations"
	"github.com/tanchoice/livestock/backend/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	// Two backends share the same repo interfaces: Postgres for the hosted
	// deployment, a JSON snapshot file for offline or demo use.
	var (
		supplierRepo repo.SupplierRepo
		tripRepo     repo.TripRepo
		reportRepo   repo.ReportRepo
	)

	switch cfg.Store {
	case config.StoreLocal:
		store, err := localdb.Open(cfg.LocalDBPath)
		if err != nil {
			slog.Error("failed to open local store", "path", cfg.LocalDBPath, "error", err)
			os.Exit(1)
		}
		supplierRepo = store.Suppliers()
		tripRepo = store.Trips()
		reportRepo = store.Reports()
		slog.Info("local store opened", "path", cfg.LocalDBPath)

	default:
		// pgxpool manages a pool of Postgres connections.
		// New() does not open connections immediately; the first query does.
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")

		if err := applyMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}

		supplierRepo = repo.NewSupplierRepo(pool)
		tripRepo = repo.NewTripRepo(pool)
		reportRepo = repo.NewReportRepo(pool)
	}

	// --- Services ---------------------------------------------------------
	supplierSvc := service.NewSupplierService(supplierRepo)
	tripSvc := service.NewTripService(tripRepo, supplierRepo)
	reportSvc := service.NewReportService(reportRepo, supplierRepo)

	// Local mode doubles as demo mode: any credentials sign in as the
	// built-in staff account.
	demoMode := cfg.Store == config.StoreLocal
	authSvc := auth.NewService(cfg.JWTSecret, cfg.AuthEmail, cfg.AuthPasswordHash, demoMode)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID assigns a trace ID, RealIP fixes
	// r.RemoteAddr behind a proxy, SlogLogger writes one structured line per
	// request, Recoverer turns panics into HTTP 500s.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck
		w.Write(spec.OpenAPI)
	})

	srv := handler.NewServer(supplierSvc, tripSvc, reportSvc, authSvc)
	r.Mount("/", srv.Routes(middleware.NewBearerAuth(authSvc)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "store", cfg.Store)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// applyMigrations brings the schema up to date using the embedded goose
// migrations. goose drives a database/sql connection, so a short-lived
// *sql.DB is opened alongside the pgx pool.
func applyMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "path", res.Source.Path)
	}
	return nil
}
