// Command server runs the pre-sales asset manager API: authentication,
// master-list administration, and the audit trail behind them.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"presales/internal/audit"
	authhandler "presales/internal/auth/handler"
	authmetrics "presales/internal/auth/metrics"
	authservice "presales/internal/auth/service"
	authstore "presales/internal/auth/store"
	"presales/internal/auth/token"
	masterhandler "presales/internal/masters/handler"
	mastermetrics "presales/internal/masters/metrics"
	masterservice "presales/internal/masters/service"
	masterstore "presales/internal/masters/store"
	"presales/internal/platform/config"
	"presales/internal/platform/health"
	"presales/internal/platform/logger"
	"presales/internal/platform/middleware"
	"presales/internal/seeder"
	httptransport "presales/internal/transport/http"
	"presales/migrations"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	log := logger.New()

	if err := run(log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log.Info("initializing presales api",
		"addr", cfg.Addr,
		"env", cfg.Env,
		"storage", storageKind(cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		users      authstore.UserStore
		items      masterstore.ItemStore
		auditStore audit.Store
	)
	healthHandler := health.New(cfg.Env)

	if cfg.PGDSN != "" {
		db, err := sql.Open("pgx", cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("pinging database: %w", err)
		}
		if err := applyMigrations(ctx, db); err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}
		users = authstore.NewPostgres(db)
		items = masterstore.NewPostgres(db)
		auditStore = audit.NewPostgres(db)
		healthHandler.RegisterCheck("postgres", db.Ping)
	} else {
		users = authstore.NewInMemory()
		items = masterstore.NewInMemory()
		auditStore = audit.NewInMemory()
	}

	if cfg.SeedDemoData {
		if err := seeder.New(users, items, log).SeedAll(ctx); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	tokens := token.NewService(cfg.JWTSigningKey, "presales", cfg.TokenTTL)
	recorder := audit.NewRecorder(auditStore, log)

	authSvc := authservice.NewService(users, tokens, recorder, authmetrics.New(), log)
	masterSvc := masterservice.NewService(items, recorder, mastermetrics.New(), log)

	router := httptransport.NewRouter(httptransport.Deps{
		Config:  cfg,
		Logger:  log,
		Auth:    authhandler.New(authSvc, log),
		Masters: masterhandler.New(masterSvc, log),
		Audit:   audit.NewHandler(auditStore, log),
		Tokens:  tokens,
		Health:  healthHandler,
		Metrics: middleware.NewHTTPMetrics(),
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func storageKind(cfg *config.Config) string {
	if cfg.PGDSN != "" {
		return "postgres"
	}
	return "memory"
}

// applyMigrations runs the embedded schema files in lexical order. Every
// statement is idempotent, so reapplying on startup is safe.
func applyMigrations(ctx context.Context, db *sql.DB) error {
	entries, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(entries)
	for _, name := range entries {
		raw, err := migrations.FS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}
