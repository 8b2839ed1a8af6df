package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loadboard/internal/audit"
	"loadboard/internal/auth"
	"loadboard/internal/config"
	"loadboard/internal/httpapi"
	"loadboard/internal/loads"
	"loadboard/internal/reporting"
	"loadboard/internal/seed"
	"loadboard/pkg/logger"
	"loadboard/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	auditSvc := audit.NewService(audit.NewMemoryRepo())

	repo, reportRepo, cleanup, err := openRepository(rootCtx, cfg)
	if err != nil {
		log.Error("store init failed", "err", err, "driver", cfg.Store.Driver)
		os.Exit(1)
	}
	defer cleanup()

	loadSvc := loads.NewService(repo, auditSvc)
	reportSvc := reporting.NewService(reportRepo)

	var statsCache *utils.ResponseCache
	if cfg.RedisEnabled() {
		rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		statsCache = utils.NewResponseCache(rdb, "loadboard:stats", 30*time.Second)
	}

	if cfg.App.SeedFile != "" {
		n, err := seed.LoadCSV(rootCtx, log, loadSvc, cfg.App.SeedFile)
		if err != nil {
			log.Error("seed load failed", "err", err, "path", cfg.App.SeedFile)
		} else {
			log.Info("seed data loaded", "count", n, "path", cfg.App.SeedFile)
		}
	}

	h := httpapi.Handlers{
		Loads:      loadSvc,
		Reporting:  reportSvc,
		Audit:      auditSvc,
		Auth:       auth.NewManager(cfg.Auth),
		StatsCache: statsCache,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(httpapi.CORSMiddleware(cfg.App.AllowedOrigins))

	registerRoutes(r, h, auth.RequireAPIKey(cfg.Auth.APIKey, h.Auth))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

// openRepository builds the configured store. Both return values point at the
// same backing store; the reporting repo is just the narrower read interface.
func openRepository(ctx context.Context, cfg config.Config) (loads.Repository, reporting.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := utils.OpenPostgres(ctx, cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := loads.NewPostgresRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		return repo, repo, func() { _ = db.Close() }, nil
	default:
		repo := loads.NewMemoryRepo()
		return repo, repo, func() {}, nil
	}
}
