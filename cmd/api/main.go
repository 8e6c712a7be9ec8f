package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/arcynforge/forge-backend/config"
	"github.com/arcynforge/forge-backend/internal/bootstrap"
	cronjob "github.com/arcynforge/forge-backend/internal/cron"
	"github.com/arcynforge/forge-backend/internal/logging"
	"github.com/arcynforge/forge-backend/internal/metrics"
	"github.com/arcynforge/forge-backend/internal/tuningjobs/lifecycle"
)

const serviceName = "arcynforge-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.App.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	bootstrap.SetGinMode(cfg.App.Environment)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, bootstrap.StoreOptions{URL: cfg.Store.DatabaseURL})
	if err != nil {
		logger.Fatal("open document store", zap.Error(err))
	}
	if store == nil {
		logger.Warn("DATABASE_URL not set; resource endpoints will answer 503")
	} else {
		logger.Info("document store ready", zap.String("backend", store.Name()))
	}

	var sim *lifecycle.Simulator
	if store != nil {
		sim = lifecycle.NewSimulator(store, logger.Named("lifecycle"), cfg.Simulator.Step)
	}

	reporter := cronjob.NewReporter(store, logger.Named("stats"), cfg.Stats.Spec)
	if err := reporter.Start(); err != nil {
		logger.Fatal("start stats reporter", zap.Error(err))
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		DatabaseURLSet: cfg.Store.DatabaseURL != "",
		Store:          store,
		Simulator:      sim,
		Logger:         logger,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started",
			zap.String("service", serviceName),
			zap.String("version", cfg.App.Version),
			zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	reporter.Stop()
	if sim != nil {
		sim.Close()
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("store close error", zap.Error(err))
		}
	}
	logger.Info("shutdown complete")
}
