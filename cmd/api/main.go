package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mintyscan/mintyscan-backend/internal/api"
	"github.com/mintyscan/mintyscan-backend/internal/config"
	"github.com/mintyscan/mintyscan-backend/internal/db"
	"github.com/mintyscan/mintyscan-backend/internal/logger"
	"github.com/mintyscan/mintyscan-backend/internal/metrics"
	"github.com/mintyscan/mintyscan-backend/internal/repository/postgres"
	"github.com/mintyscan/mintyscan-backend/internal/services"
	"github.com/mintyscan/mintyscan-backend/internal/signer"
	"github.com/mintyscan/mintyscan-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	// Without a signing key the service still serves the leaderboard and
	// reset endpoints; only mint-signature degrades.
	var sg *signer.Signer
	if cfg.SignerPrivateKey == "" {
		log.Warn("SIGNER_PRIVATE_KEY not set; mint-signature endpoint disabled")
	} else {
		sg, err = signer.New(cfg.SignerPrivateKey)
		if err != nil {
			log.Error("signer init", "err", err)
			os.Exit(1)
		}
		log.Info("signer loaded", "address", sg.Address().Hex())
	}

	mintSvc := services.NewMintService(repos.Mints, repos.AuditLogs, sg, wp)
	boardSvc := services.NewLeaderboardService(repos.Mints, cfg.ResetKey)

	metrics.Init()
	metrics.ObserveQueueDepth(wp.Depth)
	r := api.NewRouter(cfg, mintSvc, boardSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
