package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinescope/cinescope/internal/api"
	"github.com/cinescope/cinescope/internal/config"
	"github.com/cinescope/cinescope/internal/logger"
	"github.com/cinescope/cinescope/internal/metadata"
	"github.com/cinescope/cinescope/internal/metadata/letterboxd"
	"github.com/cinescope/cinescope/internal/metrics"
	"github.com/cinescope/cinescope/internal/scheduler"
	"github.com/cinescope/cinescope/internal/scheduler/tasks"
	"github.com/cinescope/cinescope/internal/startup"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	devMode := flag.Bool("dev", false, "Serve offline mock data instead of calling providers")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if *devMode {
		cfg.Metadata.DevMode = true
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer log.Close()

	log.Info().
		Str("version", config.Version).
		Str("logLevel", cfg.Logging.Level).
		Bool("devMode", cfg.Metadata.DevMode).
		Msg("starting cinescope")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	table := letterboxd.NewPopularTable()
	svc := metadata.NewService(&cfg.Metadata, table, m, log.Logger)

	for _, p := range svc.ProviderStatus() {
		if !p.Configured {
			log.Warn().Str("provider", p.Name).Msg("provider not configured, its ratings will be empty")
		}
	}

	// The first provider check doubles as a wait for the network on boot.
	bootLog := log.WithComponent("startup")
	err = startup.WithRetry(ctx, "tmdb connectivity", startup.DefaultRetryConfig(),
		func(ctx context.Context) error {
			return svc.Providers()[0].Test(ctx)
		},
		bootLog.Logger,
	)
	if err != nil {
		bootLog.Warn().Err(err).Msg("TMDB unreachable, requests will fail until it recovers")
	}

	sched, err := scheduler.New(log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	if err := tasks.RegisterTableReloadTask(sched, table, &cfg.Metadata.Letterboxd, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("failed to register table reload task")
	}
	if err := tasks.RegisterProviderHealthTask(sched, svc.Providers(), m, 0, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("failed to register provider health task")
	}
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	server := api.NewServer(&cfg.Server, svc, sched, m, log.Logger)

	go func() {
		if err := server.Start(ctx, cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if err := sched.Stop(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown error")
	}

	log.Info().Msg("server stopped")
}
