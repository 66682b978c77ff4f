package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"vgsales/internal/api"
	"vgsales/internal/config"
	"vgsales/internal/engine"
	"vgsales/internal/logging"
	"vgsales/internal/sqlagg"
)

func main() {
	// 1. Environment
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if envErr != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	// 2. Load + Aggregate (blocks; nothing is served until both tables exist)
	t0 := time.Now()
	store, err := engine.LoadFile(cfg.Data.Path, engine.LoadOptions{SkipMalformed: cfg.Data.SkipMalformed})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Data.Path).Msg("failed to load dataset")
	}

	agg, closeAgg, err := newAggregator(cfg.Data.Aggregator)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start aggregator")
	}
	dash, err := engine.NewDashboard(context.Background(), store, agg, engine.DashboardOptions{
		TitleMinGlobalSales: cfg.Data.TitleMinGlobalSales,
	})
	closeAgg()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to aggregate dataset")
	}
	log.Info().
		Str("aggregator", cfg.Data.Aggregator).
		Dur("elapsed", time.Since(t0)).
		Msg("dashboard ready")

	// 3. Serve
	server := api.NewServer(dash, cfg)

	idle := make(chan struct{})
	go func() {
		defer close(idle)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info().Msg("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	log.Info().Str("addr", cfg.Server.Addr()).Msg("server starting")
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	<-idle
	log.Info().Msg("server stopped")
}

// newAggregator returns the configured backend and a func releasing it.
// The aggregator is only needed while the dashboard is built.
func newAggregator(name string) (engine.Aggregator, func(), error) {
	switch strings.ToLower(name) {
	case "duckdb":
		duck, err := sqlagg.Open()
		if err != nil {
			return nil, nil, err
		}
		return duck, func() {
			if err := duck.Close(); err != nil {
				log.Warn().Err(err).Msg("close duckdb")
			}
		}, nil
	default:
		return engine.MemoryAggregator{}, func() {}, nil
	}
}
