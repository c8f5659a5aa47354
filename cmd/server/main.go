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

	"github.com/rs/zerolog"

	"github.com/Simplici0/profitcalc/internal/config"
	"github.com/Simplici0/profitcalc/internal/db"
	"github.com/Simplici0/profitcalc/internal/logger"
	"github.com/Simplici0/profitcalc/internal/migrations"
	"github.com/Simplici0/profitcalc/internal/money"
	"github.com/Simplici0/profitcalc/internal/pricing"
	"github.com/Simplici0/profitcalc/internal/seed"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})
	for _, warning := range cfg.Warnings {
		log.Warn().Msg(warning)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

// run serves until SIGINT/SIGTERM. Startup failures are returned with every
// opened resource already closed.
func run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	defer database.Close()

	if err := migrations.Up(ctx, database, logger.Goose{Log: log}); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}

	if cfg.SeedDemo {
		stats, err := seed.Run(ctx, database)
		if err != nil {
			return fmt.Errorf("seed demo quotes: %w", err)
		}
		log.Info().Int("inserts", stats.Inserts).Msg("demo quotes seeded")
	}

	srv, err := newServer(serverConfig{
		Log:          log,
		DB:           database,
		Currency:     money.Currency{Symbol: cfg.CurrencySymbol},
		CurrencyCode: cfg.CurrencyCode,
		Defaults: pricing.Input{
			PlannedUnits:         cfg.DefaultUnits,
			DesiredMarginPercent: cfg.DefaultMargin,
		},
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("env", cfg.Env).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
