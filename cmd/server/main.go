// Package main is the entry point for the qbind binding-affinity estimation
// service. It wires the simulation pipeline (Hamiltonian construction,
// variational optimization, affinity classification), persists completed runs
// and serves the HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/qbind/internal/config"
	"github.com/aristath/qbind/internal/database"
	"github.com/aristath/qbind/internal/domain"
	"github.com/aristath/qbind/internal/modules/estimation"
	"github.com/aristath/qbind/internal/modules/runs"
	"github.com/aristath/qbind/internal/modules/simulation"
	simulationhandlers "github.com/aristath/qbind/internal/modules/simulation/handlers"
	"github.com/aristath/qbind/internal/server"
	"github.com/aristath/qbind/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting qbind")

	db, err := database.New(database.Config{
		Path: cfg.RunsDBPath(),
		Name: "runs",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open runs database")
	}
	defer db.Close()

	runRepo := runs.NewRepository(db, log)
	if err := runRepo.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize runs schema")
	}

	estimator := estimation.NewEstimator(log)
	simService := simulation.NewService(estimator, log)

	if cfg.DevMode {
		runPresets(simService, log)
	}

	simHandlers := simulationhandlers.NewHandler(simService, runRepo, log)
	srv := server.New(server.Config{
		Log:                log,
		Config:             cfg,
		SimulationHandlers: simHandlers,
	})

	// Serve until interrupted, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("HTTP server failed")
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("qbind stopped")
}

// runPresets executes both binding-pocket presets once, mirroring the
// original simulation scripts. Errors are reported, never fatal: the preset
// runs are a smoke check, not a startup requirement.
func runPresets(svc *simulation.Service, log zerolog.Logger) {
	presets := map[string]domain.SimulationRequest{
		"mpro":      simulation.MproPreset(),
		"mpro-spsa": simulation.MproSPSAPreset(),
	}

	for name, req := range presets {
		result, err := svc.Run(req)
		if err != nil {
			log.Error().Err(err).Str("preset", name).Msg("Preset simulation failed")
			continue
		}
		log.Info().
			Str("preset", name).
			Float64("energy", result.Energy.Value).
			Str("verdict", result.Verdict).
			Bool("converged", result.Energy.Converged).
			Msg("Preset simulation finished")
	}
}
