// Package main is the entry point for the persona command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"persona-tracker/internal/app"
	"persona-tracker/internal/config"
	"persona-tracker/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "❌ "+err.Error())
		os.Exit(1)
	}
}

func run() error {
	configDir := os.Getenv("PERSONA_CONFIG_DIR")
	if configDir == "" {
		configDir = "config"
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	setupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()

	store, closeStore, err := app.OpenStore(ctx, cfg, clock)
	if err != nil {
		return err
	}
	defer closeStore()

	docs := repository.NewDocuments(store, cfg.Store.KeyPrefix)
	services := app.NewServices(docs, clock, cfg)

	seeded, err := services.Backup.Initialize(ctx)
	if err != nil {
		return err
	}
	if len(seeded) > 0 {
		log.Info().Strs("keys", seeded).Msg("Seeded default documents")
	}

	a := app.New(&app.Dependencies{
		Config:   cfg,
		Clock:    clock,
		Services: services,
	})
	return a.Execute(ctx, os.Args[1:])
}

func setupLogging(cfg config.LogConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
