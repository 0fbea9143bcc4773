// Package main is the entry point for the photo-to-PDF Telegram bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/bot"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/config"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/logger"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/session"
	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("photo-pdf-bot %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)

	shutdownTelemetry, err := telemetry.Init(ctx, "photo-pdf-bot")
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to init telemetry")
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Log.Error().Err(err).Msg("Telemetry shutdown failed")
		}
	}()

	store := session.NewStore(cfg.MaxPhotos)

	telegramBot, err := bot.New(cfg, store)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create bot")
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()
	}()

	telegramBot.Start(ctx)
}
