package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tutorhub/sheets-bot/internal/api"
	"github.com/tutorhub/sheets-bot/internal/bot"
	"github.com/tutorhub/sheets-bot/internal/config"
	"github.com/tutorhub/sheets-bot/internal/registry"
	"github.com/tutorhub/sheets-bot/internal/repository"
	"github.com/tutorhub/sheets-bot/internal/service"
	"github.com/tutorhub/sheets-bot/internal/utils"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tutor registry: a malformed file is fatal, never silently discarded
	reg, err := registry.New(cfg.Registry.Path)
	if err != nil {
		log.Fatalf("Failed to open tutor registry: %v", err)
	}

	// Record store over Google Sheets
	store, err := repository.NewSheetsRowStore(ctx, cfg.Sheets.CredentialsPath, cfg.Sheets.RequestTimeout)
	if err != nil {
		log.Fatalf("Failed to set up sheets client: %v", err)
	}

	svc := service.NewDefaultService(store, logger)

	// Telegram client
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Fatalf("Failed to authorize bot: %v", err)
	}

	// Health HTTP surface
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	api.NewHandler(version, cfg.Registry.Path).SetupRoutes(router)

	healthServer := &http.Server{
		Addr:    cfg.Health.Addr,
		Handler: router,
	}
	go func() {
		logger.Info("health server listening on %s", cfg.Health.Addr)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server: %v", err)
		}
	}()

	// Poll until interrupted
	b := bot.New(botAPI, reg, svc, logger, cfg.Telegram.PollTimeout)
	b.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("health server shutdown: %v", err)
	}
	logger.Info("shutdown complete")
}
