package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/liliang-cn/askcontract/internal/api"
	"github.com/liliang-cn/askcontract/internal/config"
	"github.com/liliang-cn/askcontract/internal/extract"
	"github.com/liliang-cn/askcontract/internal/llm"
	"github.com/liliang-cn/askcontract/internal/repository"
	"github.com/liliang-cn/askcontract/internal/service"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	contractRepo := repository.NewContractRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Seed stored settings from config when nothing was saved yet
	if settings, err := settingsRepo.Get(); err == nil && settings.APIKey == "" && cfg.LLM.APIKey != "" {
		settings.Provider = cfg.LLM.Provider
		settings.APIKey = cfg.LLM.APIKey
		if err := settingsRepo.Save(settings); err != nil {
			logger.Warn("Failed to seed settings from config", zap.Error(err))
		}
	}

	// Initialize LLM gateway and extractor
	gateway := llm.NewClient(cfg.LLM, logger)
	extractor := extract.NewExtractor(gateway)

	// Initialize services
	analysisService := service.NewAnalysisService(contractRepo, settingsRepo, extractor, gateway, logger)
	chatService := service.NewChatService(contractRepo, sessionRepo, settingsRepo, gateway, logger)

	// Setup router
	router := api.SetupRouter(analysisService, chatService, settingsRepo, api.RouterConfig{
		APIKey:       cfg.Admin.APIKey,
		AllowOrigins: []string{"*"},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting AskContract server",
			zap.String("address", cfg.Address()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
