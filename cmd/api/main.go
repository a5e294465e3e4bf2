package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-task-management/config"
	_ "voice-task-management/docs" // Swagger docs
	"voice-task-management/internal/extraction/contract"
	extractionUC "voice-task-management/internal/extraction/usecase"
	"voice-task-management/internal/httpserver"
	"voice-task-management/internal/model"
	taskRepo "voice-task-management/internal/task/repository/rdb"
	taskUC "voice-task-management/internal/task/usecase"
	"voice-task-management/pkg/database"
	"voice-task-management/pkg/datemath"
	"voice-task-management/pkg/llmprovider"
	"voice-task-management/pkg/log"
	"voice-task-management/pkg/speech"
)

// @title       Voice Task Management API
// @description Turns spoken or typed requests into structured tasks.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Voice Task Management...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Extraction contract
	var c *contract.Contract
	if cfg.Extraction.ContractPath != "" {
		c, err = contract.Load(cfg.Extraction.ContractPath)
	} else {
		c, err = contract.Default()
	}
	if err != nil {
		logger.Fatalf(ctx, "Failed to load extraction contract: %v", err)
	}
	logger.Infof(ctx, "Extraction contract version %s", c.Version)

	// 4. Date resolver
	dates, err := datemath.NewParser(cfg.Extraction.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Extraction.Timezone, err)
		dates, _ = datemath.NewParser("UTC")
	}

	// 5. Text-generation backend
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize LLM providers: %v", err)
	}
	managerCfg, err := llmprovider.NewManagerConfig(&cfg.LLM)
	if err != nil {
		logger.Fatalf(ctx, "Invalid LLM config: %v", err)
	}
	backend := llmprovider.NewManager(providers, managerCfg, logger)
	for _, p := range providers {
		logger.Infof(ctx, "LLM provider: %s (%s)", p.Name(), p.Model())
	}

	// 6. Extraction pipeline
	timeout, err := time.ParseDuration(cfg.Extraction.Timeout)
	if err != nil {
		logger.Warnf(ctx, "Invalid extraction.timeout %q, using %s", cfg.Extraction.Timeout, extractionUC.DefaultTimeout)
		timeout = extractionUC.DefaultTimeout
	}
	extractor, err := extractionUC.New(logger, backend, c, dates, timeout)
	if err != nil {
		logger.Fatalf(ctx, "Failed to build extraction pipeline: %v", err)
	}

	// 7. Task store
	db, err := database.InitDB(cfg.Database.Driver, cfg.Database.DSN, &model.Task{})
	if err != nil {
		logger.Fatalf(ctx, "Failed to open task store: %v", err)
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer sqlDB.Close()
	}
	logger.Infof(ctx, "Task store: %s", db.Dialector.Name())

	// 8. Speech-to-Text (optional)
	var transcriber speech.ITranscriber
	speechClient, err := speech.New(ctx, speech.Config{
		APIKey:          cfg.Speech.APIKey,
		CredentialsPath: cfg.Speech.CredentialsPath,
		LanguageCode:    cfg.Speech.LanguageCode,
		Encoding:        cfg.Speech.Encoding,
		SampleRateHertz: cfg.Speech.SampleRateHertz,
	})
	switch {
	case errors.Is(err, speech.ErrNoCredential):
		logger.Warn(ctx, "Speech-to-Text not configured, audio input disabled")
	case err != nil:
		logger.Warnf(ctx, "Speech-to-Text not available (optional): %v", err)
	default:
		transcriber = speechClient
		logger.Info(ctx, "Speech-to-Text initialized")
	}

	// 9. Task domain
	uc := taskUC.New(taskRepo.New(db, logger), extractor, transcriber, c, logger)

	// 10. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		DB:          db,
		RateLimit:   cfg.RateLimit,
		TaskUseCase: uc,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 11. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
