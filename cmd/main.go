package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kotashimizu/care-plan/internal/config"
	"github.com/kotashimizu/care-plan/internal/export"
	"github.com/kotashimizu/care-plan/internal/handlers"
	"github.com/kotashimizu/care-plan/internal/llm"
	"github.com/kotashimizu/care-plan/internal/logger"
	"github.com/kotashimizu/care-plan/internal/server"
	"github.com/kotashimizu/care-plan/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration from main...")
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	// LLM gateway
	llmClient := llm.NewClient(log, cfg.OpenAI)

	// Services
	log.Info("Setting up services from main...")
	planSvc := services.NewPlanService(log, llmClient, cfg.OpenAI)
	qualitySvc := services.NewQualityService(log, llmClient, cfg.OpenAI)

	// Export
	fonts := export.NewFontCache(cfg.Export.FontPath)
	if fonts.Enabled() {
		if _, err := fonts.Font(); err != nil {
			log.Warn("Export font failed to load, vector fallback will transliterate", "error", err)
		}
	} else {
		log.Warn("No export font configured, vector fallback will transliterate")
	}
	exporter := export.NewExporter(log, fonts, cfg.Export)

	// Handlers
	log.Info("Setting up handlers from main...")
	planHandler := handlers.NewPlanHandler(log, planSvc)
	qualityHandler := handlers.NewQualityHandler(log, qualitySvc)
	validateHandler := handlers.NewValidateHandler(log)
	exportHandler := handlers.NewExportHandler(log, exporter)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		CORSOrigins:     cfg.CORSOrigins,
		PlanHandler:     planHandler,
		QualityHandler:  qualityHandler,
		ValidateHandler: validateHandler,
		ExportHandler:   exportHandler,
	})

	addr := ":" + cfg.Port
	log.Info("Starting server", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
