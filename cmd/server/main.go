package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ministryos/scheduler-api-go/pkg/ai"
	"github.com/ministryos/scheduler-api-go/pkg/auth"
	"github.com/ministryos/scheduler-api-go/pkg/config"
	"github.com/ministryos/scheduler-api-go/pkg/database"
	"github.com/ministryos/scheduler-api-go/pkg/handlers"
	"github.com/ministryos/scheduler-api-go/pkg/roster"
	"github.com/ministryos/scheduler-api-go/pkg/scheduler"
	"go.uber.org/zap"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	defer logger.Sync()

	db := database.InitDB(cfg)
	authSvc := auth.NewService(cfg)
	_ = auth.EnsureAdminExists(db, cfg)

	rosterRepo := roster.NewRepository(db)
	store := roster.NewStore(db)

	var suggester scheduler.Suggester
	if cfg.GeminiAPIKey != "" {
		oracle := ai.NewGeminiClient(ai.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Timeout: cfg.OracleTimeout,
		})
		suggester = ai.NewAdapter(oracle, logger)
	}

	engine := scheduler.NewEngine(rosterRepo, store, suggester, logger, cfg.HistoryWindowDays)

	h := &handlers.Handler{
		DB:     db,
		Auth:   authSvc,
		Engine: engine,
		Roster: rosterRepo,
		Cfg:    cfg,
		Log:    logger,
	}

	r := handlers.Router(h)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
