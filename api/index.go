package handler

import (
	"net/http"

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

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	gin.SetMode(gin.ReleaseMode)

	cfg := config.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}

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

	r = handlers.Router(h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
