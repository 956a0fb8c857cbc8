package builder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/wanderlust-backend/internal/api"
	authapi "github.com/futig/wanderlust-backend/internal/api/auth"
	historyapi "github.com/futig/wanderlust-backend/internal/api/history"
	questionnaireapi "github.com/futig/wanderlust-backend/internal/api/questionnaire"
	suggestionapi "github.com/futig/wanderlust-backend/internal/api/suggestion"
	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/integration/llm"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/futig/wanderlust-backend/internal/repository"
	"github.com/futig/wanderlust-backend/internal/telegram"
	"github.com/futig/wanderlust-backend/internal/usecase/auth"
	"github.com/futig/wanderlust-backend/internal/usecase/history"
	questionnaireuc "github.com/futig/wanderlust-backend/internal/usecase/questionnaire"
	"github.com/futig/wanderlust-backend/internal/usecase/suggestion"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// services are the use cases shared by the HTTP server and the Telegram bot
type services struct {
	db            *pgxpool.Pool
	questionnaire *questionnaire.Questionnaire
	auth          *auth.AuthUsecase
	history       *history.HistoryUsecase
	suggestion    *suggestion.SuggestionUsecase
	telegramRepo  *repository.TelegramSessionRepository
}

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("llm_provider", string(cfg.LLMCfg.Provider)),
	)

	svc, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	questionnaireUC := questionnaireuc.NewUsecase(
		svc.questionnaire,
		questionnaire.NewMemoryStore(cfg.QuestionnaireSessionTTL),
		svc.suggestion,
	)

	// Setup API handlers
	handlers := api.Handlers{
		Questionnaire: questionnaireapi.NewHandler(questionnaireUC),
		Suggestion:    suggestionapi.NewHandler(svc.suggestion),
		Auth:          authapi.NewHandler(svc.auth),
		History:       historyapi.NewHandler(svc.history),
	}
	logger.Info("API handlers initialized")

	router := api.SetupRouter(handlers, svc.auth, cfg.HTTPCfg, logger)
	logger.Info("HTTP router configured")

	// Suggestion requests wait for the model, so the write timeout follows the model timeout
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMCfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     svc.db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, errors.New("TELEGRAM_BOT_TOKEN is required for the telegram bot")
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
		zap.String("llm_provider", string(cfg.LLMCfg.Provider)),
	)

	svc, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	bot, err := telegram.NewBot(
		&cfg.TelegramCfg,
		svc.questionnaire,
		svc.telegramRepo,
		svc.suggestion,
		svc.history,
		svc.auth,
		logger,
	)
	if err != nil {
		svc.db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

func buildServices(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*services, error) {
	q, err := questionnaire.New(cfg.Questions)
	if err != nil {
		return nil, fmt.Errorf("build questionnaire: %w", err)
	}

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserPostgres(db)
	historyRepo := repository.NewHistoryPostgres(db)
	telegramRepo := repository.NewTelegramStateRepository(db)
	logger.Info("Repositories initialized")

	connector, err := setupLLM(ctx, cfg.LLMCfg, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setup llm connector: %w", err)
	}

	tokens, err := auth.NewTokenManager(cfg.AuthCfg.JWTSecret, cfg.AuthCfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create token manager: %w", err)
	}

	// Initialize use cases
	authUC := auth.NewUsecase(userRepo, tokens, cfg.AuthCfg.BcryptCost)
	historyUC := history.NewUsecase(historyRepo, q)
	suggestionUC := suggestion.NewUsecase(q, connector, historyUC, cfg.BriefCacheTTL)
	logger.Info("Use cases initialized",
		zap.Int("questions", q.Len()),
	)

	return &services{
		db:            db,
		questionnaire: q,
		auth:          authUC,
		history:       historyUC,
		suggestion:    suggestionUC,
		telegramRepo:  telegramRepo,
	}, nil
}

// setupLLM picks the model provider and wraps it with retries and a circuit breaker
func setupLLM(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (llm.Connector, error) {
	var connector llm.Connector

	switch cfg.Provider {
	case config.LLMProviderGemini:
		logger.Info("Using Gemini connector", zap.String("model", cfg.Model))
		gemini, err := llm.NewGeminiConnector(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		connector = gemini
	case config.LLMProviderHTTP:
		logger.Info("Using HTTP gateway connector", zap.String("url", cfg.Url))
		connector = llm.NewHTTPConnector(cfg, logger)
	case config.LLMProviderMock:
		logger.Info("Using mock connector for the model")
		return llm.NewMockConnector(logger), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}

	return llm.NewResilientConnector(connector, cfg, logger), nil
}
