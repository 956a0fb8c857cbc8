package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/wanderlust-backend/internal/entity"
	pkgRetry "github.com/futig/wanderlust-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Generative model configuration
	LLMCfg LLMConfig `envPrefix:"LLM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	AuthCfg AuthConfig `envPrefix:"AUTH_"`
	HTTPCfg HTTPConfig `envPrefix:"HTTP_"`

	// Questionnaire configuration (questions loaded from JSON file)
	QuestionnaireFile       string        `env:"QUESTIONNAIRE_FILE" envDefault:"internal/config/questionnaire.json"`
	QuestionnaireSessionTTL time.Duration `env:"QUESTIONNAIRE_SESSION_TTL" envDefault:"1h"`
	Questions               []entity.Question

	// Destination brief cache
	BriefCacheTTL time.Duration `env:"BRIEF_CACHE_TTL" envDefault:"6h"`

	// Telegram bot configuration (only required by the bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderHTTP   LLMProvider = "http"
	LLMProviderMock   LLMProvider = "mock"
)

type LLMConfig struct {
	HTTPClientConfig
	Provider    LLMProvider          `env:"PROVIDER" envDefault:"gemini"`
	Model       string               `env:"MODEL" envDefault:"gemini-2.5-flash"`
	APIKey      string               `env:"API_KEY"`
	Temperature float32              `env:"TEMPERATURE" envDefault:"0.7"`
	Suggest     string               `env:"SUGGEST_ENDPOINT" envDefault:"/suggest-destinations"`
	Brief       string               `env:"BRIEF_ENDPOINT" envDefault:"/destination-brief"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
	Breaker     BreakerConfig        `envPrefix:"BREAKER_"`
}

type BreakerConfig struct {
	MaxRequests  uint32        `env:"MAX_REQUESTS" envDefault:"3"`
	Interval     time.Duration `env:"INTERVAL" envDefault:"1m"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"30s"`
	FailureRatio float64       `env:"FAILURE_RATIO" envDefault:"0.6"`
	MinRequests  uint32        `env:"MIN_REQUESTS" envDefault:"5"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}

type HTTPConfig struct {
	RateLimitRequests  int           `env:"RATE_LIMIT_REQUESTS" envDefault:"30"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	MaxConcurrent      int    `env:"MAX_CONCURRENT_UPDATES" envDefault:"32"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	questions, err := loadQuestionnaire(cfg.QuestionnaireFile)
	if err != nil {
		return nil, fmt.Errorf("load questionnaire: %w", err)
	}
	cfg.Questions = questions

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	switch cfg.LLMCfg.Provider {
	case LLMProviderGemini:
		if cfg.LLMCfg.APIKey == "" {
			errors = append(errors, "LLM_API_KEY is required for the gemini provider")
		}
	case LLMProviderHTTP:
		if cfg.LLMCfg.Url == "" {
			errors = append(errors, "LLM_SERVICE_URL is required for the http provider")
		}
	case LLMProviderMock:
	default:
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be one of gemini, http, mock, got %q", cfg.LLMCfg.Provider))
	}

	if cfg.LLMCfg.Breaker.FailureRatio <= 0 || cfg.LLMCfg.Breaker.FailureRatio > 1 {
		errors = append(errors, fmt.Sprintf("LLM_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", cfg.LLMCfg.Breaker.FailureRatio))
	}

	if cfg.LLMCfg.Retry.Attempts < 1 || cfg.LLMCfg.Retry.Attempts > 10 {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.LLMCfg.Retry.Attempts))
	}

	if len(cfg.AuthCfg.JWTSecret) < 32 {
		errors = append(errors, "AUTH_JWT_SECRET must be at least 32 characters")
	}

	if cfg.AuthCfg.BcryptCost < 4 || cfg.AuthCfg.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("AUTH_BCRYPT_COST must be between 4 and 31, got %d", cfg.AuthCfg.BcryptCost))
	}

	if cfg.HTTPCfg.RateLimitRequests < 1 {
		errors = append(errors, fmt.Sprintf("HTTP_RATE_LIMIT_REQUESTS must be positive, got %d", cfg.HTTPCfg.RateLimitRequests))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.TelegramCfg.MaxConcurrent < 1 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_MAX_CONCURRENT_UPDATES must be positive, got %d", cfg.TelegramCfg.MaxConcurrent))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// questionnaireFile represents the structure of questionnaire.json
type questionnaireFile struct {
	Questions []entity.Question `json:"questions"`
}

func loadQuestionnaire(path string) ([]entity.Question, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Warning: questionnaire file not found at %s, using default questionnaire\n", path)
		return DefaultQuestions(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questionnaire file: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("questionnaire file is empty: %s", path)
	}

	var file questionnaireFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse questionnaire JSON: %w", err)
	}

	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("questionnaire file contains no questions: %s", path)
	}

	if err := validateQuestions(file.Questions); err != nil {
		return nil, err
	}

	fmt.Printf("Loaded %d questions from %s\n", len(file.Questions), path)
	return file.Questions, nil
}

func validateQuestions(questions []entity.Question) error {
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if q.Key == "" || q.AIKey == "" || q.Question == "" {
			return fmt.Errorf("question #%d: key, ai_key and question are required", i+1)
		}
		if _, ok := seen[q.Key]; ok {
			return fmt.Errorf("question #%d: duplicate key %q", i+1, q.Key)
		}
		seen[q.Key] = struct{}{}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q has no options", q.Key)
		}
		if err := q.SelectType.Validate(); err != nil {
			return fmt.Errorf("question %q: %w", q.Key, err)
		}
	}
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
