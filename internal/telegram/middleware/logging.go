package middleware

import (
	"time"

	"github.com/futig/wanderlust-backend/internal/pkg/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs all incoming updates
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Handle logs the update
func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	start := time.Now()
	userID, chatID := Who(update)
	kind := Kind(update)
	log := m.logger.With(
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("action", Action(update)),
	)

	log.Info("telegram update received",
		zap.String("type", kind),
		zap.Int("update_id", update.UpdateID),
	)

	next(update)

	metrics.TelegramUpdatesTotal.WithLabelValues(kind, "processed").Inc()
	log.Info("telegram update processed", zap.Duration("duration", time.Since(start)))
}
