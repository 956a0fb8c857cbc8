package handlers

import (
	"github.com/avast/retry-go/v4"
	pkgRetry "github.com/futig/wanderlust-backend/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sendCriticalMessage sends a message that must be delivered, such as suggestion results
func sendCriticalMessage(
	bot Sender,
	chatID int64,
	text string,
	markup interface{},
	logger *zap.Logger,
) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	opts := append(pkgRetry.DefaultRetryConfig().ToRetryOptions(nil),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn("failed to send message, retrying",
				zap.Error(err),
				zap.Uint("attempt", attempt+1),
				zap.Int64("chat_id", chatID),
			)
		}),
	)

	sent, err := retry.DoWithData(func() (tgbotapi.Message, error) {
		return bot.Send(msg)
	}, opts...)
	if err != nil {
		logger.Error("failed to send message after all retries",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
	return sent, err
}
