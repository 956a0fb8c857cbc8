package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// MessageSender sends plain replies that may be lost without breaking the flow
type MessageSender struct {
	bot    Sender
	logger *zap.Logger
}

func NewMessageSender(bot Sender, logger *zap.Logger) *MessageSender {
	return &MessageSender{
		bot:    bot,
		logger: logger,
	}
}

// Send delivers text with an optional keyboard and returns the sent message id
func (s *MessageSender) Send(chatID int64, text string, markup interface{}) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	msg.DisableWebPagePreview = true

	sent, err := s.bot.Send(msg)
	if err != nil {
		s.logger.Warn("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.Int("text_len", len(text)),
		)
		return 0, err
	}
	return sent.MessageID, nil
}
