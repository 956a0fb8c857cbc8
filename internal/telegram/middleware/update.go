package middleware

import (
	"github.com/futig/wanderlust-backend/internal/telegram/keyboard"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ActionAnswer marks a plain text message, which the flow reads as a typed option
const ActionAnswer = "answer"

// Update kinds used in logs and metrics
const (
	KindCommand  = "command"
	KindMessage  = "message"
	KindCallback = "callback"
	KindOther    = "other"
)

// Sender is the part of the Bot API the middleware needs to notify users
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Who extracts Telegram user and chat of an update; zero when the update has neither
func Who(update tgbotapi.Update) (userID, chatID int64) {
	switch {
	case update.Message != nil:
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		return userID, update.Message.Chat.ID
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
		if update.CallbackQuery.Message != nil {
			chatID = update.CallbackQuery.Message.Chat.ID
		}
		return userID, chatID
	default:
		return 0, 0
	}
}

// Kind classifies an update
func Kind(update tgbotapi.Update) string {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		return KindCommand
	case update.Message != nil:
		return KindMessage
	case update.CallbackQuery != nil:
		return KindCallback
	default:
		return KindOther
	}
}

// Action names the step of the trip flow an update drives: "/start" for
// commands, "nav:next" or "opt" for buttons, "answer" for typed options.
// Option and destination indexes are left out to keep the label set small.
func Action(update tgbotapi.Update) string {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		return "/" + update.Message.Command()
	case update.Message != nil:
		return ActionAnswer
	case update.CallbackQuery != nil:
		cb, err := keyboard.ParseCallback(update.CallbackQuery.Data)
		if err != nil {
			return KindOther
		}
		switch cb.Action {
		case keyboard.ActionOption, keyboard.ActionDest:
			return cb.Action
		default:
			return cb.Action + ":" + cb.Value
		}
	default:
		return KindOther
	}
}
