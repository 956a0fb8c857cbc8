package telegram

import (
	"context"
	"fmt"

	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/futig/wanderlust-backend/internal/telegram/bot"
	"github.com/futig/wanderlust-backend/internal/telegram/handlers"
	"github.com/futig/wanderlust-backend/internal/telegram/keyboard"
	"github.com/futig/wanderlust-backend/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is what the telegram-bot command runs
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot wires the questionnaire flow into a polling bot
func NewBot(
	cfg *config.TelegramConfig,
	q *questionnaire.Questionnaire,
	storage state.Storage,
	suggestions handlers.SuggestionUsecase,
	history handlers.HistoryUsecase,
	users handlers.UserUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, stateManager, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	flow := handlers.NewFlow(b.API(), stateManager, q, suggestions, users, keyboard.NewBuilder(), logger)

	// button clicks, then option names typed while a question is open
	for _, h := range []handlers.Handler{
		handlers.NewCallbackHandler(flow),
		handlers.NewAnswerHandler(flow),
	} {
		if err := b.RegisterHandler(h); err != nil {
			return nil, fmt.Errorf("register handler: %w", err)
		}
	}
	b.RegisterCommands(handlers.NewCommandHandler(flow, history))

	logger.Info("telegram bot initialized",
		zap.Int("questions", q.Len()),
	)

	return b, nil
}
