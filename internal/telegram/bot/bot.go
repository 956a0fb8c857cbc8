package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/pkg/logger"
	"github.com/futig/wanderlust-backend/internal/telegram/handlers"
	"github.com/futig/wanderlust-backend/internal/telegram/keyboard"
	"github.com/futig/wanderlust-backend/internal/telegram/middleware"
	"github.com/futig/wanderlust-backend/internal/telegram/render"
	"github.com/futig/wanderlust-backend/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var errShutdownTimeout = errors.New("telegram bot shutdown timed out")

// Bot polls Telegram and routes updates to the questionnaire handlers
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.TelegramConfig
	stateManager *state.Manager
	logger       *zap.Logger

	// keyed by HandlerStateCallback or by the form phase that accepts text
	handlers map[string]handlers.Handler
	commands *handlers.CommandHandler

	rateLimit *middleware.RateLimiterMiddleware
	dispatch  func(context.Context, tgbotapi.Update)

	updates tgbotapi.UpdatesChannel
	slots   chan struct{}
	stop    chan struct{}
	wg      sync.WaitGroup
}

func New(cfg *config.TelegramConfig, stateManager *state.Manager, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	log.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	b := &Bot{
		api:          api,
		cfg:          cfg,
		stateManager: stateManager,
		logger:       log,
		handlers:     make(map[string]handlers.Handler),
		slots:        make(chan struct{}, cfg.MaxConcurrent),
		stop:         make(chan struct{}),
	}

	b.rateLimit = middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, log, api)
	logging := middleware.NewLoggingMiddleware(log)
	recovery := middleware.NewRecoveryMiddleware(log, api)

	// rate limit -> logging -> recovery -> route
	b.dispatch = func(ctx context.Context, update tgbotapi.Update) {
		b.rateLimit.Handle(update, func(u tgbotapi.Update) {
			logging.Handle(u, func(u tgbotapi.Update) {
				recovery.Handle(u, func(u tgbotapi.Update) {
					b.route(ctx, u)
				})
			})
		})
	}

	return b, nil
}

// Start begins long polling; updates are handled until ctx ends or Stop is called
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updates = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.poll(ctx)

	b.logger.Info("telegram bot started",
		zap.Int("max_concurrent_updates", cap(b.slots)),
	)
	return nil
}

// Stop ends polling and waits for in-flight updates up to the shutdown timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stop)
	b.api.StopReceivingUpdates()
	defer b.rateLimit.Close()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	timeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("telegram bot stopped")
		return nil
	case <-time.After(timeout):
		b.logger.Warn("in-flight updates did not finish before shutdown",
			zap.Duration("timeout", timeout),
		)
		return errShutdownTimeout
	}
}

// poll runs every update in its own goroutine, at most cap(slots) at a time
func (b *Bot) poll(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context done, polling stopped")
			return
		case <-b.stop:
			ctxzap.Info(ctx, "stop requested, polling stopped")
			return
		case update, ok := <-b.updates:
			if !ok {
				return
			}
			select {
			case b.slots <- struct{}{}:
			case <-b.stop:
				return
			}
			b.wg.Add(1)
			go func() {
				defer func() {
					<-b.slots
					b.wg.Done()
				}()
				b.dispatch(ctx, update)
			}()
		}
	}
}

func (b *Bot) route(ctx context.Context, update tgbotapi.Update) {
	// a running handler finishes even after polling is cancelled
	ctx = context.WithoutCancel(ctx)

	switch {
	case update.CallbackQuery != nil:
		b.onCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		if update.Message.IsCommand() {
			b.onCommand(ctx, update.Message)
			return
		}
		b.onText(ctx, update.Message)
	}
}

func newMessage(message *tgbotapi.Message) *handlers.Message {
	return &handlers.Message{
		ChatID:    message.Chat.ID,
		UserID:    message.From.ID,
		UserName:  displayName(message.From),
		MessageID: message.MessageID,
		Text:      message.Text,
	}
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// onText passes typed text to the handler of the current form phase
func (b *Bot) onText(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	ctx = logger.WithChat(ctx, chatID)

	data, err := b.stateManager.GetStateData(ctx, chatID)
	if err != nil {
		ctxzap.Error(ctx, "failed to load chat state", zap.Error(err))
		b.reply(chatID, render.ErrGeneric)
		return
	}
	if data.Form == nil {
		b.reply(chatID, render.MsgNoSession)
		return
	}

	handler, ok := b.handlers[string(data.Form.Phase)]
	if !ok {
		b.reply(chatID, render.MsgUseButtons)
		return
	}

	if err := handler.Handle(ctx, newMessage(message)); err != nil {
		ctxzap.Error(ctx, "text handler failed",
			zap.Error(err),
			zap.String("phase", string(data.Form.Phase)),
		)
		b.reply(chatID, render.ErrGeneric)
	}
}

func (b *Bot) onCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	ctx = logger.WithChat(ctx, message.Chat.ID)
	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	if b.commands == nil {
		b.reply(message.Chat.ID, render.ErrGeneric)
		return
	}

	msg := newMessage(message)
	switch command {
	case "start":
		b.commands.Start(ctx, msg)
	case "help":
		b.commands.Help(ctx, msg)
	case "history":
		b.commands.History(ctx, msg)
	case "cancel":
		b.commands.Cancel(ctx, msg)
	default:
		b.reply(message.Chat.ID, render.ErrUnknownCommand)
	}
}

// onCallback acknowledges the click first; results arrive as messages
func (b *Bot) onCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallback(query.ID, "")
		return
	}
	chatID := query.Message.Chat.ID
	ctx = logger.WithChat(ctx, chatID)

	if _, err := keyboard.ParseCallback(query.Data); err != nil {
		ctxzap.Warn(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.answerCallback(query.ID, "❌ Invalid button")
		return
	}

	handler, ok := b.handlers[handlers.HandlerStateCallback]
	if !ok {
		ctxzap.Error(ctx, "callback handler not registered")
		b.answerCallback(query.ID, "❌ Not available")
		return
	}
	b.answerCallback(query.ID, "")

	msg := &handlers.Message{
		ChatID:       chatID,
		UserID:       query.From.ID,
		UserName:     displayName(query.From),
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}
	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler failed", zap.Error(err))
		b.reply(chatID, render.ErrGeneric)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Warn("failed to send reply",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Warn("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler adds a handler for callbacks or for a form phase
func (b *Bot) RegisterHandler(handler handlers.Handler) error {
	name := handler.GetState()
	if !handlers.IsValidState(name) {
		return fmt.Errorf("invalid handler state: %q", name)
	}
	b.handlers[name] = handler
	b.logger.Debug("handler registered", zap.String("state", name))
	return nil
}

func (b *Bot) RegisterCommands(commands *handlers.CommandHandler) {
	b.commands = commands
}

// API exposes the client so handlers can send and edit messages
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}
