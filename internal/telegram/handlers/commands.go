package handlers

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	pendingReset    = "reset"
	historyPageSize = 10
)

// CommandHandler answers the slash commands of the bot
type CommandHandler struct {
	BaseHandler
	flow    *Flow
	history HistoryUsecase
}

func NewCommandHandler(flow *Flow, history HistoryUsecase) *CommandHandler {
	return &CommandHandler{
		BaseHandler: BaseHandler{messageSender: flow.messageSender},
		flow:        flow,
		history:     history,
	}
}

// Start greets the user with the "Plan my trip" button
func (h *CommandHandler) Start(_ context.Context, msg *Message) {
	h.sendMessage(msg.ChatID, render.MsgWelcome, h.flow.keyboard.StartKeyboard())
}

func (h *CommandHandler) Help(_ context.Context, msg *Message) {
	h.sendMessage(msg.ChatID, render.MsgHelp, nil)
}

// History lists the saved trips of the user linked to the chat
func (h *CommandHandler) History(ctx context.Context, msg *Message) {
	userID := h.flow.userID(ctx, msg)
	if userID == "" || h.history == nil {
		h.sendMessage(msg.ChatID, render.ErrHistory, nil)
		return
	}

	items, err := h.history.List(ctx, userID, 0, historyPageSize)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return
	}

	ctxzap.Info(ctx, "history listed", zap.Int("count", len(items)))
	h.sendMessage(msg.ChatID, render.RenderHistory(items), nil)
}

// Cancel asks for confirmation first; a repeated /cancel confirms
func (h *CommandHandler) Cancel(ctx context.Context, msg *Message) {
	unlock := h.flow.locks.lock(msg.ChatID)
	data, err := h.flow.load(ctx, msg.ChatID)
	if err != nil {
		unlock()
		h.HandleError(ctx, msg.ChatID, err)
		return
	}
	if data.Form == nil {
		unlock()
		h.sendMessage(msg.ChatID, render.MsgNoSession, nil)
		return
	}

	if data.PendingConfirmation != pendingReset {
		data.PendingConfirmation = pendingReset
		err := h.flow.save(ctx, msg.ChatID, data)
		unlock()
		if err != nil {
			h.HandleError(ctx, msg.ChatID, err)
			return
		}
		h.sendMessage(msg.ChatID, render.MsgConfirmReset, h.flow.keyboard.ConfirmResetKeyboard())
		return
	}
	unlock()

	if err := h.flow.Reset(ctx, msg.ChatID); err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return
	}
	h.sendMessage(msg.ChatID, render.MsgResetDone, nil)
}
