package handlers

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/telegram/render"
)

// AnswerHandler accepts typed option names while a question is open
type AnswerHandler struct {
	BaseHandler
	flow *Flow
}

func NewAnswerHandler(flow *Flow) *AnswerHandler {
	return &AnswerHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAnswering,
			messageSender: flow.messageSender,
		},
		flow: flow,
	}
}

func (h *AnswerHandler) Handle(ctx context.Context, msg *Message) error {
	if msg.Text == "" {
		h.sendMessage(msg.ChatID, render.MsgUseButtons, nil)
		return nil
	}

	unlock := h.flow.locks.lock(msg.ChatID)
	defer unlock()

	data, err := h.flow.load(ctx, msg.ChatID)
	if err != nil {
		return err
	}
	if err := h.flow.ToggleText(ctx, msg, data); err != nil {
		h.HandleError(ctx, msg.ChatID, err)
	}
	return nil
}
