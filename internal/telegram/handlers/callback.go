package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/telegram/keyboard"
	"github.com/futig/wanderlust-backend/internal/telegram/render"
	"github.com/futig/wanderlust-backend/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles all button clicks
type CallbackHandler struct {
	BaseHandler
	flow *Flow
}

func NewCallbackHandler(flow *Flow) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback,
			messageSender: flow.messageSender,
		},
		flow: flow,
	}
}

// Handle routes a callback to the flow step. Flow errors are reported to the chat here.
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	cb, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return err
	}

	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(
		zap.String("callback_action", cb.Action),
		zap.String("callback_value", cb.Value),
	))

	switch cb.Action {
	case keyboard.ActionFlow:
		err = h.handleFlow(ctx, msg, cb.Value)
	case keyboard.ActionNav:
		err = h.handleNav(ctx, msg, cb.Value)
	case keyboard.ActionOption:
		var i int
		if i, err = cb.Index(); err != nil {
			return err
		}
		err = h.locked(ctx, msg, func(ctx context.Context, msg *Message, data *state.StateData) error {
			return h.flow.Toggle(ctx, msg, data, i)
		})
	case keyboard.ActionDest:
		var i int
		if i, err = cb.Index(); err != nil {
			return err
		}
		err = h.handleDestination(ctx, msg, i)
	case keyboard.ActionConfirm:
		err = h.handleConfirm(ctx, msg, cb.Value)
	default:
		return fmt.Errorf("unknown callback action: %s", cb.Action)
	}

	h.report(ctx, msg.ChatID, err)
	return nil
}

func (h *CallbackHandler) handleFlow(ctx context.Context, msg *Message, value string) error {
	switch value {
	case keyboard.FlowStart:
		return h.flow.Start(ctx, msg)
	case keyboard.FlowSubmit:
		return h.flow.Submit(ctx, msg)
	case keyboard.FlowRefine:
		return h.locked(ctx, msg, h.flow.Refine)
	default:
		return fmt.Errorf("unknown action value: %s", value)
	}
}

func (h *CallbackHandler) handleNav(ctx context.Context, msg *Message, value string) error {
	switch value {
	case keyboard.NavNext:
		return h.locked(ctx, msg, h.flow.Next)
	case keyboard.NavBack:
		return h.locked(ctx, msg, h.flow.Back)
	default:
		return fmt.Errorf("unknown navigation value: %s", value)
	}
}

// handleDestination reads the results without the chat lock, briefs can take a while
func (h *CallbackHandler) handleDestination(ctx context.Context, msg *Message, i int) error {
	data, err := h.flow.load(ctx, msg.ChatID)
	if err != nil {
		return err
	}
	return h.flow.Details(ctx, msg, data, i)
}

func (h *CallbackHandler) handleConfirm(ctx context.Context, msg *Message, value string) error {
	switch value {
	case keyboard.ConfirmYes:
		if err := h.flow.Reset(ctx, msg.ChatID); err != nil {
			return err
		}
		h.sendMessage(msg.ChatID, render.MsgResetDone, nil)
		return nil
	case keyboard.ConfirmNo:
		h.sendMessage(msg.ChatID, render.MsgResetCanceled, nil)
		return h.flow.Resume(ctx, msg.ChatID)
	default:
		return fmt.Errorf("unknown confirmation value: %s", value)
	}
}

func (h *CallbackHandler) locked(
	ctx context.Context,
	msg *Message,
	fn func(context.Context, *Message, *state.StateData) error,
) error {
	unlock := h.flow.locks.lock(msg.ChatID)
	defer unlock()

	data, err := h.flow.load(ctx, msg.ChatID)
	if err != nil {
		return err
	}
	return fn(ctx, msg, data)
}

// report sends the error to the chat; after a stale click the current view is sent again
func (h *CallbackHandler) report(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}
	h.HandleError(ctx, chatID, err)

	if errors.Is(err, errStaleMessage) || errors.Is(err, entity.ErrInvalidFormPhase) {
		if err := h.flow.Resume(ctx, chatID); err != nil {
			ctxzap.Warn(ctx, "failed to resend current view", zap.Error(err))
		}
	}
}
