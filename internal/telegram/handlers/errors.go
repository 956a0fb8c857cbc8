package handlers

import (
	"context"
	"errors"
	"net"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/validator"
	"github.com/futig/wanderlust-backend/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// String returns string representation of error severity
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError analyzes an error and returns a HandlerError with appropriate severity and messages
func classifyHandlerError(err error) *HandlerError {
	if err == nil {
		return &HandlerError{
			UserMessage: render.ErrGeneric,
			LogMessage:  "unknown error",
			Severity:    SeverityWarning,
		}
	}

	if fields, ok := validator.AsFieldErrors(err); ok {
		return &HandlerError{Err: err, UserMessage: render.RenderValidation(fields), LogMessage: "invalid answer", Severity: SeverityWarning}
	}

	// Check for domain errors (non-critical)
	switch {
	case errors.Is(err, errNoForm):
		return &HandlerError{Err: err, UserMessage: render.MsgNoSession, LogMessage: "no questionnaire in chat", Severity: SeverityWarning}
	case errors.Is(err, errStaleMessage):
		return &HandlerError{Err: err, UserMessage: render.ErrStale, LogMessage: "stale callback", Severity: SeverityWarning}
	case errors.Is(err, entity.ErrNoSuggestions):
		return &HandlerError{Err: err, UserMessage: render.ErrNoSuggestions, LogMessage: "no destinations suggested", Severity: SeverityWarning}
	case errors.Is(err, entity.ErrSubmitInProgress):
		return &HandlerError{Err: err, UserMessage: render.ErrBusy, LogMessage: "submit in progress", Severity: SeverityWarning}
	case errors.Is(err, entity.ErrInvalidFormPhase), errors.Is(err, entity.ErrQuestionNotFound):
		return &HandlerError{Err: err, UserMessage: render.ErrStale, LogMessage: "stale callback", Severity: SeverityWarning}
	case errors.Is(err, entity.ErrHistoryFetch):
		return &HandlerError{Err: err, UserMessage: render.ErrHistory, LogMessage: "history fetch failed", Severity: SeverityError}
	case errors.Is(err, entity.ErrModelUnavailable):
		return &HandlerError{Err: err, UserMessage: render.ErrServiceUnavailable, LogMessage: "model unavailable", Severity: SeverityError}
	}

	// Check for timeout errors
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &HandlerError{Err: err, UserMessage: render.ErrTimeout, LogMessage: "operation timed out", Severity: SeverityError}
	}

	switch {
	case errors.Is(err, entity.ErrSuggestionFailed):
		return &HandlerError{Err: err, UserMessage: render.ErrSuggestionFailed, LogMessage: "suggestion failed", Severity: SeverityError}
	case errors.Is(err, entity.ErrDetailsFailed):
		return &HandlerError{Err: err, UserMessage: render.ErrDetailsFailed, LogMessage: "details failed", Severity: SeverityError}
	}

	// Check for network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &HandlerError{Err: err, UserMessage: render.ErrTimeout, LogMessage: "network timeout", Severity: SeverityError}
		}
		return &HandlerError{Err: err, UserMessage: render.ErrNetworkIssue, LogMessage: "network error", Severity: SeverityError}
	}

	return &HandlerError{
		Err:         err,
		UserMessage: render.ErrGeneric,
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}
}

// HandleError logs the error with its severity and sends a user-friendly message
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	default:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	h.sendMessage(chatID, handlerErr.UserMessage, nil)
}
