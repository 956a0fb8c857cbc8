package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point
			return
		}
	}
}

// Error writes an error response and logs the cause
func Error(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	errorWithDetails(ctx, w, status, message, nil, err)
}

func errorWithDetails(ctx context.Context, w http.ResponseWriter, status int, message string, details map[string]string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Int("status", status), zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Int("status", status), zap.Error(err))
	}

	JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Details: details,
	})
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// HandleError maps domain errors to HTTP statuses
func HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	if fields, ok := validator.AsFieldErrors(err); ok {
		errorWithDetails(ctx, w, http.StatusBadRequest, "validation failed", fields, err)
		return
	}

	switch {
	case errors.Is(err, entity.ErrQuestionnaireSessionNotFound),
		errors.Is(err, entity.ErrQuestionNotFound),
		errors.Is(err, entity.ErrHistoryNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		Error(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrInvalidFormat),
		errors.Is(err, entity.ErrMissingField):
		Error(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrInvalidCredentials):
		Error(ctx, w, http.StatusUnauthorized, entity.ErrInvalidCredentials.Error(), err)
	case errors.Is(err, entity.ErrUnauthorized),
		errors.Is(err, entity.ErrInvalidToken):
		Error(ctx, w, http.StatusUnauthorized, "authentication required", err)
	case errors.Is(err, entity.ErrEmailTaken):
		Error(ctx, w, http.StatusConflict, entity.ErrEmailTaken.Error(), err)
	case errors.Is(err, entity.ErrSubmitInProgress):
		Error(ctx, w, http.StatusConflict, entity.ErrSubmitInProgress.Error(), err)
	case errors.Is(err, entity.ErrInvalidFormPhase):
		Error(ctx, w, http.StatusConflict, "invalid questionnaire state", err)
	case errors.Is(err, entity.ErrNoSuggestions):
		Error(ctx, w, http.StatusUnprocessableEntity, entity.ErrNoSuggestions.Error(), err)
	case errors.Is(err, entity.ErrModelUnavailable):
		Error(ctx, w, http.StatusServiceUnavailable, modelFailureMessage(err), err)
	case errors.Is(err, entity.ErrSuggestionFailed),
		errors.Is(err, entity.ErrDetailsFailed):
		Error(ctx, w, http.StatusBadGateway, modelFailureMessage(err), err)
	case errors.Is(err, entity.ErrHistorySave):
		Error(ctx, w, http.StatusInternalServerError, entity.ErrHistorySave.Error(), err)
	case errors.Is(err, entity.ErrHistoryFetch):
		Error(ctx, w, http.StatusInternalServerError, entity.ErrHistoryFetch.Error(), err)
	default:
		Error(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

func modelFailureMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrSuggestionFailed):
		return entity.ErrSuggestionFailed.Error()
	case errors.Is(err, entity.ErrDetailsFailed):
		return entity.ErrDetailsFailed.Error()
	default:
		return entity.ErrModelUnavailable.Error()
	}
}
