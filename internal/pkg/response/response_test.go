package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		err         error
		wantStatus  int
		wantMessage string
	}{
		{entity.ErrHistoryNotFound, http.StatusNotFound, "resource not found"},
		{fmt.Errorf("%w: x", entity.ErrInvalidParameter), http.StatusBadRequest, "invalid parameter"},
		{entity.ErrInvalidToken, http.StatusUnauthorized, "authentication required"},
		{entity.ErrEmailTaken, http.StatusConflict, "email is already registered"},
		{entity.ErrSubmitInProgress, http.StatusConflict, "suggestions are already being fetched"},
		{entity.ErrNoSuggestions, http.StatusUnprocessableEntity, entity.ErrNoSuggestions.Error()},
		{fmt.Errorf("%w: %w", entity.ErrSuggestionFailed, errors.New("boom")), http.StatusBadGateway, "Failed to fetch suggestions."},
		{fmt.Errorf("%w: %w", entity.ErrDetailsFailed, entity.ErrModelUnavailable), http.StatusServiceUnavailable, "Failed to fetch destination details."},
		{errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(context.Background(), rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body entity.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, http.StatusText(tt.wantStatus), body.Error)
		})
	}
}

func TestHandleError_FieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(context.Background(), rec, validator.FieldErrors{"mood": validator.MsgSelectionRequired})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body entity.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, validator.MsgSelectionRequired, body.Details["mood"])
}
