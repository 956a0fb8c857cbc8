package suggestion

import (
	"net/http"

	"github.com/futig/wanderlust-backend/internal/api/middleware"
	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/logger"
	"github.com/futig/wanderlust-backend/internal/pkg/request"
	"github.com/futig/wanderlust-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase SuggestionUsecase
}

func NewHandler(usecase SuggestionUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Suggest handles POST /suggestions - suggest destinations for a full set of preferences
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SuggestDestinations")

	var req entity.SuggestRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	resp, err := h.usecase.Suggest(ctx, middleware.UserID(ctx), req.Preferences)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "destinations suggested", zap.Int("count", len(resp.Destinations)))
	response.Success(w, resp)
}

// Details handles POST /destinations/details - one-sentence brief of a destination
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DestinationDetails")

	var req entity.DestinationDetailsRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	details, err := h.usecase.Details(ctx, &req)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, details)
}
