package history

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/futig/wanderlust-backend/internal/api/middleware"
	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/logger"
	"github.com/futig/wanderlust-backend/internal/pkg/request"
	"github.com/futig/wanderlust-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase HistoryUsecase
}

func NewHandler(usecase HistoryUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// List handles GET /history?skip=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListHistory")

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	items, err := h.usecase.List(ctx, middleware.UserID(ctx), skip, limit)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, entity.ListHistoryResponse{Items: items})
}

// Save handles POST /history
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SaveHistory")

	var req entity.SaveHistoryRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	item, err := h.usecase.Save(ctx, middleware.UserID(ctx), req.Preferences, req.Suggestions)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Created(w, item)
}

// Get handles GET /history/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, id := itemContext(r, "GetHistoryItem")

	item, err := h.usecase.Get(ctx, middleware.UserID(ctx), id)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, item)
}

// Delete handles DELETE /history/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, id := itemContext(r, "DeleteHistoryItem")

	if err := h.usecase.Delete(ctx, middleware.UserID(ctx), id); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// Export handles GET /history/{id}/export?format=markdown|pdf|docx
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, id := itemContext(r, "ExportHistoryItem")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}
	ctx = logger.AddFields(ctx, zap.String("format", formatParam))

	out, fmtr, err := h.usecase.Export(ctx, middleware.UserID(ctx), id, entity.ResultFormat(formatParam))
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"trip-%s%s\"", id, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		ctxzap.Warn(ctx, "failed to write export", zap.Error(err))
	}
}

func itemContext(r *http.Request, action string) (context.Context, string) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("history_item_id", id),
		zap.String("action", action),
	)
	return ctx, id
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", entity.ErrInvalidParameter, name)
	}
	return v, nil
}
