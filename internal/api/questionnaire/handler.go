package questionnaire

import (
	"context"
	"net/http"

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
	usecase QuestionnaireUsecase
}

func NewHandler(usecase QuestionnaireUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// GetQuestionnaire handles GET /questionnaire
func (h *Handler) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	response.Success(w, entity.QuestionnaireResponse{Questions: h.usecase.Questions()})
}

// StartSession handles POST /questionnaire/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartQuestionnaireSession")

	session, err := h.usecase.StartSession(ctx)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Created(w, session)
}

// GetSession handles GET /questionnaire/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.sessionContext(r, "GetQuestionnaireSession")

	session, err := h.usecase.GetSession(ctx, id)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// Answer handles PUT /questionnaire/sessions/{id}/answer
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.sessionContext(r, "AnswerQuestion")

	var req entity.AnswerRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	ctxzap.Debug(ctx, "answering question", zap.Strings("selections", req.Selections))

	session, err := h.usecase.Answer(ctx, id, req.Selections)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// Next handles POST /questionnaire/sessions/{id}/next
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.sessionContext(r, "NextQuestion")

	session, err := h.usecase.Next(ctx, id)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// Back handles POST /questionnaire/sessions/{id}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.sessionContext(r, "PreviousQuestion")

	session, err := h.usecase.Back(ctx, id)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// Summary handles GET /questionnaire/sessions/{id}/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.sessionContext(r, "QuestionnaireSummary")

	summary, err := h.usecase.Summary(ctx, id)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, map[string]any{"summary": summary})
}

// Submit handles POST /questionnaire/sessions/{id}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.sessionContext(r, "SubmitQuestionnaire")

	session, err := h.usecase.Submit(ctx, id, middleware.UserID(ctx))
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "questionnaire completed", zap.Int("suggestions", len(session.Suggestions)))
	response.Success(w, session)
}

// Refine handles POST /questionnaire/sessions/{id}/refine
func (h *Handler) Refine(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.sessionContext(r, "RefineQuestionnaire")

	session, err := h.usecase.Refine(ctx, id)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

func (h *Handler) sessionContext(r *http.Request, action string) (ctx context.Context, id string) {
	id = chi.URLParam(r, "id")
	ctx = logger.AddFields(r.Context(),
		zap.String("session_id", id),
		zap.String("action", action),
	)
	return ctx, id
}
