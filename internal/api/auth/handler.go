package auth

import (
	"net/http"

	"github.com/futig/wanderlust-backend/internal/api/middleware"
	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/logger"
	"github.com/futig/wanderlust-backend/internal/pkg/request"
	"github.com/futig/wanderlust-backend/internal/pkg/response"
)

type Handler struct {
	usecase AuthUsecase
}

func NewHandler(usecase AuthUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// SignUp handles POST /auth/sign-up
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SignUp")

	var req entity.SignUpRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	resp, err := h.usecase.SignUp(ctx, &req)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Created(w, resp)
}

// SignIn handles POST /auth/sign-in
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SignIn")

	var req entity.SignInRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	resp, err := h.usecase.SignIn(ctx, &req)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Me")

	user, err := h.usecase.Me(ctx, middleware.UserID(ctx))
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.Success(w, user)
}
