package auth

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
)

type AuthUsecase interface {
	SignUp(ctx context.Context, req *entity.SignUpRequest) (*entity.AuthResponse, error)
	SignIn(ctx context.Context, req *entity.SignInRequest) (*entity.AuthResponse, error)
	Me(ctx context.Context, userID string) (*entity.UserDTO, error)
}
