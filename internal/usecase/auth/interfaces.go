package auth

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpsertTelegram(ctx context.Context, telegramID int64, displayName string) (*entity.User, error)
	TouchLogin(ctx context.Context, id string) error
}
