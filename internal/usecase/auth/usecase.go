package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase signs users up and in with e-mail and password
type AuthUsecase struct {
	users      UserRepository
	tokens     *TokenManager
	bcryptCost int
}

func NewUsecase(users UserRepository, tokens *TokenManager, bcryptCost int) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func (uc *AuthUsecase) SignUp(ctx context.Context, req *entity.SignUpRequest) (*entity.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)

	user, err := uc.users.Create(ctx, entity.User{
		ID:           uuid.New().String(),
		DisplayName:  strings.TrimSpace(req.Name),
		Email:        &email,
		PasswordHash: &hashStr,
	})
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "user signed up", zap.String("user_id", user.ID))

	return uc.respond(user)
}

func (uc *AuthUsecase) SignIn(ctx context.Context, req *entity.SignInRequest) (*entity.AuthResponse, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		return nil, entity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	if err := uc.users.TouchLogin(ctx, user.ID); err != nil {
		ctxzap.Warn(ctx, "failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	ctxzap.Info(ctx, "user signed in", zap.String("user_id", user.ID))

	return uc.respond(user)
}

func (uc *AuthUsecase) Me(ctx context.Context, userID string) (*entity.UserDTO, error) {
	if userID == "" {
		return nil, entity.ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserDTO(user), nil
}

// Authenticate resolves a bearer token to a user ID
func (uc *AuthUsecase) Authenticate(_ context.Context, token string) (string, error) {
	return uc.tokens.Parse(token)
}

// TelegramUser returns the account linked to a Telegram user, creating it on first contact
func (uc *AuthUsecase) TelegramUser(ctx context.Context, telegramID int64, displayName string) (*entity.User, error) {
	if displayName = strings.TrimSpace(displayName); displayName == "" {
		displayName = fmt.Sprintf("telegram:%d", telegramID)
	}
	return uc.users.UpsertTelegram(ctx, telegramID, displayName)
}

func (uc *AuthUsecase) respond(user *entity.User) (*entity.AuthResponse, error) {
	token, expiresAt, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      ToUserDTO(user),
	}, nil
}

func ToUserDTO(user *entity.User) *entity.UserDTO {
	return &entity.UserDTO{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
