package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/repository/sqlc"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpsertTelegram(ctx context.Context, telegramID int64, displayName string) (*entity.User, error)
	TouchLogin(ctx context.Context, id string) error
}

var _ UserRepository = &UserPostgres{}

// UserPostgres implements UserRepository using PostgreSQL with sqlc
type UserPostgres struct {
	db      *pgxpool.Pool
	queries *sqlc.Queries
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{
		db:      db,
		queries: sqlc.New(db),
	}
}

func (r *UserPostgres) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	userID, err := toPgUUID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	result, err := r.queries.CreateUser(ctx, sqlc.CreateUserParams{
		ID:           userID,
		DisplayName:  user.DisplayName,
		Email:        toPgText(user.Email),
		PasswordHash: toPgText(user.PasswordHash),
		TelegramID:   toPgInt8(user.TelegramID),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, entity.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return toEntityUser(&result), nil
}

func (r *UserPostgres) GetByID(ctx context.Context, id string) (*entity.User, error) {
	userID, err := toPgUUID(id)
	if err != nil {
		return nil, entity.ErrUserNotFound
	}

	result, err := r.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return toEntityUser(&result), nil
}

func (r *UserPostgres) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	result, err := r.queries.GetUserByEmail(ctx, pgtype.Text{String: email, Valid: true})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return toEntityUser(&result), nil
}

// UpsertTelegram returns the account linked to a Telegram user, creating it on first contact
func (r *UserPostgres) UpsertTelegram(ctx context.Context, telegramID int64, displayName string) (*entity.User, error) {
	result, err := r.queries.UpsertTelegramUser(ctx, sqlc.UpsertTelegramUserParams{
		ID:          pgtype.UUID{Bytes: uuid.New(), Valid: true},
		DisplayName: displayName,
		TelegramID:  pgtype.Int8{Int64: telegramID, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("upsert telegram user: %w", err)
	}

	return toEntityUser(&result), nil
}

func (r *UserPostgres) TouchLogin(ctx context.Context, id string) error {
	userID, err := toPgUUID(id)
	if err != nil {
		return fmt.Errorf("parse user ID: %w", err)
	}

	if err := r.queries.TouchUserLogin(ctx, userID); err != nil {
		return fmt.Errorf("touch user login: %w", err)
	}

	return nil
}
