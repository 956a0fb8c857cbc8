package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/futig/wanderlust-backend/internal/repository/sqlc"
	"github.com/futig/wanderlust-backend/internal/telegram/state"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ state.Storage = &TelegramSessionRepository{}

// TelegramSessionRepository handles telegram chat state persistence
type TelegramSessionRepository struct {
	db      *pgxpool.Pool
	queries *sqlc.Queries
}

// NewTelegramStateRepository creates a new telegram session repository
func NewTelegramStateRepository(db *pgxpool.Pool) *TelegramSessionRepository {
	return &TelegramSessionRepository{
		db:      db,
		queries: sqlc.New(db),
	}
}

// Get retrieves telegram session by chat ID
func (r *TelegramSessionRepository) Get(ctx context.Context, chatID int64) (*state.TelegramSession, error) {
	dbSession, err := r.queries.GetTelegramSession(ctx, chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", state.ErrSessionNotFound, chatID)
		}
		return nil, fmt.Errorf("query telegram session: %w", err)
	}

	return toStateTelegramSession(&dbSession), nil
}

// Set saves telegram session
func (r *TelegramSessionRepository) Set(ctx context.Context, telegramSession *state.TelegramSession) error {
	params, err := toDBUpsertParams(telegramSession)
	if err != nil {
		return err
	}

	if err := r.queries.UpsertTelegramSession(ctx, params); err != nil {
		return fmt.Errorf("upsert telegram session: %w", err)
	}

	return nil
}

// Delete removes telegram session
func (r *TelegramSessionRepository) Delete(ctx context.Context, chatID int64) error {
	if err := r.queries.DeleteTelegramSession(ctx, chatID); err != nil {
		return fmt.Errorf("delete telegram session: %w", err)
	}

	return nil
}

// toStateTelegramSession converts from sqlc TelegramSession to state.TelegramSession
func toStateTelegramSession(dbSession *sqlc.TelegramSession) *state.TelegramSession {
	telegramSession := &state.TelegramSession{
		ChatID:    dbSession.ChatID,
		UserID:    fromPgUUID(dbSession.UserID),
		CreatedAt: dbSession.CreatedAt.Time,
		UpdatedAt: dbSession.UpdatedAt.Time,
	}

	if len(dbSession.StateData) > 0 {
		telegramSession.StateData = json.RawMessage(dbSession.StateData)
	} else {
		telegramSession.StateData = json.RawMessage("{}")
	}

	return telegramSession
}

// toDBUpsertParams converts from state.TelegramSession to sqlc UpsertTelegramSessionParams
func toDBUpsertParams(telegramSession *state.TelegramSession) (sqlc.UpsertTelegramSessionParams, error) {
	params := sqlc.UpsertTelegramSessionParams{
		ChatID:    telegramSession.ChatID,
		CreatedAt: pgtype.Timestamptz{Time: telegramSession.CreatedAt, Valid: true},
		UpdatedAt: pgtype.Timestamptz{Time: telegramSession.UpdatedAt, Valid: true},
	}

	if telegramSession.UserID != "" {
		userID, err := toPgUUID(telegramSession.UserID)
		if err != nil {
			return params, fmt.Errorf("parse user ID: %w", err)
		}
		params.UserID = userID
	}

	stateData := []byte(telegramSession.StateData)
	if len(stateData) == 0 {
		stateData = []byte("{}")
	}
	params.StateData = stateData

	return params, nil
}
