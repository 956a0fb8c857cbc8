package repository

import (
	"encoding/json"
	"fmt"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/repository/sqlc"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func toPgUUID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("%w: %s", entity.ErrInvalidParameter, id)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func toPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func toPgInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func fromPgUUID(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

func toEntityUser(dbUser *sqlc.User) *entity.User {
	user := &entity.User{
		ID:          fromPgUUID(dbUser.ID),
		DisplayName: dbUser.DisplayName,
		CreatedAt:   dbUser.CreatedAt.Time,
	}

	if dbUser.Email.Valid {
		email := dbUser.Email.String
		user.Email = &email
	}
	if dbUser.PasswordHash.Valid {
		hash := dbUser.PasswordHash.String
		user.PasswordHash = &hash
	}
	if dbUser.TelegramID.Valid {
		tgID := dbUser.TelegramID.Int64
		user.TelegramID = &tgID
	}
	if dbUser.LastLoginAt.Valid {
		lastLogin := dbUser.LastLoginAt.Time
		user.LastLoginAt = &lastLogin
	}

	return user
}

func toEntityHistoryItem(dbItem *sqlc.HistoryItem) (*entity.HistoryItem, error) {
	item := &entity.HistoryItem{
		ID:        fromPgUUID(dbItem.ID),
		UserID:    fromPgUUID(dbItem.UserID),
		CreatedAt: dbItem.CreatedAt.Time,
	}

	if err := json.Unmarshal(dbItem.Preferences, &item.Preferences); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}
	if err := json.Unmarshal(dbItem.Suggestions, &item.Suggestions); err != nil {
		return nil, fmt.Errorf("unmarshal suggestions: %w", err)
	}

	return item, nil
}
