package handlers

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
)

// SuggestionUsecase asks the model for destinations and their briefs
type SuggestionUsecase interface {
	Suggest(ctx context.Context, userID string, prefs entity.Preferences) (*entity.SuggestionsResponse, error)
	Details(ctx context.Context, req *entity.DestinationDetailsRequest) (*entity.DestinationDetails, error)
}

// HistoryUsecase lists the saved trips of a user
type HistoryUsecase interface {
	List(ctx context.Context, userID string, skip, limit int) ([]*entity.HistorySummary, error)
}

// UserUsecase maps a Telegram account to a user
type UserUsecase interface {
	TelegramUser(ctx context.Context, telegramID int64, displayName string) (*entity.User, error)
}
