package history

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/formatter"
)

type HistoryUsecase interface {
	Save(ctx context.Context, userID string, prefs entity.Preferences, suggestions []entity.Destination) (*entity.HistoryItem, error)
	List(ctx context.Context, userID string, skip, limit int) ([]*entity.HistorySummary, error)
	Get(ctx context.Context, userID, id string) (*entity.HistoryItem, error)
	Delete(ctx context.Context, userID, id string) error
	Export(ctx context.Context, userID, id string, format entity.ResultFormat) ([]byte, formatter.Formatter, error)
}
