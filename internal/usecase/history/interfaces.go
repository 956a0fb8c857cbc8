package history

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, item entity.HistoryItem) (*entity.HistoryItem, error)
	List(ctx context.Context, userID string, skip, limit int) ([]*entity.HistoryItem, error)
	Get(ctx context.Context, userID, id string) (*entity.HistoryItem, error)
	Delete(ctx context.Context, userID, id string) error
}
