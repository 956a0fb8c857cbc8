package suggestion

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
)

type LLMConnector interface {
	SuggestDestinations(ctx context.Context, req *entity.SuggestDestinationsRequest) (*entity.SuggestDestinationsResponse, error)
	DescribeDestination(ctx context.Context, req *entity.DestinationBriefRequest) (*entity.DestinationBriefResponse, error)
}

type HistorySaver interface {
	Save(ctx context.Context, userID string, prefs entity.Preferences, suggestions []entity.Destination) (*entity.HistoryItem, error)
}
