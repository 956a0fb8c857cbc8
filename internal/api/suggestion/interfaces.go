package suggestion

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
)

type SuggestionUsecase interface {
	Suggest(ctx context.Context, userID string, prefs entity.Preferences) (*entity.SuggestionsResponse, error)
	Details(ctx context.Context, req *entity.DestinationDetailsRequest) (*entity.DestinationDetails, error)
}
