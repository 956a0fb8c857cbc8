package questionnaire

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
)

type SuggestionService interface {
	Suggest(ctx context.Context, userID string, prefs entity.Preferences) (*entity.SuggestionsResponse, error)
}
