package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/formatter"
	"github.com/futig/wanderlust-backend/internal/pkg/metrics"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	titleDateLayout = "January 2, 2006"
)

// HistoryUsecase stores and renders the trips suggested to signed-in users
type HistoryUsecase struct {
	repo          Repository
	questionnaire *questionnaire.Questionnaire
	formatters    *formatter.Factory
}

func NewUsecase(repo Repository, q *questionnaire.Questionnaire) *HistoryUsecase {
	return &HistoryUsecase{
		repo:          repo,
		questionnaire: q,
		formatters:    formatter.NewFactory(),
	}
}

// Save validates prefs against the questionnaire and persists the preference
// and suggestion pair with the server timestamp
func (uc *HistoryUsecase) Save(
	ctx context.Context,
	userID string,
	prefs entity.Preferences,
	suggestions []entity.Destination,
) (*entity.HistoryItem, error) {
	if userID == "" {
		return nil, entity.ErrUnauthorized
	}
	if err := uc.questionnaire.Validate(prefs); err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("%w: suggestions", entity.ErrMissingField)
	}

	item, err := uc.repo.Create(ctx, entity.HistoryItem{
		ID:          uuid.New().String(),
		UserID:      userID,
		Preferences: uc.questionnaire.Normalize(prefs),
		Suggestions: suggestions,
	})
	metrics.HistoryOperationsTotal.WithLabelValues("save", metrics.StatusLabel(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrHistorySave, err)
	}

	ctxzap.Info(ctx, "history item saved",
		zap.String("history_item_id", item.ID),
		zap.Int("suggestions", len(item.Suggestions)),
	)

	return item, nil
}

// List returns history summaries of the user, newest first
func (uc *HistoryUsecase) List(ctx context.Context, userID string, skip, limit int) ([]*entity.HistorySummary, error) {
	if userID == "" {
		return nil, entity.ErrUnauthorized
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	items, err := uc.repo.List(ctx, userID, skip, limit)
	metrics.HistoryOperationsTotal.WithLabelValues("list", metrics.StatusLabel(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrHistoryFetch, err)
	}

	summaries := make([]*entity.HistorySummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, ToSummary(item))
	}

	return summaries, nil
}

func (uc *HistoryUsecase) Get(ctx context.Context, userID, id string) (*entity.HistoryItem, error) {
	if userID == "" {
		return nil, entity.ErrUnauthorized
	}

	item, err := uc.repo.Get(ctx, userID, id)
	metrics.HistoryOperationsTotal.WithLabelValues("get", metrics.StatusLabel(err)).Inc()
	if err != nil {
		if errors.Is(err, entity.ErrHistoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", entity.ErrHistoryFetch, err)
	}

	return item, nil
}

func (uc *HistoryUsecase) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return entity.ErrUnauthorized
	}

	err := uc.repo.Delete(ctx, userID, id)
	metrics.HistoryOperationsTotal.WithLabelValues("delete", metrics.StatusLabel(err)).Inc()
	if err != nil {
		return fmt.Errorf("delete history item: %w", err)
	}

	ctxzap.Info(ctx, "history item deleted", zap.String("history_item_id", id))
	return nil
}

// Export renders a history item in the requested format
func (uc *HistoryUsecase) Export(
	ctx context.Context,
	userID, id string,
	format entity.ResultFormat,
) ([]byte, formatter.Formatter, error) {
	if !format.IsValid() {
		return nil, nil, fmt.Errorf("%w: format must be one of: markdown, docx, pdf", entity.ErrInvalidParameter)
	}

	item, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	fmtr, err := uc.formatters.Create(format)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", entity.ErrInvalidParameter, err)
	}

	out, err := fmtr.Format(uc.report(item))
	if err != nil {
		return nil, nil, fmt.Errorf("format history item: %w", err)
	}

	ctxzap.Info(ctx, "history item exported",
		zap.String("history_item_id", id),
		zap.String("format", string(format)),
		zap.Int("bytes", len(out)),
	)

	return out, fmtr, nil
}

func (uc *HistoryUsecase) report(item *entity.HistoryItem) *formatter.TripReport {
	return &formatter.TripReport{
		Title:        Title(item.CreatedAt),
		CreatedAt:    item.CreatedAt,
		Preferences:  uc.questionnaire.Summary(item.Preferences),
		Destinations: item.Suggestions,
	}
}

func Title(createdAt time.Time) string {
	return "Trip from " + createdAt.UTC().Format(titleDateLayout)
}

func ToSummary(item *entity.HistoryItem) *entity.HistorySummary {
	return &entity.HistorySummary{
		ID:               item.ID,
		Title:            Title(item.CreatedAt),
		Description:      fmt.Sprintf("You received %d destination suggestions.", len(item.Suggestions)),
		SuggestionsCount: len(item.Suggestions),
		CreatedAt:        item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
