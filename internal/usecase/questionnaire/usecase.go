package questionnaire

import (
	"context"
	"fmt"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/metrics"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const frontendHTTP = "http"

// QuestionnaireUsecase drives form sessions of the HTTP front-end
type QuestionnaireUsecase struct {
	questionnaire *questionnaire.Questionnaire
	store         questionnaire.Store
	suggestions   SuggestionService
}

func NewUsecase(
	q *questionnaire.Questionnaire,
	store questionnaire.Store,
	suggestions SuggestionService,
) *QuestionnaireUsecase {
	return &QuestionnaireUsecase{
		questionnaire: q,
		store:         store,
		suggestions:   suggestions,
	}
}

func (uc *QuestionnaireUsecase) Questions() []entity.Question {
	return uc.questionnaire.Questions()
}

func (uc *QuestionnaireUsecase) StartSession(ctx context.Context) (*entity.FormSessionDTO, error) {
	form, err := uc.store.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("create form session: %w", err)
	}
	metrics.QuestionnaireSessionsStarted.WithLabelValues(frontendHTTP).Inc()

	ctxzap.Info(ctx, "questionnaire session started", zap.String("session_id", form.ID))
	return form.DTO(uc.questionnaire), nil
}

func (uc *QuestionnaireUsecase) GetSession(ctx context.Context, id string) (*entity.FormSessionDTO, error) {
	form, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return form.DTO(uc.questionnaire), nil
}

// Answer replaces the selections of the current question
func (uc *QuestionnaireUsecase) Answer(ctx context.Context, id string, selections []string) (*entity.FormSessionDTO, error) {
	return uc.update(ctx, id, func(f *questionnaire.Form) error {
		return f.Answer(uc.questionnaire, selections)
	})
}

// Next validates the current question and advances, reaching the summary after the last one
func (uc *QuestionnaireUsecase) Next(ctx context.Context, id string) (*entity.FormSessionDTO, error) {
	return uc.update(ctx, id, func(f *questionnaire.Form) error {
		return f.Next(uc.questionnaire)
	})
}

func (uc *QuestionnaireUsecase) Back(ctx context.Context, id string) (*entity.FormSessionDTO, error) {
	return uc.update(ctx, id, func(f *questionnaire.Form) error {
		return f.Back()
	})
}

// Summary returns every question with its joined answer
func (uc *QuestionnaireUsecase) Summary(ctx context.Context, id string) ([]entity.SummaryEntry, error) {
	form, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.questionnaire.Summary(form.Answers), nil
}

// Submit fetches suggestions for the answers of a form in summary.
// A failed request returns the form to the summary so the user can retry.
func (uc *QuestionnaireUsecase) Submit(ctx context.Context, id, userID string) (*entity.FormSessionDTO, error) {
	form, err := uc.store.Update(ctx, id, func(f *questionnaire.Form) error {
		return f.BeginSubmit(uc.questionnaire)
	})
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "questionnaire submitted", zap.String("session_id", id))

	resp, err := uc.suggestions.Suggest(ctx, userID, form.Answers)
	if err != nil {
		if _, failErr := uc.store.Update(ctx, id, func(f *questionnaire.Form) error {
			return f.FailSubmit()
		}); failErr != nil {
			ctxzap.Warn(ctx, "failed to reset submitted form", zap.Error(failErr))
		}
		return nil, err
	}

	return uc.update(ctx, id, func(f *questionnaire.Form) error {
		return f.CompleteSubmit(resp.Destinations, resp.HistoryItemID)
	})
}

// Refine returns a completed form to the first question keeping the answers
func (uc *QuestionnaireUsecase) Refine(ctx context.Context, id string) (*entity.FormSessionDTO, error) {
	return uc.update(ctx, id, func(f *questionnaire.Form) error {
		return f.Refine()
	})
}

func (uc *QuestionnaireUsecase) update(
	ctx context.Context,
	id string,
	fn func(*questionnaire.Form) error,
) (*entity.FormSessionDTO, error) {
	form, err := uc.store.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	ctxzap.Debug(ctx, "questionnaire session updated",
		zap.String("session_id", id),
		zap.String("phase", string(form.Phase)),
		zap.Int("step", form.Step),
	)
	return form.DTO(uc.questionnaire), nil
}
