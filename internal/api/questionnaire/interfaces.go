package questionnaire

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
)

type QuestionnaireUsecase interface {
	Questions() []entity.Question
	StartSession(ctx context.Context) (*entity.FormSessionDTO, error)
	GetSession(ctx context.Context, id string) (*entity.FormSessionDTO, error)
	Answer(ctx context.Context, id string, selections []string) (*entity.FormSessionDTO, error)
	Next(ctx context.Context, id string) (*entity.FormSessionDTO, error)
	Back(ctx context.Context, id string) (*entity.FormSessionDTO, error)
	Summary(ctx context.Context, id string) ([]entity.SummaryEntry, error)
	Submit(ctx context.Context, id, userID string) (*entity.FormSessionDTO, error)
	Refine(ctx context.Context, id string) (*entity.FormSessionDTO, error)
}
