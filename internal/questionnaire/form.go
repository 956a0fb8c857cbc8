package questionnaire

import (
	"fmt"
	"time"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/validator"
	"github.com/google/uuid"
)

// Form is the state of one user walking through the questionnaire.
// It is plain data so front-ends can persist it as JSON.
type Form struct {
	ID            string               `json:"id"`
	Step          int                  `json:"step"`
	Phase         entity.FormPhase     `json:"phase"`
	Answers       entity.Preferences   `json:"answers"`
	Suggestions   []entity.Destination `json:"suggestions,omitempty"`
	HistoryItemID *string              `json:"history_item_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func NewForm() *Form {
	now := time.Now().UTC()
	return &Form{
		ID:        uuid.NewString(),
		Phase:     entity.FormPhaseAnswering,
		Answers:   entity.Preferences{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the form
func (f *Form) Clone() *Form {
	out := *f
	out.Answers = f.Answers.Clone()
	if f.Suggestions != nil {
		out.Suggestions = append([]entity.Destination(nil), f.Suggestions...)
	}
	if f.HistoryItemID != nil {
		id := *f.HistoryItemID
		out.HistoryItemID = &id
	}
	return &out
}

func (f *Form) requirePhase(phases ...entity.FormPhase) error {
	for _, p := range phases {
		if f.Phase == p {
			return nil
		}
	}
	if f.Phase == entity.FormPhaseSubmitting {
		return entity.ErrSubmitInProgress
	}
	return fmt.Errorf("%w: %s", entity.ErrInvalidFormPhase, f.Phase)
}

func (f *Form) touch() {
	f.UpdatedAt = time.Now().UTC()
}

func (f *Form) setAnswer(key string, selections []string) {
	if f.Answers == nil {
		f.Answers = entity.Preferences{}
	}
	f.Answers[key] = selections
}

// CurrentQuestion returns the question at the current step
func (f *Form) CurrentQuestion(q *Questionnaire) (*entity.Question, error) {
	return q.At(f.Step)
}

// Selections returns the stored selections of the current question
func (f *Form) Selections(q *Questionnaire) []string {
	question, err := q.At(f.Step)
	if err != nil {
		return nil
	}
	return append([]string(nil), f.Answers[question.Key]...)
}

// Answer replaces the selections of the current question
func (f *Form) Answer(q *Questionnaire, selections []string) error {
	if err := f.requirePhase(entity.FormPhaseAnswering); err != nil {
		return err
	}
	question, err := q.At(f.Step)
	if err != nil {
		return err
	}
	f.setAnswer(question.Key, validator.NormalizeSelections(selections))
	f.touch()
	return nil
}

// Toggle flips one option of the current question. Single-select questions keep only the toggled option.
func (f *Form) Toggle(q *Questionnaire, option string) error {
	if err := f.requirePhase(entity.FormPhaseAnswering); err != nil {
		return err
	}
	question, err := q.At(f.Step)
	if err != nil {
		return err
	}
	if !question.HasOption(option) {
		return validator.FieldErrors{question.Key: validator.MsgUnknownOption}
	}

	current := f.Answers[question.Key]
	selected := false
	next := make([]string, 0, len(current)+1)
	for _, s := range current {
		if s == option {
			selected = true
			continue
		}
		next = append(next, s)
	}

	switch {
	case selected:
	case question.SelectType == entity.SelectTypeSingle:
		next = []string{option}
	default:
		next = append(next, option)
	}

	f.setAnswer(question.Key, next)
	f.touch()
	return nil
}

// Next validates the current question and advances, or moves to the summary after the last question.
// On validation failure the form is left unchanged.
func (f *Form) Next(q *Questionnaire) error {
	if err := f.requirePhase(entity.FormPhaseAnswering); err != nil {
		return err
	}
	question, err := q.At(f.Step)
	if err != nil {
		return err
	}
	if err := validator.ValidateAnswer(question, f.Answers[question.Key]); err != nil {
		return err
	}

	if f.Step < q.Len()-1 {
		f.Step++
	} else {
		f.Phase = entity.FormPhaseSummary
	}
	f.touch()
	return nil
}

// Back leaves the summary, or steps back one question (never below the first)
func (f *Form) Back() error {
	if err := f.requirePhase(entity.FormPhaseAnswering, entity.FormPhaseSummary); err != nil {
		return err
	}
	if f.Phase == entity.FormPhaseSummary {
		f.Phase = entity.FormPhaseAnswering
	} else if f.Step > 0 {
		f.Step--
	}
	f.touch()
	return nil
}

// BeginSubmit validates all answers and marks the form as waiting for suggestions
func (f *Form) BeginSubmit(q *Questionnaire) error {
	if err := f.requirePhase(entity.FormPhaseSummary); err != nil {
		return err
	}
	if err := q.Validate(f.Answers); err != nil {
		return err
	}
	f.Phase = entity.FormPhaseSubmitting
	f.touch()
	return nil
}

func (f *Form) CompleteSubmit(destinations []entity.Destination, historyItemID *string) error {
	if f.Phase != entity.FormPhaseSubmitting {
		return fmt.Errorf("%w: %s", entity.ErrInvalidFormPhase, f.Phase)
	}
	f.Phase = entity.FormPhaseCompleted
	f.Suggestions = append([]entity.Destination(nil), destinations...)
	f.HistoryItemID = historyItemID
	f.touch()
	return nil
}

// FailSubmit returns a submitting form to the summary so the user can retry
func (f *Form) FailSubmit() error {
	if f.Phase != entity.FormPhaseSubmitting {
		return fmt.Errorf("%w: %s", entity.ErrInvalidFormPhase, f.Phase)
	}
	f.Phase = entity.FormPhaseSummary
	f.touch()
	return nil
}

// Refine returns to the first question keeping the answers
func (f *Form) Refine() error {
	if err := f.requirePhase(entity.FormPhaseCompleted, entity.FormPhaseSummary); err != nil {
		return err
	}
	f.Phase = entity.FormPhaseAnswering
	f.Step = 0
	f.Suggestions = nil
	f.HistoryItemID = nil
	f.touch()
	return nil
}

// Progress is the completion percentage shown to the user
func (f *Form) Progress(q *Questionnaire) float64 {
	if f.Phase != entity.FormPhaseAnswering {
		return 100
	}
	return float64(f.Step+1) / float64(q.Len()) * 100
}

// DTO renders the form for API clients
func (f *Form) DTO(q *Questionnaire) *entity.FormSessionDTO {
	dto := &entity.FormSessionDTO{
		ID:         f.ID,
		Phase:      f.Phase,
		Step:       f.Step,
		TotalSteps: q.Len(),
		Progress:   f.Progress(q),
		UpdatedAt:  f.UpdatedAt,
	}

	switch f.Phase {
	case entity.FormPhaseAnswering:
		if question, err := q.At(f.Step); err == nil {
			dto.Question = question
			dto.Selections = f.Selections(q)
		}
	case entity.FormPhaseSummary, entity.FormPhaseSubmitting:
		dto.Summary = q.Summary(f.Answers)
	case entity.FormPhaseCompleted:
		dto.Summary = q.Summary(f.Answers)
		dto.Suggestions = f.Suggestions
	}
	return dto
}
