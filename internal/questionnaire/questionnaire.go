package questionnaire

import (
	"fmt"
	"strings"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/validator"
)

// AnswerSeparator joins multiple selections of one question
const AnswerSeparator = ", "

// Questionnaire is an ordered, immutable set of preference questions
type Questionnaire struct {
	questions []entity.Question
	byKey     map[string]int
	validator *validator.PreferencesValidator
}

func New(questions []entity.Question) (*Questionnaire, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("questionnaire has no questions")
	}

	qs := make([]entity.Question, len(questions))
	copy(qs, questions)

	byKey := make(map[string]int, len(qs))
	for i, q := range qs {
		if _, ok := byKey[q.Key]; ok {
			return nil, fmt.Errorf("duplicate question key %q", q.Key)
		}
		byKey[q.Key] = i
	}

	return &Questionnaire{
		questions: qs,
		byKey:     byKey,
		validator: validator.NewPreferencesValidator(qs),
	}, nil
}

func (q *Questionnaire) Questions() []entity.Question {
	out := make([]entity.Question, len(q.questions))
	copy(out, q.questions)
	return out
}

func (q *Questionnaire) Len() int {
	return len(q.questions)
}

// At returns the question at 0-based step
func (q *Questionnaire) At(step int) (*entity.Question, error) {
	if step < 0 || step >= len(q.questions) {
		return nil, fmt.Errorf("%w: step %d", entity.ErrQuestionNotFound, step)
	}
	question := q.questions[step]
	return &question, nil
}

func (q *Questionnaire) ByKey(key string) (*entity.Question, error) {
	i, ok := q.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrQuestionNotFound, key)
	}
	question := q.questions[i]
	return &question, nil
}

// Validate checks a complete set of answers
func (q *Questionnaire) Validate(prefs entity.Preferences) error {
	return q.validator.ValidatePreferences(prefs)
}

// Normalize trims selections and drops unknown keys
func (q *Questionnaire) Normalize(prefs entity.Preferences) entity.Preferences {
	return q.validator.Normalize(prefs)
}

// Summary pairs every question with its joined selections
func (q *Questionnaire) Summary(prefs entity.Preferences) []entity.SummaryEntry {
	entries := make([]entity.SummaryEntry, 0, len(q.questions))
	for _, question := range q.questions {
		entries = append(entries, entity.SummaryEntry{
			Key:      question.Key,
			Question: question.Question,
			Answer:   strings.Join(prefs[question.Key], AnswerSeparator),
		})
	}
	return entries
}

// SuggestRequest maps answers to the model prompt input by AI key
func (q *Questionnaire) SuggestRequest(prefs entity.Preferences) entity.SuggestDestinationsRequest {
	var req entity.SuggestDestinationsRequest
	for _, question := range q.questions {
		req.Set(question.AIKey, strings.Join(prefs[question.Key], AnswerSeparator))
	}
	return req
}
