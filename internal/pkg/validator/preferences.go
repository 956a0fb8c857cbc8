package validator

import (
	"fmt"
	"strings"

	"github.com/futig/wanderlust-backend/internal/entity"
)

const (
	MsgSelectionRequired = "Please make at least one selection."
	MsgSingleSelection   = "Please choose only one option."
	MsgUnknownOption     = "Please choose from the listed options."
	MsgUnknownQuestion   = "Unknown question."
)

// PreferencesValidator applies the per-question answer rules of a questionnaire
type PreferencesValidator struct {
	questions []entity.Question
	byKey     map[string]*entity.Question
}

func NewPreferencesValidator(questions []entity.Question) *PreferencesValidator {
	byKey := make(map[string]*entity.Question, len(questions))
	for i := range questions {
		byKey[questions[i].Key] = &questions[i]
	}
	return &PreferencesValidator{questions: questions, byKey: byKey}
}

// NormalizeSelections trims selections, drops empty ones and removes duplicates keeping order
func NormalizeSelections(selections []string) []string {
	out := make([]string, 0, len(selections))
	seen := make(map[string]struct{}, len(selections))
	for _, s := range selections {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ValidateAnswer checks the selections of a single question
func ValidateAnswer(q *entity.Question, selections []string) error {
	selections = NormalizeSelections(selections)
	if len(selections) == 0 {
		return FieldErrors{q.Key: MsgSelectionRequired}
	}
	if q.SelectType == entity.SelectTypeSingle && len(selections) > 1 {
		return FieldErrors{q.Key: MsgSingleSelection}
	}
	for _, s := range selections {
		if !q.HasOption(s) {
			return FieldErrors{q.Key: fmt.Sprintf("%s (%q)", MsgUnknownOption, s)}
		}
	}
	return nil
}

// ValidatePreferences checks that every question is answered and no unknown keys are present
func (v *PreferencesValidator) ValidatePreferences(prefs entity.Preferences) error {
	fe := FieldErrors{}

	for key := range prefs {
		if _, ok := v.byKey[key]; !ok {
			fe[key] = MsgUnknownQuestion
		}
	}

	for i := range v.questions {
		q := &v.questions[i]
		if err := ValidateAnswer(q, prefs[q.Key]); err != nil {
			if qfe, ok := AsFieldErrors(err); ok {
				for k, msg := range qfe {
					fe[k] = msg
				}
			}
		}
	}

	if len(fe) > 0 {
		return fe
	}
	return nil
}

// Normalize returns a normalized copy holding only known keys
func (v *PreferencesValidator) Normalize(prefs entity.Preferences) entity.Preferences {
	out := make(entity.Preferences, len(v.questions))
	for _, q := range v.questions {
		if sel, ok := prefs[q.Key]; ok {
			out[q.Key] = NormalizeSelections(sel)
		}
	}
	return out
}
