package entity

import (
	"fmt"
	"time"
)

type SelectType string

const (
	SelectTypeSingle   SelectType = "single"
	SelectTypeMultiple SelectType = "multiple"
)

func (st SelectType) Validate() error {
	switch st {
	case SelectTypeSingle, SelectTypeMultiple:
		return nil
	default:
		return fmt.Errorf("unknown select type: %s", st)
	}
}

// Question is a single step of the preference questionnaire
type Question struct {
	ID         int        `json:"id"`
	Key        string     `json:"key"`
	AIKey      string     `json:"ai_key"`
	Question   string     `json:"question"`
	Options    []string   `json:"options"`
	SelectType SelectType `json:"select_type"`
}

// HasOption reports whether option is one of the question choices
func (q *Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Preferences maps questionnaire keys to the selected options
type Preferences map[string][]string

// Clone returns a deep copy of the preferences
func (p Preferences) Clone() Preferences {
	out := make(Preferences, len(p))
	for k, v := range p {
		out[k] = append([]string(nil), v...)
	}
	return out
}

type FormPhase string

// Form phase represents the position of the user inside the questionnaire flow
const (
	FormPhaseAnswering  FormPhase = "ANSWERING"  // Answering question at current step
	FormPhaseSummary    FormPhase = "SUMMARY"    // Reviewing all answers before submit
	FormPhaseSubmitting FormPhase = "SUBMITTING" // Waiting for the model to suggest destinations
	FormPhaseCompleted  FormPhase = "COMPLETED"  // Suggestions received
)

// Destination is a single suggested travel destination
type Destination struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// DestinationDetails is a destination with its one-sentence brief
type DestinationDetails struct {
	DestinationName string `json:"destinationName"`
	ImageURL        string `json:"imageUrl"`
	Summary         string `json:"summary"`
	SearchURL       string `json:"searchUrl"`
}

// HistoryItem pairs submitted preferences with the suggestions returned for them
type HistoryItem struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Preferences Preferences   `json:"preferences"`
	Suggestions []Destination `json:"suggestions"`
	CreatedAt   time.Time     `json:"created_at"`
}

type User struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"display_name"`
	Email        *string    `json:"email,omitempty"`
	PasswordHash *string    `json:"-"`
	TelegramID   *int64     `json:"telegram_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}
