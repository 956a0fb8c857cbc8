package entity

import "time"

type AnswerRequest struct {
	Selections []string `json:"selections" validate:"max=50,dive,max=200"`
}

type SuggestRequest struct {
	Preferences Preferences `json:"preferences" validate:"required"`
}

type DestinationDetailsRequest struct {
	DestinationName string `json:"destination_name" validate:"required,max=200"`
	ImageURL        string `json:"image_url" validate:"omitempty,max=2048"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type QuestionnaireResponse struct {
	Questions []Question `json:"questions"`
}

type SummaryEntry struct {
	Key      string `json:"key"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FormSessionDTO struct {
	ID          string         `json:"session_id"`
	Phase       FormPhase      `json:"phase"`
	Step        int            `json:"step"`
	TotalSteps  int            `json:"total_steps"`
	Progress    float64        `json:"progress"`
	Question    *Question      `json:"question,omitempty"`
	Selections  []string       `json:"selections,omitempty"`
	Summary     []SummaryEntry `json:"summary,omitempty"`
	Suggestions []Destination  `json:"suggestions,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type SuggestionsResponse struct {
	Destinations  []Destination `json:"destinations"`
	HistoryItemID *string       `json:"history_item_id,omitempty"`
}
