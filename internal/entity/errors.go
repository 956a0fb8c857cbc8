package entity

import "errors"

// Domain errors
var (
	// Questionnaire errors
	ErrQuestionnaireSessionNotFound = errors.New("questionnaire session not found")
	ErrQuestionNotFound             = errors.New("question not found")
	ErrInvalidFormPhase             = errors.New("invalid questionnaire phase")
	ErrSubmitInProgress             = errors.New("suggestions are already being fetched")

	// Validation errors
	ErrValidation       = errors.New("validation failed")
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Model errors
	ErrModelOutput      = errors.New("model returned no usable output")
	ErrModelUnavailable = errors.New("model provider is unavailable")
	ErrSuggestionFailed = errors.New("Failed to fetch suggestions.")
	ErrDetailsFailed    = errors.New("Failed to fetch destination details.")
	ErrNoSuggestions    = errors.New("We couldn't find any destinations matching your preferences. Please try again.")

	// History errors
	ErrHistoryNotFound = errors.New("history item not found")
	ErrHistorySave     = errors.New("Could not save history.")
	ErrHistoryFetch    = errors.New("Could not fetch history.")

	// Auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
