package state

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/futig/wanderlust-backend/internal/questionnaire"
)

var ErrSessionNotFound = errors.New("telegram session not found")

// TelegramSession represents telegram chat -> user mapping with UI state
type TelegramSession struct {
	ChatID    int64           `json:"chat_id"`
	UserID    string          `json:"user_id,omitempty"`
	StateData json.RawMessage `json:"state_data,omitempty"` // Telegram-specific UI state
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StateData contains telegram-specific UI state (stored in StateData JSONB)
type StateData struct {
	// Version for compatibility tracking (current version: 1)
	Version int `json:"version,omitempty"`

	// Questionnaire progress of the chat
	Form *questionnaire.Form `json:"form,omitempty"`

	// Last message ID (for editing)
	LastMessageID int `json:"last_message_id,omitempty"`

	// Action waiting for confirmation ("reset")
	PendingConfirmation string `json:"pending_confirmation,omitempty"`

	// Processing state (for idempotency)
	IsProcessing      bool      `json:"is_processing,omitempty"`
	ProcessingStarted time.Time `json:"processing_started,omitempty"`
}

const (
	// StateDataCurrentVersion is the current version of StateData
	StateDataCurrentVersion = 1
)

// Storage defines the interface for telegram session persistence
type Storage interface {
	// Get retrieves telegram session by chat ID
	Get(ctx context.Context, chatID int64) (*TelegramSession, error)

	// Set saves telegram session
	Set(ctx context.Context, session *TelegramSession) error

	// Delete removes telegram session
	Delete(ctx context.Context, chatID int64) error
}
