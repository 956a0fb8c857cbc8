package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Manager manages telegram sessions
type Manager struct {
	storage Storage
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// GetSession retrieves telegram session from storage
func (m *Manager) GetSession(ctx context.Context, chatID int64) (*TelegramSession, error) {
	session, err := m.storage.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get telegram session from storage: %w", err)
	}

	return session, nil
}

// SetSession saves telegram session to storage
func (m *Manager) SetSession(ctx context.Context, session *TelegramSession) error {
	session.UpdatedAt = time.Now()

	if err := m.storage.Set(ctx, session); err != nil {
		return fmt.Errorf("save telegram session to storage: %w", err)
	}

	return nil
}

// DeleteSession removes telegram session from storage
func (m *Manager) DeleteSession(ctx context.Context, chatID int64) error {
	if err := m.storage.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete telegram session from storage: %w", err)
	}

	return nil
}

// GetStateData extracts typed state data. A chat without a session gets empty state.
func (m *Manager) GetStateData(ctx context.Context, chatID int64) (*StateData, error) {
	session, err := m.GetSession(ctx, chatID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return &StateData{Version: StateDataCurrentVersion}, nil
		}
		return nil, err
	}

	return decodeStateData(session.StateData)
}

// UpdateStateData updates state data, creating the session when needed
func (m *Manager) UpdateStateData(ctx context.Context, chatID int64, data *StateData) error {
	session, err := m.GetSession(ctx, chatID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			return err
		}
		session = &TelegramSession{ChatID: chatID, CreatedAt: time.Now()}
	}

	data.Version = StateDataCurrentVersion

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal state data: %w", err)
	}

	session.StateData = jsonData
	return m.SetSession(ctx, session)
}

// LinkUser creates the chat session or attaches userID to the existing one
func (m *Manager) LinkUser(ctx context.Context, chatID int64, userID string) (*TelegramSession, error) {
	session, err := m.GetSession(ctx, chatID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		session = &TelegramSession{
			ChatID:    chatID,
			CreatedAt: time.Now(),
			StateData: json.RawMessage("{}"),
		}
	}

	session.UserID = userID
	if err := m.SetSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func decodeStateData(raw json.RawMessage) (*StateData, error) {
	if len(raw) == 0 {
		return &StateData{Version: StateDataCurrentVersion}, nil
	}

	var data StateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal state data: %w", err)
	}

	// Auto-upgrade from old versions without version field
	if data.Version == 0 {
		data.Version = StateDataCurrentVersion
	}

	return &data, nil
}
