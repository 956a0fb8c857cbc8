package state

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	mu       sync.Mutex
	sessions map[int64]TelegramSession
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{sessions: make(map[int64]TelegramSession)}
}

func (s *memoryStorage) Get(_ context.Context, chatID int64) (*TelegramSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *memoryStorage) Set(_ context.Context, session *TelegramSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ChatID] = *session
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}

func TestManager_StateDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemoryStorage())

	data, err := m.GetStateData(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, data.Form, "unknown chat gets empty state")

	form := questionnaire.NewForm()
	form.Step = 3
	require.NoError(t, m.UpdateStateData(ctx, 42, &StateData{Form: form, LastMessageID: 9}))

	data, err = m.GetStateData(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, data.Form)
	assert.Equal(t, form.ID, data.Form.ID)
	assert.Equal(t, 3, data.Form.Step)
	assert.Equal(t, 9, data.LastMessageID)
	assert.Equal(t, StateDataCurrentVersion, data.Version)
}

func TestManager_LinkUserKeepsState(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemoryStorage())

	session, err := m.LinkUser(ctx, 42, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.JSONEq(t, "{}", string(session.StateData))

	require.NoError(t, m.UpdateStateData(ctx, 42, &StateData{LastMessageID: 5}))

	session, err = m.GetSession(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID, "state updates keep the user link")
	assert.False(t, session.UpdatedAt.IsZero())

	_, err = m.LinkUser(ctx, 42, "user-2")
	require.NoError(t, err)
	data, err := m.GetStateData(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 5, data.LastMessageID)
}

func TestManager_DeleteSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemoryStorage())
	_, err := m.LinkUser(ctx, 42, "user-1")
	require.NoError(t, err)

	require.NoError(t, m.DeleteSession(ctx, 42))
	_, err = m.GetSession(ctx, 42)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDecodeStateData(t *testing.T) {
	data, err := decodeStateData(nil)
	require.NoError(t, err)
	assert.Equal(t, StateDataCurrentVersion, data.Version)

	data, err = decodeStateData(json.RawMessage(`{"last_message_id": 3}`))
	require.NoError(t, err)
	assert.Equal(t, StateDataCurrentVersion, data.Version, "versionless data is upgraded")
	assert.Equal(t, 3, data.LastMessageID)

	_, err = decodeStateData(json.RawMessage(`{`))
	assert.Error(t, err)
}
