package handlers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/futig/wanderlust-backend/internal/telegram/keyboard"
	"github.com/futig/wanderlust-backend/internal/telegram/render"
	"github.com/futig/wanderlust-backend/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const chatID int64 = 100

type sentMessage struct {
	edit      bool
	messageID int
	text      string
	markup    *tgbotapi.InlineKeyboardMarkup
}

type fakeBot struct {
	mu     sync.Mutex
	nextID int
	sent   []sentMessage
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		b.nextID++
		sent := sentMessage{messageID: b.nextID, text: m.Text}
		if kb, ok := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); ok {
			sent.markup = &kb
		}
		b.sent = append(b.sent, sent)
		return tgbotapi.Message{MessageID: b.nextID}, nil
	case tgbotapi.EditMessageTextConfig:
		b.sent = append(b.sent, sentMessage{edit: true, messageID: m.MessageID, text: m.Text, markup: m.ReplyMarkup})
		return tgbotapi.Message{MessageID: m.MessageID}, nil
	default:
		return tgbotapi.Message{}, nil
	}
}

func (b *fakeBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) last() sentMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sent[len(b.sent)-1]
}

func (b *fakeBot) texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.sent))
	for _, s := range b.sent {
		out = append(out, s.text)
	}
	return out
}

type memoryStorage struct {
	mu       sync.Mutex
	sessions map[int64]state.TelegramSession
}

func (s *memoryStorage) Get(_ context.Context, id int64) (*state.TelegramSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, state.ErrSessionNotFound
	}
	return &session, nil
}

func (s *memoryStorage) Set(_ context.Context, session *state.TelegramSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ChatID] = *session
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type fakeSuggestions struct {
	userID  string
	prefs   entity.Preferences
	err     error
	details []string
}

func (f *fakeSuggestions) Suggest(_ context.Context, userID string, prefs entity.Preferences) (*entity.SuggestionsResponse, error) {
	f.userID = userID
	f.prefs = prefs
	if f.err != nil {
		return nil, f.err
	}
	id := "history-1"
	return &entity.SuggestionsResponse{
		Destinations: []entity.Destination{
			{Name: "Kyoto", Description: "Temples.", ImageURL: "https://picsum.photos/seed/kyoto/800/600"},
			{Name: "Lisbon", Description: "Hills."},
		},
		HistoryItemID: &id,
	}, nil
}

func (f *fakeSuggestions) Details(_ context.Context, req *entity.DestinationDetailsRequest) (*entity.DestinationDetails, error) {
	f.details = append(f.details, req.DestinationName)
	return &entity.DestinationDetails{
		DestinationName: req.DestinationName,
		ImageURL:        req.ImageURL,
		Summary:         req.DestinationName + " is lovely.",
		SearchURL:       "https://www.google.com/search?q=" + req.DestinationName,
	}, nil
}

type fakeUsers struct{}

func (fakeUsers) TelegramUser(_ context.Context, telegramID int64, _ string) (*entity.User, error) {
	return &entity.User{ID: "user-1"}, nil
}

type fakeHistory struct{}

func (fakeHistory) List(_ context.Context, userID string, _, _ int) ([]*entity.HistorySummary, error) {
	return []*entity.HistorySummary{{ID: "history-1", Title: "Trip from March 3, 2026", Description: "You received 2 destination suggestions."}}, nil
}

type testEnv struct {
	bot         *fakeBot
	manager     *state.Manager
	suggestions *fakeSuggestions
	flow        *Flow
	callbacks   *CallbackHandler
	answers     *AnswerHandler
	commands    *CommandHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	q, err := questionnaire.New([]entity.Question{
		{ID: 1, Key: "mood", AIKey: "travelMood", Question: "What mood?", Options: []string{"Relaxing", "Adventurous"}, SelectType: entity.SelectTypeMultiple},
		{ID: 2, Key: "region", AIKey: "preferredRegion", Question: "Where?", Options: []string{"Europe", "Asia"}, SelectType: entity.SelectTypeSingle},
	})
	require.NoError(t, err)

	env := &testEnv{
		bot:         &fakeBot{},
		manager:     state.NewManager(&memoryStorage{sessions: map[int64]state.TelegramSession{}}),
		suggestions: &fakeSuggestions{},
	}
	env.flow = NewFlow(env.bot, env.manager, q, env.suggestions, fakeUsers{}, keyboard.NewBuilder(), zaptest.NewLogger(t))
	env.callbacks = NewCallbackHandler(env.flow)
	env.answers = NewAnswerHandler(env.flow)
	env.commands = NewCommandHandler(env.flow, fakeHistory{})
	return env
}

func (e *testEnv) click(t *testing.T, messageID int, data string) {
	t.Helper()
	err := e.callbacks.Handle(context.Background(), &Message{
		ChatID:       chatID,
		UserID:       7,
		MessageID:    messageID,
		CallbackData: data,
		CallbackID:   "cb",
	})
	require.NoError(t, err)
}

func (e *testEnv) state(t *testing.T) *state.StateData {
	t.Helper()
	data, err := e.manager.GetStateData(context.Background(), chatID)
	require.NoError(t, err)
	return data
}

func TestFlow_FullQuestionnaire(t *testing.T) {
	env := newTestEnv(t)

	env.click(t, 1, "action:start")
	first := env.bot.last()
	assert.Contains(t, first.text, "Question 1 of 2")
	assert.Equal(t, first.messageID, env.state(t).LastMessageID)

	session, err := env.manager.GetSession(context.Background(), chatID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)

	// Next without a selection keeps the question open
	env.click(t, first.messageID, "nav:next")
	assert.Equal(t, "⚠️ Please make at least one selection.", env.bot.last().text)
	assert.Equal(t, 0, env.state(t).Form.Step)

	env.click(t, first.messageID, "opt:0")
	edited := env.bot.last()
	assert.True(t, edited.edit)
	require.NotNil(t, edited.markup)
	assert.Equal(t, "✅ Relaxing", edited.markup.InlineKeyboard[0][0].Text)

	env.click(t, first.messageID, "nav:next")
	assert.Contains(t, env.bot.last().text, "Question 2 of 2")

	env.click(t, first.messageID, "opt:1")
	env.click(t, first.messageID, "opt:0")
	assert.Equal(t, []string{"Europe"}, env.state(t).Form.Answers["region"], "single select keeps the last option")

	env.click(t, first.messageID, "nav:next")
	summary := env.bot.last()
	assert.Contains(t, summary.text, "Here is what you told me")
	assert.Contains(t, summary.text, "Relaxing")
	assert.Equal(t, entity.FormPhaseSummary, env.state(t).Form.Phase)

	env.click(t, first.messageID, "action:submit")
	assert.Equal(t, "user-1", env.suggestions.userID)
	assert.Equal(t, []string{"Relaxing"}, env.suggestions.prefs["mood"])

	data := env.state(t)
	assert.Equal(t, entity.FormPhaseCompleted, data.Form.Phase)
	assert.False(t, data.IsProcessing)
	require.NotNil(t, data.Form.HistoryItemID)
	assert.Equal(t, "history-1", *data.Form.HistoryItemID)

	texts := env.bot.texts()
	assert.Contains(t, texts, render.MsgSearching)
	assert.Contains(t, texts, render.MsgResultsSaved)

	// The results message becomes the interactive one
	assert.NotEqual(t, first.messageID, data.LastMessageID)
	env.click(t, data.LastMessageID, "dest:0")
	assert.Equal(t, []string{"Kyoto"}, env.suggestions.details)
	details := env.bot.last()
	assert.Equal(t, "📍 Kyoto\n\nKyoto is lovely.", details.text)
	require.NotNil(t, details.markup)
	assert.Equal(t, "https://www.google.com/search?q=Kyoto", *details.markup.InlineKeyboard[0][0].URL)

	env.click(t, data.LastMessageID, "action:refine")
	data = env.state(t)
	assert.Equal(t, entity.FormPhaseAnswering, data.Form.Phase)
	assert.Equal(t, 0, data.Form.Step)
	assert.Equal(t, []string{"Relaxing"}, data.Form.Answers["mood"], "refine keeps answers")
	assert.Contains(t, env.bot.last().text, "Question 1 of 2")
}

func TestFlow_SubmitFailureReturnsToSummary(t *testing.T) {
	env := newTestEnv(t)
	env.suggestions.err = errors.Join(entity.ErrSuggestionFailed, errors.New("boom"))

	env.click(t, 1, "action:start")
	id := env.state(t).LastMessageID
	env.click(t, id, "opt:1")
	env.click(t, id, "nav:next")
	env.click(t, id, "opt:1")
	env.click(t, id, "nav:next")
	env.click(t, id, "action:submit")

	data := env.state(t)
	assert.Equal(t, entity.FormPhaseSummary, data.Form.Phase)
	assert.False(t, data.IsProcessing)
	assert.Contains(t, env.bot.texts(), render.ErrSuggestionFailed)

	retry := env.bot.last()
	assert.Contains(t, retry.text, "Here is what you told me")
	assert.Equal(t, retry.messageID, data.LastMessageID, "a fresh summary allows retrying")
}

func TestFlow_StaleButtonResendsCurrentView(t *testing.T) {
	env := newTestEnv(t)

	env.click(t, 1, "action:start")
	current := env.state(t).LastMessageID

	env.click(t, current-1, "opt:0")
	texts := env.bot.texts()
	assert.Equal(t, render.ErrStale, texts[len(texts)-2])
	assert.Contains(t, env.bot.last().text, "Question 1 of 2")
	assert.Empty(t, env.state(t).Form.Answers["mood"])
}

func TestFlow_StaleSubmitIsReleased(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.click(t, 1, "action:start")
	data := env.state(t)
	data.Form.Answers = entity.Preferences{"mood": {"Relaxing"}, "region": {"Asia"}}
	data.Form.Phase = entity.FormPhaseSubmitting
	data.IsProcessing = true
	data.ProcessingStarted = time.Now().Add(-2 * staleSubmitAfter)
	require.NoError(t, env.manager.UpdateStateData(ctx, chatID, data))

	env.click(t, data.LastMessageID, "action:submit")
	assert.Equal(t, entity.FormPhaseCompleted, env.state(t).Form.Phase)
}

func TestAnswerHandler_TypedOption(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.click(t, 1, "action:start")

	require.NoError(t, env.answers.Handle(ctx, &Message{ChatID: chatID, UserID: 7, Text: "  adventurous "}))
	assert.Equal(t, []string{"Adventurous"}, env.state(t).Form.Answers["mood"])
	assert.True(t, env.bot.last().edit)

	require.NoError(t, env.answers.Handle(ctx, &Message{ChatID: chatID, UserID: 7, Text: "Sleepy"}))
	assert.Equal(t, "⚠️ Please choose from the listed options.", env.bot.last().text)
}

func TestCommands_CancelNeedsConfirmation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	msg := &Message{ChatID: chatID, UserID: 7}

	env.commands.Cancel(ctx, msg)
	assert.Equal(t, render.MsgNoSession, env.bot.last().text)

	env.click(t, 1, "action:start")
	env.commands.Cancel(ctx, msg)
	assert.Equal(t, render.MsgConfirmReset, env.bot.last().text)
	assert.NotNil(t, env.state(t).Form)

	env.click(t, env.bot.last().messageID, "confirm:continue")
	assert.Empty(t, env.state(t).PendingConfirmation)
	assert.Contains(t, env.bot.last().text, "Question 1 of 2")

	env.commands.Cancel(ctx, msg)
	env.commands.Cancel(ctx, msg)
	assert.Equal(t, render.MsgResetDone, env.bot.last().text)
	assert.Nil(t, env.state(t).Form)

	session, err := env.manager.GetSession(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID, "reset keeps the user link")
}

func TestCommands_History(t *testing.T) {
	env := newTestEnv(t)

	env.commands.History(context.Background(), &Message{ChatID: chatID, UserID: 7})
	assert.Contains(t, env.bot.last().text, "1. Trip from March 3, 2026")
}

func TestClassifyHandlerError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{entity.ErrNoSuggestions, render.ErrNoSuggestions},
		{entity.ErrSubmitInProgress, render.ErrBusy},
		{errors.Join(entity.ErrSuggestionFailed, entity.ErrModelUnavailable), render.ErrServiceUnavailable},
		{errors.Join(entity.ErrSuggestionFailed, context.DeadlineExceeded), render.ErrTimeout},
		{entity.ErrDetailsFailed, render.ErrDetailsFailed},
		{errNoForm, render.MsgNoSession},
		{errors.New("boom"), render.ErrGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, classifyHandlerError(tt.err).UserMessage)
		})
	}
}
