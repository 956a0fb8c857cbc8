package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	authapi "github.com/futig/wanderlust-backend/internal/api/auth"
	historyapi "github.com/futig/wanderlust-backend/internal/api/history"
	questionnaireapi "github.com/futig/wanderlust-backend/internal/api/questionnaire"
	suggestionapi "github.com/futig/wanderlust-backend/internal/api/suggestion"
	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/integration/llm"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	authuc "github.com/futig/wanderlust-backend/internal/usecase/auth"
	historyuc "github.com/futig/wanderlust-backend/internal/usecase/history"
	questionnaireuc "github.com/futig/wanderlust-backend/internal/usecase/questionnaire"
	suggestionuc "github.com/futig/wanderlust-backend/internal/usecase/suggestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func (m *memoryUsers) Create(_ context.Context, user entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if *u.Email == *user.Email {
			return nil, entity.ErrEmailTaken
		}
	}
	m.users[user.ID] = user
	return &user, nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if *u.Email == email {
			return &u, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (m *memoryUsers) UpsertTelegram(context.Context, int64, string) (*entity.User, error) {
	return nil, entity.ErrUserNotFound
}

func (m *memoryUsers) TouchLogin(context.Context, string) error { return nil }

type memoryHistory struct {
	mu    sync.Mutex
	items []entity.HistoryItem
}

func (m *memoryHistory) Create(_ context.Context, item entity.HistoryItem) (*entity.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.CreatedAt = time.Now().Add(time.Duration(len(m.items)) * time.Second)
	m.items = append(m.items, item)
	return &item, nil
}

func (m *memoryHistory) List(_ context.Context, userID string, skip, limit int) ([]*entity.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.HistoryItem
	for i := range m.items {
		if m.items[i].UserID == userID {
			item := m.items[i]
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryHistory) Get(_ context.Context, userID, id string) (*entity.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id && item.UserID == userID {
			return &item, nil
		}
	}
	return nil, entity.ErrHistoryNotFound
}

func (m *memoryHistory) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ID == id && item.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return entity.ErrHistoryNotFound
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zaptest.NewLogger(t)

	q, err := questionnaire.New(config.DefaultQuestions())
	require.NoError(t, err)

	tokens, err := authuc.NewTokenManager(strings.Repeat("k", 32), time.Hour)
	require.NoError(t, err)
	authUsecase := authuc.NewUsecase(&memoryUsers{users: map[string]entity.User{}}, tokens, bcrypt.MinCost)

	historyUsecase := historyuc.NewUsecase(&memoryHistory{}, q)
	suggestionUsecase := suggestionuc.NewUsecase(q, llm.NewMockConnector(logger), historyUsecase, time.Minute)
	questionnaireUsecase := questionnaireuc.NewUsecase(q, questionnaire.NewMemoryStore(time.Minute), suggestionUsecase)

	router := SetupRouter(Handlers{
		Questionnaire: questionnaireapi.NewHandler(questionnaireUsecase),
		Suggestion:    suggestionapi.NewHandler(suggestionUsecase),
		Auth:          authapi.NewHandler(authUsecase),
		History:       historyapi.NewHandler(historyUsecase),
	}, authUsecase, config.HTTPConfig{
		RateLimitRequests:  1000,
		RateLimitWindow:    time.Minute,
		CORSAllowedOrigins: []string{"*"},
	}, logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func completePreferences() entity.Preferences {
	prefs := entity.Preferences{}
	for _, q := range config.DefaultQuestions() {
		prefs[q.Key] = []string{q.Options[0]}
	}
	return prefs
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	var health map[string]string
	assert.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodGet, "/health", "", nil, &health))
	assert.Equal(t, "healthy", health["status"])

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSwaggerDocument(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/docs/swagger.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/questionnaire/sessions/{id}/submit:")
}

func TestGetQuestionnaire(t *testing.T) {
	srv := newTestServer(t)

	var out entity.QuestionnaireResponse
	assert.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodGet, "/questionnaire", "", nil, &out))
	assert.Len(t, out.Questions, 12)
}

func TestQuestionnaireSessionFlow(t *testing.T) {
	srv := newTestServer(t)

	var session entity.FormSessionDTO
	require.Equal(t, http.StatusCreated, doJSON(t, srv, http.MethodPost, "/questionnaire/sessions", "", nil, &session))
	base := "/questionnaire/sessions/" + session.ID

	var errResp entity.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, doJSON(t, srv, http.MethodPost, base+"/next", "", nil, &errResp))
	assert.Equal(t, "Please make at least one selection.", errResp.Details["mood"])

	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPut, base+"/answer", "",
		entity.AnswerRequest{Selections: []string{"Time travel"}}, nil))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, srv, http.MethodPost, base+"/next", "", nil, &errResp))
	assert.Contains(t, errResp.Details["mood"], "Please choose from the listed options.")

	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPut, base+"/answer", "",
		entity.AnswerRequest{Selections: []string{}}, &session))
	assert.Empty(t, session.Selections)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, srv, http.MethodPost, base+"/next", "", nil, &errResp))
	assert.Equal(t, "Please make at least one selection.", errResp.Details["mood"])

	for _, q := range config.DefaultQuestions() {
		require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPut, base+"/answer", "",
			entity.AnswerRequest{Selections: []string{q.Options[0]}}, nil))
		require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, base+"/next", "", nil, &session))
	}
	assert.Equal(t, entity.FormPhaseSummary, session.Phase)

	var summary struct {
		Summary []entity.SummaryEntry `json:"summary"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodGet, base+"/summary", "", nil, &summary))
	assert.Len(t, summary.Summary, 12)

	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, base+"/submit", "", nil, &session))
	assert.Equal(t, entity.FormPhaseCompleted, session.Phase)
	require.NotEmpty(t, session.Suggestions)
	assert.True(t, strings.HasPrefix(session.Suggestions[0].ImageURL, "https://picsum.photos/seed/"))

	assert.Equal(t, http.StatusConflict, doJSON(t, srv, http.MethodPost, base+"/submit", "", nil, &errResp))

	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, base+"/refine", "", nil, &session))
	assert.Equal(t, entity.FormPhaseAnswering, session.Phase)
	assert.Equal(t, 0, session.Step)
}

func TestUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, doJSON(t, srv, http.MethodGet, "/questionnaire/sessions/nope", "", nil, nil))
}

func TestSuggestAndDetails(t *testing.T) {
	srv := newTestServer(t)

	var errResp entity.ErrorResponse
	incomplete := completePreferences()
	delete(incomplete, "budget")
	assert.Equal(t, http.StatusBadRequest, doJSON(t, srv, http.MethodPost, "/suggestions", "",
		entity.SuggestRequest{Preferences: incomplete}, &errResp))
	assert.Contains(t, errResp.Details, "budget")

	var suggestions entity.SuggestionsResponse
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, "/suggestions", "",
		entity.SuggestRequest{Preferences: completePreferences()}, &suggestions))
	require.NotEmpty(t, suggestions.Destinations)
	assert.Nil(t, suggestions.HistoryItemID)

	dest := suggestions.Destinations[0]
	var details entity.DestinationDetails
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, "/destinations/details", "",
		entity.DestinationDetailsRequest{DestinationName: dest.Name, ImageURL: dest.ImageURL}, &details))
	assert.Equal(t, dest.Name, details.DestinationName)
	assert.NotEmpty(t, details.Summary)
	assert.True(t, strings.HasPrefix(details.SearchURL, "https://www.google.com/search?q="))

	assert.Equal(t, http.StatusBadRequest, doJSON(t, srv, http.MethodPost, "/destinations/details", "",
		map[string]string{"image_url": "x"}, &errResp))
}

func TestAuthAndHistory(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, srv, http.MethodGet, "/history", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, srv, http.MethodGet, "/history", "garbage", nil, nil))

	var auth entity.AuthResponse
	require.Equal(t, http.StatusCreated, doJSON(t, srv, http.MethodPost, "/auth/sign-up", "",
		entity.SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}, &auth))
	assert.Equal(t, http.StatusConflict, doJSON(t, srv, http.MethodPost, "/auth/sign-up", "",
		entity.SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}, nil))
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, srv, http.MethodPost, "/auth/sign-in", "",
		entity.SignInRequest{Email: "ada@example.com", Password: "wrong-one"}, nil))
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, "/auth/sign-in", "",
		entity.SignInRequest{Email: "ada@example.com", Password: "secret1"}, &auth))

	var me entity.UserDTO
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodGet, "/auth/me", auth.Token, nil, &me))
	assert.Equal(t, "Ada", me.DisplayName)

	for i := 0; i < 2; i++ {
		var suggestions entity.SuggestionsResponse
		require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, "/suggestions", auth.Token,
			entity.SuggestRequest{Preferences: completePreferences()}, &suggestions))
		require.NotNil(t, suggestions.HistoryItemID)
	}

	var list entity.ListHistoryResponse
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodGet, "/history", auth.Token, nil, &list))
	require.Len(t, list.Items, 2)
	assert.True(t, list.Items[0].CreatedAt >= list.Items[1].CreatedAt)
	assert.Contains(t, list.Items[0].Description, "destination suggestions.")

	id := list.Items[0].ID
	var item entity.HistoryItem
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodGet, "/history/"+id, auth.Token, nil, &item))
	assert.NotEmpty(t, item.Suggestions)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/history/"+id+"/export?format=markdown", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".md")

	assert.Equal(t, http.StatusBadRequest, doJSON(t, srv, http.MethodGet, "/history/"+id+"/export?format=html", auth.Token, nil, nil))

	assert.Equal(t, http.StatusNoContent, doJSON(t, srv, http.MethodDelete, "/history/"+id, auth.Token, nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, srv, http.MethodGet, "/history/"+id, auth.Token, nil, nil))
}
