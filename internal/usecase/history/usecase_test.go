package history

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memoryRepo struct {
	mu    sync.Mutex
	items map[string]entity.HistoryItem
	clock time.Time
	err   error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		items: map[string]entity.HistoryItem{},
		clock: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *memoryRepo) Create(_ context.Context, item entity.HistoryItem) (*entity.HistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.clock = r.clock.Add(time.Hour)
	item.CreatedAt = r.clock
	r.items[item.ID] = item
	return &item, nil
}

func (r *memoryRepo) List(_ context.Context, userID string, skip, limit int) ([]*entity.HistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.HistoryItem
	for _, item := range r.items {
		if item.UserID == userID {
			item := item
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepo) Get(_ context.Context, userID, id string) (*entity.HistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, entity.ErrHistoryNotFound
	}
	return &item, nil
}

func (r *memoryRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrHistoryNotFound
	}
	delete(r.items, id)
	return nil
}

func newTestUsecase(t *testing.T) (*HistoryUsecase, *memoryRepo) {
	t.Helper()
	q, err := questionnaire.New(config.DefaultQuestions())
	require.NoError(t, err)
	repo := newMemoryRepo()
	return NewUsecase(repo, q), repo
}

// tripPreferences answers every question with its first option, then applies overrides
func tripPreferences(uc *HistoryUsecase, overrides entity.Preferences) entity.Preferences {
	prefs := entity.Preferences{}
	for _, q := range uc.questionnaire.Questions() {
		prefs[q.Key] = []string{q.Options[0]}
	}
	for k, v := range overrides {
		prefs[k] = v
	}
	return prefs
}

var testSuggestions = []entity.Destination{
	{Name: "Lisbon", Description: "Tiles and trams."},
	{Name: "Porto", Description: "Port wine."},
}

func TestSaveAndListNewestFirst(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	first, err := uc.Save(ctx, "user-1", tripPreferences(uc, entity.Preferences{"region": {"Europe"}}), testSuggestions)
	require.NoError(t, err)
	second, err := uc.Save(ctx, "user-1", tripPreferences(uc, entity.Preferences{"region": {"Asia"}}), testSuggestions[:1])
	require.NoError(t, err)
	_, err = uc.Save(ctx, "user-2", tripPreferences(uc, nil), testSuggestions)
	require.NoError(t, err)

	summaries, err := uc.List(ctx, "user-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, second.ID, summaries[0].ID)
	assert.Equal(t, first.ID, summaries[1].ID)
	assert.Equal(t, "You received 1 destination suggestions.", summaries[0].Description)
	assert.Equal(t, "Trip from May 1, 2026", summaries[1].Title)
	assert.Equal(t, 2, summaries[1].SuggestionsCount)
}

func TestSave_Errors(t *testing.T) {
	uc, repo := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.Save(ctx, "", entity.Preferences{}, testSuggestions)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	_, err = uc.Save(ctx, "user-1", tripPreferences(uc, nil), nil)
	assert.ErrorIs(t, err, entity.ErrMissingField)

	repo.err = errors.New("connection refused")
	_, err = uc.Save(ctx, "user-1", tripPreferences(uc, nil), testSuggestions)
	assert.ErrorIs(t, err, entity.ErrHistorySave)
}

func TestSave_RejectsInvalidPreferences(t *testing.T) {
	uc, repo := newTestUsecase(t)
	ctx := context.Background()

	cases := map[string]entity.Preferences{
		"unknown key":          tripPreferences(uc, entity.Preferences{"bogus": {"x"}}),
		"two answers single":   tripPreferences(uc, entity.Preferences{"companions": {"Solo", "Couple"}}),
		"option not listed":    tripPreferences(uc, entity.Preferences{"region": {"Atlantis"}}),
		"unanswered question":  {"region": {"Europe"}},
		"empty selection only": tripPreferences(uc, entity.Preferences{"mood": {" "}}),
	}
	for name, prefs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Save(ctx, "user-1", prefs, testSuggestions)
			assert.ErrorIs(t, err, entity.ErrValidation)
		})
	}
	assert.Empty(t, repo.items)
}

func TestSave_NormalizesPreferences(t *testing.T) {
	uc, _ := newTestUsecase(t)

	item, err := uc.Save(context.Background(), "user-1",
		tripPreferences(uc, entity.Preferences{"region": {" Europe ", "Europe", "Asia"}}), testSuggestions)
	require.NoError(t, err)
	assert.Equal(t, []string{"Europe", "Asia"}, item.Preferences["region"])
}

func TestGetAndDelete_OwnedByUser(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	item, err := uc.Save(ctx, "user-1", tripPreferences(uc, nil), testSuggestions)
	require.NoError(t, err)

	_, err = uc.Get(ctx, "user-2", item.ID)
	assert.ErrorIs(t, err, entity.ErrHistoryNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "user-2", item.ID), entity.ErrHistoryNotFound)

	got, err := uc.Get(ctx, "user-1", item.ID)
	require.NoError(t, err)
	assert.Equal(t, testSuggestions, got.Suggestions)

	require.NoError(t, uc.Delete(ctx, "user-1", item.ID))
	_, err = uc.Get(ctx, "user-1", item.ID)
	assert.ErrorIs(t, err, entity.ErrHistoryNotFound)
}

func TestList_ClampsPaging(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Save(ctx, "user-1", tripPreferences(uc, nil), testSuggestions)
		require.NoError(t, err)
	}

	summaries, err := uc.List(ctx, "user-1", -5, 2)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)

	summaries, err = uc.List(ctx, "user-1", 2, MaxListLimit+1)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestExport_Markdown(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	item, err := uc.Save(ctx, "user-1", tripPreferences(uc, entity.Preferences{"region": {"Europe", "Asia"}}), testSuggestions)
	require.NoError(t, err)

	out, fmtr, err := uc.Export(ctx, "user-1", item.ID, entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, ".md", fmtr.FileExtension())
	assert.Contains(t, string(out), "# Trip from May 1, 2026")
	assert.Contains(t, string(out), "Europe, Asia")
	assert.Contains(t, string(out), "### 2. Porto")
}

func TestExport_InvalidFormat(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, _, err := uc.Export(context.Background(), "user-1", "id", "html")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
