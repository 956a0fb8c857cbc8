package suggestion

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/validator"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	suggestResp *entity.SuggestDestinationsResponse
	suggestErr  error
	briefErr    error
	lastSuggest *entity.SuggestDestinationsRequest
	briefCalls  atomic.Int32
}

func (f *fakeLLM) SuggestDestinations(_ context.Context, req *entity.SuggestDestinationsRequest) (*entity.SuggestDestinationsResponse, error) {
	f.lastSuggest = req
	if f.suggestErr != nil {
		return nil, f.suggestErr
	}
	return f.suggestResp, nil
}

func (f *fakeLLM) DescribeDestination(_ context.Context, req *entity.DestinationBriefRequest) (*entity.DestinationBriefResponse, error) {
	f.briefCalls.Add(1)
	if f.briefErr != nil {
		return nil, f.briefErr
	}
	return &entity.DestinationBriefResponse{
		DestinationName: req.DestinationName,
		ImageURL:        req.ImageURL,
		Summary:         req.DestinationName + " is lovely.",
	}, nil
}

type fakeHistory struct {
	saved []entity.Destination
	err   error
}

func (f *fakeHistory) Save(_ context.Context, userID string, _ entity.Preferences, suggestions []entity.Destination) (*entity.HistoryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = suggestions
	return &entity.HistoryItem{ID: "item-1", UserID: userID, Suggestions: suggestions}, nil
}

func completePreferences() entity.Preferences {
	prefs := entity.Preferences{}
	for _, q := range config.DefaultQuestions() {
		prefs[q.Key] = []string{q.Options[0]}
	}
	return prefs
}

func newTestUsecase(t *testing.T, llm *fakeLLM, history HistorySaver) *SuggestionUsecase {
	t.Helper()
	q, err := questionnaire.New(config.DefaultQuestions())
	require.NoError(t, err)
	return NewUsecase(q, llm, history, time.Minute)
}

func TestSuggest_PostProcessesImages(t *testing.T) {
	llm := &fakeLLM{suggestResp: &entity.SuggestDestinationsResponse{Destinations: []entity.Destination{
		{Name: "Kyoto", Description: "Temples", ImageURL: "torii gates at dawn"},
		{Name: "Banff National Park", Description: "Lakes"},
	}}}
	uc := newTestUsecase(t, llm, nil)

	resp, err := uc.Suggest(context.Background(), "", completePreferences())
	require.NoError(t, err)
	require.Len(t, resp.Destinations, 2)
	assert.Equal(t, "https://picsum.photos/seed/torii%20gates%20at%20dawn/800/600", resp.Destinations[0].ImageURL)
	assert.Equal(t, "https://picsum.photos/seed/BanffNationalPark/600/400", resp.Destinations[1].ImageURL)
	assert.Nil(t, resp.HistoryItemID)
	assert.Equal(t, "Relaxing", llm.lastSuggest.TravelMood)
}

func TestSuggest_InvalidPreferences(t *testing.T) {
	llm := &fakeLLM{}
	uc := newTestUsecase(t, llm, nil)

	prefs := completePreferences()
	delete(prefs, "region")

	_, err := uc.Suggest(context.Background(), "", prefs)
	require.ErrorIs(t, err, entity.ErrValidation)
	fields, ok := validator.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, validator.MsgSelectionRequired, fields["region"])
	assert.Nil(t, llm.lastSuggest)
}

func TestSuggest_NoDestinations(t *testing.T) {
	uc := newTestUsecase(t, &fakeLLM{suggestResp: &entity.SuggestDestinationsResponse{Destinations: []entity.Destination{}}}, nil)

	_, err := uc.Suggest(context.Background(), "", completePreferences())
	assert.ErrorIs(t, err, entity.ErrNoSuggestions)
}

func TestSuggest_ModelFailure(t *testing.T) {
	cause := errors.Join(entity.ErrModelUnavailable, errors.New("breaker open"))
	uc := newTestUsecase(t, &fakeLLM{suggestErr: cause}, nil)

	_, err := uc.Suggest(context.Background(), "", completePreferences())
	assert.ErrorIs(t, err, entity.ErrSuggestionFailed)
	assert.ErrorIs(t, err, entity.ErrModelUnavailable)
}

func TestSuggest_SavesHistoryForSignedInUser(t *testing.T) {
	llm := &fakeLLM{suggestResp: &entity.SuggestDestinationsResponse{Destinations: []entity.Destination{{Name: "Oslo"}}}}
	history := &fakeHistory{}
	uc := newTestUsecase(t, llm, history)

	resp, err := uc.Suggest(context.Background(), "user-1", completePreferences())
	require.NoError(t, err)
	require.NotNil(t, resp.HistoryItemID)
	assert.Equal(t, "item-1", *resp.HistoryItemID)
	assert.Equal(t, resp.Destinations, history.saved)
}

func TestSuggest_HistoryFailureDoesNotFail(t *testing.T) {
	llm := &fakeLLM{suggestResp: &entity.SuggestDestinationsResponse{Destinations: []entity.Destination{{Name: "Oslo"}}}}
	uc := newTestUsecase(t, llm, &fakeHistory{err: entity.ErrHistorySave})

	resp, err := uc.Suggest(context.Background(), "user-1", completePreferences())
	require.NoError(t, err)
	assert.Nil(t, resp.HistoryItemID)
	assert.Len(t, resp.Destinations, 1)
}

func TestDetails_CachesBriefs(t *testing.T) {
	llm := &fakeLLM{}
	uc := newTestUsecase(t, llm, nil)
	req := &entity.DestinationDetailsRequest{DestinationName: " Kyoto ", ImageURL: "https://img"}

	first, err := uc.Details(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Details(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), llm.briefCalls.Load())
	assert.Equal(t, "Kyoto is lovely.", first.Summary)
	assert.Equal(t, "https://www.google.com/search?q=Kyoto", first.SearchURL)
}

func TestDetails_Errors(t *testing.T) {
	uc := newTestUsecase(t, &fakeLLM{briefErr: errors.New("timeout")}, nil)

	_, err := uc.Details(context.Background(), &entity.DestinationDetailsRequest{DestinationName: "  "})
	assert.ErrorIs(t, err, entity.ErrMissingField)

	_, err = uc.Details(context.Background(), &entity.DestinationDetailsRequest{DestinationName: "Kyoto"})
	assert.ErrorIs(t, err, entity.ErrDetailsFailed)
}

func TestURLHelpers(t *testing.T) {
	assert.Equal(t, "https://picsum.photos/seed/a%2Fb%20%26%20c/800/600", ImageURL("x", "a/b & c"))
	assert.Equal(t,
		"https://picsum.photos/seed/Sunset%20(golden%20hour)%20it's%20*wild*!~/800/600",
		ImageURL("x", "Sunset (golden hour) it's *wild*!~"))
	assert.Equal(t, "https://picsum.photos/seed/1%2B1%3D2/800/600", ImageURL("x", "1+1=2"))
	assert.Equal(t, "https://picsum.photos/seed/NewYork/600/400", ImageURL("New York", " "))
	assert.Equal(t, "https://www.google.com/search?q=New+York", SearchURL("New York"))
}
