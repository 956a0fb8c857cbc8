package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/entity"
	pkgRetry "github.com/futig/wanderlust-backend/internal/pkg/retry"
	pkghttp "github.com/futig/wanderlust-backend/pkg/http"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRenderSuggestPrompt(t *testing.T) {
	prompt, err := RenderSuggestPrompt(&entity.SuggestDestinationsRequest{
		TravelMood:      "Relaxing, Romantic",
		PreferredRegion: "Europe",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "You are a travel expert.")
	assert.Contains(t, prompt, "Travel Mood: Relaxing, Romantic")
	assert.Contains(t, prompt, "Preferred Region: Europe")
	assert.Contains(t, prompt, "Ensure the output matches the schema exactly.")
}

func TestRenderBriefPrompt(t *testing.T) {
	prompt, err := RenderBriefPrompt(&entity.DestinationBriefRequest{
		DestinationName: "Kyoto",
		ImageURL:        "https://picsum.photos/seed/kyoto/800/600",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Provide a one-sentence summary of the following destination")
	assert.Contains(t, prompt, "Destination Name: Kyoto")
	assert.Contains(t, prompt, "Image URL: https://picsum.photos/seed/kyoto/800/600")
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("  {\"a\":1}  "))
}

func TestDecodeJSON(t *testing.T) {
	var out entity.SuggestDestinationsResponse
	require.NoError(t, decodeJSON("```json\n{\"destinations\":[{\"name\":\"Oslo\"}]}\n```", &out))
	assert.Equal(t, "Oslo", out.Destinations[0].Name)

	assert.ErrorIs(t, decodeJSON("", &out), entity.ErrModelOutput)
	assert.ErrorIs(t, decodeJSON("not json", &out), entity.ErrModelOutput)
}

func TestCheckSuggestions(t *testing.T) {
	assert.ErrorIs(t, checkSuggestions(&entity.SuggestDestinationsResponse{}), entity.ErrModelOutput)

	empty := &entity.SuggestDestinationsResponse{Destinations: []entity.Destination{}}
	assert.NoError(t, checkSuggestions(empty))

	noName := &entity.SuggestDestinationsResponse{Destinations: []entity.Destination{{Name: "  "}}}
	assert.ErrorIs(t, checkSuggestions(noName), entity.ErrModelOutput)

	ok := &entity.SuggestDestinationsResponse{Destinations: []entity.Destination{{Name: " Oslo ", ImageURL: " fjord "}}}
	require.NoError(t, checkSuggestions(ok))
	assert.Equal(t, "Oslo", ok.Destinations[0].Name)
	assert.Equal(t, "fjord", ok.Destinations[0].ImageURL)
}

func TestCheckBrief(t *testing.T) {
	req := &entity.DestinationBriefRequest{DestinationName: "Oslo", ImageURL: "https://img"}

	assert.ErrorIs(t, checkBrief(req, &entity.DestinationBriefResponse{}), entity.ErrModelOutput)

	resp := &entity.DestinationBriefResponse{Summary: " A compact capital by the fjord. "}
	require.NoError(t, checkBrief(req, resp))
	assert.Equal(t, "Oslo", resp.DestinationName)
	assert.Equal(t, "https://img", resp.ImageURL)
	assert.Equal(t, "A compact capital by the fjord.", resp.Summary)
}

func TestMockConnector(t *testing.T) {
	m := NewMockConnector(zaptest.NewLogger(t))

	resp, err := m.SuggestDestinations(context.Background(), &entity.SuggestDestinationsRequest{PreferredRegion: "Europe, Asia"})
	require.NoError(t, err)
	assert.Len(t, resp.Destinations, 4)

	resp, err = m.SuggestDestinations(context.Background(), &entity.SuggestDestinationsRequest{PreferredRegion: "Anywhere"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Destinations)

	brief, err := m.DescribeDestination(context.Background(), &entity.DestinationBriefRequest{DestinationName: "Kyoto"})
	require.NoError(t, err)
	assert.Contains(t, brief.Summary, "Kyoto")
}

func TestHTTPConnector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Prompt string          `json:"prompt"`
			Input  json.RawMessage `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		switch r.URL.Path {
		case "/suggest":
			assert.Contains(t, in.Prompt, "Preferred Region: Asia")
			_, _ = w.Write([]byte(`{"destinations":[{"name":"Kyoto","description":"Temples","imageUrl":"torii gates"}]}`))
		case "/brief":
			assert.Contains(t, string(in.Input), `"destinationName":"Kyoto"`)
			_, _ = w.Write([]byte(`{"summary":"Kyoto is calm."}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := config.LLMConfig{
		HTTPClientConfig: config.HTTPClientConfig{Url: srv.URL, RequestTimeout: time.Second},
		Suggest:          "/suggest",
		Brief:            "/brief",
	}
	c := NewHTTPConnector(cfg, zaptest.NewLogger(t))

	resp, err := c.SuggestDestinations(context.Background(), &entity.SuggestDestinationsRequest{PreferredRegion: "Asia"})
	require.NoError(t, err)
	require.Len(t, resp.Destinations, 1)
	assert.Equal(t, "torii gates", resp.Destinations[0].ImageURL)

	brief, err := c.DescribeDestination(context.Background(), &entity.DestinationBriefRequest{DestinationName: "Kyoto", ImageURL: "https://img"})
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", brief.DestinationName)
	assert.Equal(t, "https://img", brief.ImageURL)
}

type fakeConnector struct {
	calls atomic.Int32
	errs  []error
}

func (f *fakeConnector) next() error {
	n := int(f.calls.Add(1)) - 1
	if n < len(f.errs) {
		return f.errs[n]
	}
	return nil
}

func (f *fakeConnector) SuggestDestinations(context.Context, *entity.SuggestDestinationsRequest) (*entity.SuggestDestinationsResponse, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	return &entity.SuggestDestinationsResponse{Destinations: []entity.Destination{{Name: "Oslo"}}}, nil
}

func (f *fakeConnector) DescribeDestination(_ context.Context, req *entity.DestinationBriefRequest) (*entity.DestinationBriefResponse, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	return &entity.DestinationBriefResponse{DestinationName: req.DestinationName, Summary: "Nice."}, nil
}

func resilientConfig() config.LLMConfig {
	return config.LLMConfig{
		Retry: pkgRetry.RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond},
		Breaker: config.BreakerConfig{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			FailureRatio: 0.5,
			MinRequests:  2,
		},
	}
}

func TestResilientConnector_RetriesTransient(t *testing.T) {
	fake := &fakeConnector{errs: []error{
		&pkghttp.HTTPError{StatusCode: http.StatusServiceUnavailable},
		&pkghttp.NetworkError{Err: errors.New("reset")},
	}}
	r := NewResilientConnector(fake, resilientConfig(), zaptest.NewLogger(t))

	resp, err := r.SuggestDestinations(context.Background(), &entity.SuggestDestinationsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Oslo", resp.Destinations[0].Name)
	assert.Equal(t, int32(3), fake.calls.Load())
}

func TestResilientConnector_DoesNotRetryPermanent(t *testing.T) {
	fake := &fakeConnector{errs: []error{&pkghttp.HTTPError{StatusCode: http.StatusBadRequest}}}
	r := NewResilientConnector(fake, resilientConfig(), zaptest.NewLogger(t))

	_, err := r.DescribeDestination(context.Background(), &entity.DestinationBriefRequest{DestinationName: "Oslo"})
	require.Error(t, err)
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestResilientConnector_BadOutputDoesNotTripBreaker(t *testing.T) {
	out := errors.Join(entity.ErrModelOutput, errors.New("no name"))
	fake := &fakeConnector{errs: []error{out, out, out, out}}
	r := NewResilientConnector(fake, resilientConfig(), zaptest.NewLogger(t))

	for i := 0; i < 4; i++ {
		_, err := r.SuggestDestinations(context.Background(), &entity.SuggestDestinationsRequest{})
		assert.ErrorIs(t, err, entity.ErrModelOutput)
	}
	assert.Equal(t, gobreaker.StateClosed, r.State())
	assert.Equal(t, int32(4), fake.calls.Load())
}

func TestResilientConnector_OpensBreaker(t *testing.T) {
	permanent := &pkghttp.HTTPError{StatusCode: http.StatusUnauthorized}
	fake := &fakeConnector{errs: []error{permanent, permanent, permanent}}
	r := NewResilientConnector(fake, resilientConfig(), zaptest.NewLogger(t))

	for i := 0; i < 2; i++ {
		_, err := r.SuggestDestinations(context.Background(), &entity.SuggestDestinationsRequest{})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, r.State())

	_, err := r.SuggestDestinations(context.Background(), &entity.SuggestDestinationsRequest{})
	assert.ErrorIs(t, err, entity.ErrModelUnavailable)
	assert.Equal(t, int32(2), fake.calls.Load())
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&APIError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, IsTransient(&APIError{StatusCode: http.StatusForbidden}))
	assert.False(t, IsTransient(entity.ErrModelOutput))
	assert.False(t, IsTransient(context.Canceled))
	assert.True(t, IsTransient(&pkghttp.NetworkError{Err: errors.New("eof")}))
}
