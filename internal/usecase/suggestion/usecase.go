package suggestion

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/metrics"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	imageURLTemplate       = "https://picsum.photos/seed/%s/800/600"
	placeholderURLTemplate = "https://picsum.photos/seed/%s/600/400"
	searchURLPrefix        = "https://www.google.com/search?q="
)

// SuggestionUsecase turns preferences into destinations and destinations into briefs
type SuggestionUsecase struct {
	questionnaire *questionnaire.Questionnaire
	llm           LLMConnector
	history       HistorySaver
	briefs        *cache.Cache
}

// NewUsecase creates a suggestion use case. history may be nil when no store is configured.
func NewUsecase(
	q *questionnaire.Questionnaire,
	llm LLMConnector,
	history HistorySaver,
	briefTTL time.Duration,
) *SuggestionUsecase {
	return &SuggestionUsecase{
		questionnaire: q,
		llm:           llm,
		history:       history,
		briefs:        cache.New(briefTTL, briefTTL*2),
	}
}

// Suggest validates preferences, asks the model for destinations and saves them
// to the history of userID when it is not empty
func (uc *SuggestionUsecase) Suggest(
	ctx context.Context,
	userID string,
	prefs entity.Preferences,
) (*entity.SuggestionsResponse, error) {
	if err := uc.questionnaire.Validate(prefs); err != nil {
		return nil, err
	}
	prefs = uc.questionnaire.Normalize(prefs)

	destinations, err := uc.fetchSuggestions(ctx, prefs)
	if err != nil {
		return nil, err
	}

	resp := &entity.SuggestionsResponse{Destinations: destinations}

	if userID != "" && uc.history != nil {
		item, err := uc.history.Save(ctx, userID, prefs, destinations)
		if err != nil {
			ctxzap.Warn(ctx, "failed to save suggestions to history",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else {
			resp.HistoryItemID = &item.ID
		}
	}

	return resp, nil
}

func (uc *SuggestionUsecase) fetchSuggestions(ctx context.Context, prefs entity.Preferences) ([]entity.Destination, error) {
	req := uc.questionnaire.SuggestRequest(prefs)

	ctxzap.Info(ctx, "requesting destination suggestions",
		zap.String("region", req.PreferredRegion),
		zap.String("mood", req.TravelMood),
	)

	resp, err := uc.llm.SuggestDestinations(ctx, &req)
	if err != nil {
		ctxzap.Error(ctx, "destination suggestion failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", entity.ErrSuggestionFailed, err)
	}

	metrics.SuggestionsReturned.Observe(float64(len(resp.Destinations)))

	if len(resp.Destinations) == 0 {
		ctxzap.Warn(ctx, "model returned no destinations")
		return nil, entity.ErrNoSuggestions
	}

	destinations := make([]entity.Destination, len(resp.Destinations))
	for i, d := range resp.Destinations {
		d.ImageURL = ImageURL(d.Name, d.ImageURL)
		destinations[i] = d
	}

	ctxzap.Info(ctx, "destinations suggested", zap.Int("count", len(destinations)))

	return destinations, nil
}

// Details returns the one-sentence brief of a destination, cached by name and image
func (uc *SuggestionUsecase) Details(
	ctx context.Context,
	req *entity.DestinationDetailsRequest,
) (*entity.DestinationDetails, error) {
	name := strings.TrimSpace(req.DestinationName)
	if name == "" {
		return nil, fmt.Errorf("%w: destination_name", entity.ErrMissingField)
	}
	imageURL := strings.TrimSpace(req.ImageURL)

	key := name + "\x00" + imageURL
	if cached, ok := uc.briefs.Get(key); ok {
		metrics.BriefCacheLookups.WithLabelValues("hit").Inc()
		details := cached.(entity.DestinationDetails)
		return &details, nil
	}
	metrics.BriefCacheLookups.WithLabelValues("miss").Inc()

	ctxzap.Info(ctx, "requesting destination brief", zap.String("destination", name))

	resp, err := uc.llm.DescribeDestination(ctx, &entity.DestinationBriefRequest{
		DestinationName: name,
		ImageURL:        imageURL,
	})
	if err != nil {
		ctxzap.Error(ctx, "destination brief failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", entity.ErrDetailsFailed, err)
	}

	details := entity.DestinationDetails{
		DestinationName: resp.DestinationName,
		ImageURL:        resp.ImageURL,
		Summary:         resp.Summary,
		SearchURL:       SearchURL(resp.DestinationName),
	}
	uc.briefs.SetDefault(key, details)

	return &details, nil
}

// ImageURL turns the image prompt of a destination into a picture URL
func ImageURL(name, prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Sprintf(placeholderURLTemplate, stripSpaces(name))
	}
	return fmt.Sprintf(imageURLTemplate, encodeURIComponent(prompt))
}

func SearchURL(name string) string {
	return searchURLPrefix + url.QueryEscape(name)
}

// QueryEscape also escapes the marks that encodeURIComponent keeps
var uriComponentMarks = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return uriComponentMarks.Replace(url.QueryEscape(s))
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
