package llm

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/futig/wanderlust-backend/internal/entity"
)

const suggestPromptText = `You are a travel expert. A user has answered a questionnaire with the following preferences:

Travel Mood: {{.TravelMood}}
Travel Type: {{.TravelType}}
Travel Pace: {{.TravelPace}}
Budget Style: {{.BudgetStyle}}
Travel Duration: {{.TravelDuration}}
Preferred Weather: {{.PreferredWeather}}
Favorite Scenery: {{.FavoriteScenery}}
Preferred Food Style: {{.PreferredFoodStyle}}
Liked Activities: {{.LikedActivities}}
Travel Around Preference: {{.TravelAroundPreference}}
Trip Goal: {{.TripGoal}}
Preferred Region: {{.PreferredRegion}}

Based on these preferences, suggest some travel destinations. For each destination, provide a name, a short description, and a beautiful, descriptive prompt for an image.

Ensure the output matches the schema exactly.
`

const briefPromptText = `You are a travel expert who provides brief summaries of destinations.

Provide a one-sentence summary of the following destination:

Destination Name: {{.DestinationName}}
Image URL: {{.ImageURL}}
`

var (
	suggestPrompt = template.Must(template.New("suggest").Option("missingkey=error").Parse(suggestPromptText))
	briefPrompt   = template.Must(template.New("brief").Option("missingkey=error").Parse(briefPromptText))
)

// RenderSuggestPrompt builds the destination suggestion prompt
func RenderSuggestPrompt(req *entity.SuggestDestinationsRequest) (string, error) {
	var buf bytes.Buffer
	if err := suggestPrompt.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("render suggest prompt: %w", err)
	}
	return buf.String(), nil
}

// RenderBriefPrompt builds the one-sentence destination brief prompt
func RenderBriefPrompt(req *entity.DestinationBriefRequest) (string, error) {
	var buf bytes.Buffer
	if err := briefPrompt.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("render brief prompt: %w", err)
	}
	return buf.String(), nil
}
