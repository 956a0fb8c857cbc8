package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/wanderlust-backend/internal/entity"
)

// cleanJSON strips markdown code fences models sometimes wrap JSON in
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func decodeJSON(text string, out any) error {
	text = cleanJSON(text)
	if text == "" {
		return fmt.Errorf("%w: empty response", entity.ErrModelOutput)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrModelOutput, err)
	}
	return nil
}

// checkSuggestions enforces the suggestion output shape and trims string fields
func checkSuggestions(resp *entity.SuggestDestinationsResponse) error {
	if resp == nil || resp.Destinations == nil {
		return fmt.Errorf("%w: destinations are missing", entity.ErrModelOutput)
	}

	for i := range resp.Destinations {
		d := &resp.Destinations[i]
		d.Name = strings.TrimSpace(d.Name)
		d.Description = strings.TrimSpace(d.Description)
		d.ImageURL = strings.TrimSpace(d.ImageURL)
		if d.Name == "" {
			return fmt.Errorf("%w: destination #%d has no name", entity.ErrModelOutput, i+1)
		}
	}
	return nil
}

// checkBrief enforces the brief output shape, echoing the request for omitted fields
func checkBrief(req *entity.DestinationBriefRequest, resp *entity.DestinationBriefResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: brief is missing", entity.ErrModelOutput)
	}

	resp.Summary = strings.TrimSpace(resp.Summary)
	if resp.Summary == "" {
		return fmt.Errorf("%w: summary is empty", entity.ErrModelOutput)
	}
	if strings.TrimSpace(resp.DestinationName) == "" {
		resp.DestinationName = req.DestinationName
	}
	if strings.TrimSpace(resp.ImageURL) == "" {
		resp.ImageURL = req.ImageURL
	}
	return nil
}
