package render

import (
	"testing"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestRenderQuestion(t *testing.T) {
	single := &entity.Question{Question: "Where to?", SelectType: entity.SelectTypeSingle}
	text := RenderQuestion(1, 12, single)
	assert.Contains(t, text, "Question 2 of 12")
	assert.Contains(t, text, "Where to?")
	assert.Contains(t, text, MsgPickOne)

	multiple := &entity.Question{Question: "Mood?", SelectType: entity.SelectTypeMultiple}
	assert.Contains(t, RenderQuestion(0, 12, multiple), MsgPickMany)
}

func TestRenderValidation(t *testing.T) {
	assert.Equal(t, ErrGeneric, RenderValidation(nil))
	assert.Equal(t, "⚠️ a\n⚠️ b", RenderValidation(map[string]string{"z": "b", "k": "a"}))
}

func TestRenderSummary(t *testing.T) {
	text := RenderSummary([]entity.SummaryEntry{
		{Key: "mood", Question: "Mood?", Answer: "Relaxing, Romantic"},
	})
	assert.Contains(t, text, "• Mood?\n  Relaxing, Romantic")
	assert.Contains(t, text, "Ready to look for destinations?")
}

func TestRenderResults(t *testing.T) {
	text := RenderResults([]entity.Destination{
		{Name: "Kyoto", Description: "Temples and gardens."},
		{Name: "Oslo"},
	})
	assert.Contains(t, text, "1. Kyoto\nTemples and gardens.")
	assert.Contains(t, text, "2. Oslo")
}

func TestRenderHistory(t *testing.T) {
	assert.Equal(t, MsgHistoryEmpty, RenderHistory(nil))

	text := RenderHistory([]*entity.HistorySummary{
		{Title: "Trip from March 3, 2026", Description: "You received 4 destination suggestions."},
	})
	assert.Contains(t, text, "1. Trip from March 3, 2026")
	assert.Contains(t, text, "You received 4 destination suggestions.")
}

func TestRenderDetails(t *testing.T) {
	text := RenderDetails(&entity.DestinationDetails{DestinationName: "Kyoto", Summary: "Calm temples."})
	assert.Equal(t, "📍 Kyoto\n\nCalm temples.", text)
}
