package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/futig/wanderlust-backend/internal/entity"
)

const (
	// Welcome messages
	MsgWelcome = `👋 Hi! I will help you pick your next trip.

Answer a few quick questions about how you like to travel and I will suggest destinations that fit.`

	MsgHelp = `🤖 Bot commands:

/start - Start planning a trip
/history - Show your saved trips
/cancel - Throw away the current answers
/help - Show this help

How it works:
1. Answer the questions with the buttons
2. Check the summary
3. Get destination ideas
4. Tap a destination for a short brief`

	// Question display
	MsgQuestion = `❓ Question %d of %d

%s`
	MsgPickOne  = `Pick one option, then press Next.`
	MsgPickMany = `Pick one or more options, then press Next.`

	// Summary
	MsgSummary = `📋 Here is what you told me:

%s
Ready to look for destinations?`

	// Suggestions
	MsgSearching = `⏳ Looking for destinations that match your answers...`
	MsgResults   = `🌍 Destinations for you:

%s
Tap a destination to learn more.`
	MsgResultsSaved = `💾 Saved to your trip history.`

	// Details
	MsgDetails = `📍 %s

%s`

	// History
	MsgHistoryEmpty = `You have no saved trips yet. Press /start to plan one.`
	MsgHistory      = `🗂 Your saved trips:

%s`

	// Session control
	MsgConfirmReset  = `⚠️ Are you sure? Your answers will be lost.`
	MsgResetDone     = `👋 Answers cleared. Press /start to plan a new trip.`
	MsgResetCanceled = `👍 Carrying on where you left off.`
	MsgUseButtons    = `Please use the buttons below the question, or press /start.`
	MsgNoSession     = `There is nothing to continue. Press /start to plan a trip.`

	// Errors
	ErrGeneric            = `❌ Something went wrong. Please try again or press /start.`
	ErrUnknownCommand     = `❌ Unknown command. Press /start or /help.`
	ErrNetworkIssue       = `❌ Connection problem. Please try again a bit later.`
	ErrServiceUnavailable = `❌ Destination ideas are unavailable right now. Please try again in a few minutes.`
	ErrTimeout            = `❌ That took too long. Please try again.`
	ErrSuggestionFailed   = `❌ Failed to fetch suggestions. Please try again.`
	ErrDetailsFailed      = `❌ Failed to fetch destination details. Please try again.`
	ErrNoSuggestions      = `😔 We couldn't find any destinations matching your preferences. Please try again.`
	ErrBusy               = `⏳ Still looking for destinations, please wait.`
	ErrStale              = `This button is out of date. Here is where you are now.`
	ErrHistory            = `❌ Could not fetch history. Please try again later.`
)

// RenderQuestion formats the question at 0-based step
func RenderQuestion(step, total int, question *entity.Question) string {
	hint := MsgPickMany
	if question.SelectType == entity.SelectTypeSingle {
		hint = MsgPickOne
	}
	text := fmt.Sprintf(MsgQuestion, step+1, total, question.Question)
	return text + "\n\n" + hint
}

// RenderValidation turns answer validation failures into a single message
func RenderValidation(fields map[string]string) string {
	if len(fields) == 0 {
		return ErrGeneric
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, fields[k])
	}
	return "⚠️ " + strings.Join(messages, "\n⚠️ ")
}

// RenderSummary formats the answers collected so far
func RenderSummary(entries []entity.SummaryEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("• %s\n  %s\n", e.Question, e.Answer))
	}
	return fmt.Sprintf(MsgSummary, sb.String())
}

// RenderResults lists the suggested destinations
func RenderResults(destinations []entity.Destination) string {
	var sb strings.Builder
	for i, d := range destinations {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, d.Name))
		if d.Description != "" {
			sb.WriteString(d.Description + "\n")
		}
		sb.WriteString("\n")
	}
	return fmt.Sprintf(MsgResults, sb.String())
}

// RenderDetails formats the one-sentence brief of a destination
func RenderDetails(details *entity.DestinationDetails) string {
	return fmt.Sprintf(MsgDetails, details.DestinationName, details.Summary)
}

// RenderHistory lists saved trips, newest first
func RenderHistory(items []*entity.HistorySummary) string {
	if len(items) == 0 {
		return MsgHistoryEmpty
	}

	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, item.Title, item.Description))
	}
	return fmt.Sprintf(MsgHistory, sb.String())
}
