package keyboard

import (
	"github.com/futig/wanderlust-backend/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	markSelected   = "✅ "
	maxButtonTitle = 40
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the initial start button
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧭 Plan my trip", EncodeCallback(ActionFlow, FlowStart)),
		),
	)
}

// QuestionKeyboard creates one button per option, selected ones marked, followed by navigation
func (b *Builder) QuestionKeyboard(question *entity.Question, selections []string, hasPrevious bool) tgbotapi.InlineKeyboardMarkup {
	selected := make(map[string]bool, len(selections))
	for _, s := range selections {
		selected[s] = true
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(question.Options)/2+2)
	var row []tgbotapi.InlineKeyboardButton
	for i, option := range question.Options {
		title := truncate(option)
		if selected[option] {
			title = markSelected + title
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(title, EncodeIndex(ActionOption, i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	nav := []tgbotapi.InlineKeyboardButton{}
	if hasPrevious {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Back", EncodeCallback(ActionNav, NavBack)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", EncodeCallback(ActionNav, NavNext)))
	rows = append(rows, nav)

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// SummaryKeyboard creates submit and edit buttons below the answer summary
func (b *Builder) SummaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔎 Find destinations", EncodeCallback(ActionFlow, FlowSubmit)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Back to questions", EncodeCallback(ActionNav, NavBack)),
		),
	)
}

// ResultsKeyboard creates one button per destination and a refine button
func (b *Builder) ResultsKeyboard(destinations []entity.Destination) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(destinations)+1)
	for i, d := range destinations {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📍 "+truncate(d.Name), EncodeIndex(ActionDest, i)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Refine my choices", EncodeCallback(ActionFlow, FlowRefine)),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// DetailsKeyboard links the destination to a web search
func (b *Builder) DetailsKeyboard(searchURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🌐 Learn more", searchURL),
		),
	)
}

// ConfirmResetKeyboard asks before throwing the answers away
func (b *Builder) ConfirmResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, start over", EncodeCallback(ActionConfirm, ConfirmYes)),
			tgbotapi.NewInlineKeyboardButtonData("❌ No, continue", EncodeCallback(ActionConfirm, ConfirmNo)),
		),
	)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxButtonTitle {
		return s
	}
	return string(r[:maxButtonTitle-1]) + "…"
}
