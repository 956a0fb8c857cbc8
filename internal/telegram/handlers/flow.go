package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/metrics"
	"github.com/futig/wanderlust-backend/internal/questionnaire"
	"github.com/futig/wanderlust-backend/internal/telegram/keyboard"
	"github.com/futig/wanderlust-backend/internal/telegram/render"
	"github.com/futig/wanderlust-backend/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// A submit older than this is considered abandoned, e.g. after a restart
const staleSubmitAfter = 5 * time.Minute

var (
	errNoForm       = errors.New("chat has no questionnaire")
	errStaleMessage = errors.New("callback from an outdated message")
)

// chatLocks serializes state changes of one chat
type chatLocks struct {
	m sync.Map
}

func (l *chatLocks) lock(chatID int64) func() {
	v, _ := l.m.LoadOrStore(chatID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Flow walks a chat through the questionnaire. The form lives in the chat state,
// the interactive message is edited in place where possible.
type Flow struct {
	BaseHandler
	bot           Sender
	stateManager  *state.Manager
	questionnaire *questionnaire.Questionnaire
	suggestions   SuggestionUsecase
	users         UserUsecase
	keyboard      *keyboard.Builder
	logger        *zap.Logger
	locks         *chatLocks
}

func NewFlow(
	bot Sender,
	stateManager *state.Manager,
	q *questionnaire.Questionnaire,
	suggestions SuggestionUsecase,
	users UserUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *Flow {
	return &Flow{
		BaseHandler: BaseHandler{
			messageSender: NewMessageSender(bot, logger),
		},
		bot:           bot,
		stateManager:  stateManager,
		questionnaire: q,
		suggestions:   suggestions,
		users:         users,
		keyboard:      kb,
		logger:        logger,
		locks:         &chatLocks{},
	}
}

// load returns the chat state, releasing a submit that never finished
func (f *Flow) load(ctx context.Context, chatID int64) (*state.StateData, error) {
	data, err := f.stateManager.GetStateData(ctx, chatID)
	if err != nil {
		return nil, err
	}
	f.releaseStaleSubmit(ctx, data)
	return data, nil
}

func (f *Flow) releaseStaleSubmit(ctx context.Context, data *state.StateData) {
	if data.Form == nil || data.Form.Phase != entity.FormPhaseSubmitting {
		return
	}
	if time.Since(data.ProcessingStarted) < staleSubmitAfter {
		return
	}
	ctxzap.Warn(ctx, "releasing stale submit", zap.String("form_id", data.Form.ID))
	if err := data.Form.FailSubmit(); err == nil {
		data.IsProcessing = false
	}
}

func (f *Flow) save(ctx context.Context, chatID int64, data *state.StateData) error {
	if err := f.stateManager.UpdateStateData(ctx, chatID, data); err != nil {
		return fmt.Errorf("save chat state: %w", err)
	}
	return nil
}

// current checks that the chat has a form and the callback comes from its interactive message
func (f *Flow) current(data *state.StateData, msg *Message) error {
	if data.Form == nil {
		return errNoForm
	}
	if msg.CallbackID != "" && data.LastMessageID != 0 && msg.MessageID != data.LastMessageID {
		return errStaleMessage
	}
	return nil
}

// view renders the message matching the form phase
func (f *Flow) view(data *state.StateData) (string, *tgbotapi.InlineKeyboardMarkup) {
	form := data.Form
	if form == nil {
		kb := f.keyboard.StartKeyboard()
		return render.MsgWelcome, &kb
	}

	switch form.Phase {
	case entity.FormPhaseAnswering:
		question, err := form.CurrentQuestion(f.questionnaire)
		if err != nil {
			return render.ErrGeneric, nil
		}
		kb := f.keyboard.QuestionKeyboard(question, form.Selections(f.questionnaire), form.Step > 0)
		return render.RenderQuestion(form.Step, f.questionnaire.Len(), question), &kb
	case entity.FormPhaseSummary:
		kb := f.keyboard.SummaryKeyboard()
		return render.RenderSummary(f.questionnaire.Summary(form.Answers)), &kb
	case entity.FormPhaseCompleted:
		kb := f.keyboard.ResultsKeyboard(form.Suggestions)
		return render.RenderResults(form.Suggestions), &kb
	default:
		return render.MsgSearching, nil
	}
}

// show edits message editID into the current view, or sends a new interactive message
func (f *Flow) show(ctx context.Context, chatID int64, data *state.StateData, editID int) error {
	text, markup := f.view(data)

	if editID != 0 && editID == data.LastMessageID {
		var edit tgbotapi.Chattable
		if markup != nil {
			edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, editID, text, *markup)
		} else {
			edit = tgbotapi.NewEditMessageText(chatID, editID, text)
		}
		_, err := f.bot.Send(edit)
		if err == nil || isNotModified(err) {
			return nil
		}
		ctxzap.Warn(ctx, "failed to edit message, sending a new one",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	sent, err := f.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	data.LastMessageID = sent.MessageID
	return f.save(ctx, chatID, data)
}

func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}

// userID returns the user linked to the chat, linking the Telegram account on first use
func (f *Flow) userID(ctx context.Context, msg *Message) string {
	session, err := f.stateManager.GetSession(ctx, msg.ChatID)
	if err == nil && session.UserID != "" {
		return session.UserID
	}
	if err != nil && !errors.Is(err, state.ErrSessionNotFound) {
		ctxzap.Warn(ctx, "failed to get chat session", zap.Error(err))
		return ""
	}
	if f.users == nil {
		return ""
	}

	user, err := f.users.TelegramUser(ctx, msg.UserID, msg.UserName)
	if err != nil {
		ctxzap.Warn(ctx, "failed to resolve telegram user, history disabled",
			zap.Error(err),
			zap.Int64("telegram_id", msg.UserID),
		)
		return ""
	}
	if _, err := f.stateManager.LinkUser(ctx, msg.ChatID, user.ID); err != nil {
		ctxzap.Warn(ctx, "failed to link chat to user", zap.Error(err))
	}
	return user.ID
}

// Start begins a new questionnaire in the chat, dropping any previous progress
func (f *Flow) Start(ctx context.Context, msg *Message) error {
	f.userID(ctx, msg)

	unlock := f.locks.lock(msg.ChatID)
	defer unlock()

	data, err := f.load(ctx, msg.ChatID)
	if err != nil {
		return err
	}
	if data.Form != nil && data.Form.Phase == entity.FormPhaseSubmitting {
		return entity.ErrSubmitInProgress
	}

	data.Form = questionnaire.NewForm()
	data.PendingConfirmation = ""
	data.IsProcessing = false
	metrics.QuestionnaireSessionsStarted.WithLabelValues("telegram").Inc()

	ctxzap.Info(ctx, "questionnaire started", zap.String("form_id", data.Form.ID))
	return f.show(ctx, msg.ChatID, data, 0)
}

// Toggle flips option i of the current question
func (f *Flow) Toggle(ctx context.Context, msg *Message, data *state.StateData, i int) error {
	if err := f.current(data, msg); err != nil {
		return err
	}
	question, err := data.Form.CurrentQuestion(f.questionnaire)
	if err != nil {
		return err
	}
	if i >= len(question.Options) {
		return fmt.Errorf("%w: option %d", errStaleMessage, i)
	}
	return f.toggle(ctx, msg.ChatID, data, question.Options[i])
}

// ToggleText flips the option typed by the user
func (f *Flow) ToggleText(ctx context.Context, msg *Message, data *state.StateData) error {
	if err := f.current(data, msg); err != nil {
		return err
	}
	question, err := data.Form.CurrentQuestion(f.questionnaire)
	if err != nil {
		return err
	}
	return f.toggle(ctx, msg.ChatID, data, matchOption(question, msg.Text))
}

func (f *Flow) toggle(ctx context.Context, chatID int64, data *state.StateData, option string) error {
	if err := data.Form.Toggle(f.questionnaire, option); err != nil {
		return err
	}
	if err := f.save(ctx, chatID, data); err != nil {
		return err
	}
	return f.show(ctx, chatID, data, data.LastMessageID)
}

// matchOption finds the option typed by the user, ignoring case and surrounding spaces
func matchOption(question *entity.Question, text string) string {
	text = strings.TrimSpace(text)
	for _, o := range question.Options {
		if strings.EqualFold(o, text) {
			return o
		}
	}
	return text
}

// Next validates the current question and moves on, ending at the summary
func (f *Flow) Next(ctx context.Context, msg *Message, data *state.StateData) error {
	if err := f.current(data, msg); err != nil {
		return err
	}
	if err := data.Form.Next(f.questionnaire); err != nil {
		return err
	}
	if err := f.save(ctx, msg.ChatID, data); err != nil {
		return err
	}
	return f.show(ctx, msg.ChatID, data, msg.MessageID)
}

// Back returns to the previous question or leaves the summary
func (f *Flow) Back(ctx context.Context, msg *Message, data *state.StateData) error {
	if err := f.current(data, msg); err != nil {
		return err
	}
	if err := data.Form.Back(); err != nil {
		return err
	}
	if err := f.save(ctx, msg.ChatID, data); err != nil {
		return err
	}
	return f.show(ctx, msg.ChatID, data, msg.MessageID)
}

// Refine reopens the first question keeping the answers. Results stay in the chat.
func (f *Flow) Refine(ctx context.Context, msg *Message, data *state.StateData) error {
	if err := f.current(data, msg); err != nil {
		return err
	}
	if err := data.Form.Refine(); err != nil {
		return err
	}
	if err := f.save(ctx, msg.ChatID, data); err != nil {
		return err
	}
	return f.show(ctx, msg.ChatID, data, 0)
}

// Submit asks for destinations. The chat lock is released while the model works,
// so other clicks see the submit in progress instead of queueing.
func (f *Flow) Submit(ctx context.Context, msg *Message) error {
	unlock := f.locks.lock(msg.ChatID)
	data, err := f.load(ctx, msg.ChatID)
	if err == nil {
		err = f.current(data, msg)
	}
	if err == nil {
		err = data.Form.BeginSubmit(f.questionnaire)
	}
	if err != nil {
		unlock()
		return err
	}

	data.IsProcessing = true
	data.ProcessingStarted = time.Now()
	if err := f.save(ctx, msg.ChatID, data); err != nil {
		unlock()
		return err
	}
	if err := f.show(ctx, msg.ChatID, data, msg.MessageID); err != nil {
		ctxzap.Warn(ctx, "failed to show searching message", zap.Error(err))
	}
	formID := data.Form.ID
	answers := data.Form.Answers.Clone()
	unlock()

	userID := f.userID(ctx, msg)

	typing := NewTypingNotifier(f.bot, msg.ChatID, f.logger)
	typing.Start(ctx)
	resp, suggestErr := f.suggestions.Suggest(ctx, userID, answers)
	typing.Stop()

	unlock = f.locks.lock(msg.ChatID)
	defer unlock()

	data, err = f.stateManager.GetStateData(ctx, msg.ChatID)
	if err != nil {
		return err
	}
	if data.Form == nil || data.Form.ID != formID || data.Form.Phase != entity.FormPhaseSubmitting {
		ctxzap.Info(ctx, "dropping suggestions of an abandoned questionnaire", zap.String("form_id", formID))
		return nil
	}
	data.IsProcessing = false

	if suggestErr != nil {
		if err := data.Form.FailSubmit(); err != nil {
			return err
		}
		if err := f.save(ctx, msg.ChatID, data); err != nil {
			return err
		}
		f.HandleError(ctx, msg.ChatID, suggestErr)
		return f.show(ctx, msg.ChatID, data, 0)
	}

	if err := data.Form.CompleteSubmit(resp.Destinations, resp.HistoryItemID); err != nil {
		return err
	}

	text, markup := f.view(data)
	sent, err := sendCriticalMessage(f.bot, msg.ChatID, text, *markup, f.logger)
	if err == nil {
		data.LastMessageID = sent.MessageID
	}
	if err := f.save(ctx, msg.ChatID, data); err != nil {
		return err
	}
	if resp.HistoryItemID != nil {
		f.sendMessage(msg.ChatID, render.MsgResultsSaved, nil)
	}

	ctxzap.Info(ctx, "destinations delivered",
		zap.String("form_id", formID),
		zap.Int("count", len(resp.Destinations)),
	)
	return nil
}

// Details sends the brief of destination i of the results
func (f *Flow) Details(ctx context.Context, msg *Message, data *state.StateData, i int) error {
	if data.Form == nil {
		return errNoForm
	}
	if data.Form.Phase != entity.FormPhaseCompleted || i >= len(data.Form.Suggestions) {
		return errStaleMessage
	}
	dest := data.Form.Suggestions[i]

	typing := NewTypingNotifier(f.bot, msg.ChatID, f.logger)
	typing.Start(ctx)
	details, err := f.suggestions.Details(ctx, &entity.DestinationDetailsRequest{
		DestinationName: dest.Name,
		ImageURL:        dest.ImageURL,
	})
	typing.Stop()
	if err != nil {
		return err
	}

	f.sendMessage(msg.ChatID, render.RenderDetails(details), f.keyboard.DetailsKeyboard(details.SearchURL))
	return nil
}

// Reset drops the form of the chat, keeping the user link
func (f *Flow) Reset(ctx context.Context, chatID int64) error {
	unlock := f.locks.lock(chatID)
	defer unlock()

	data, err := f.stateManager.GetStateData(ctx, chatID)
	if err != nil {
		return err
	}
	data.Form = nil
	data.PendingConfirmation = ""
	data.IsProcessing = false
	data.LastMessageID = 0
	return f.save(ctx, chatID, data)
}

// Resume re-sends the current view after a stale click or a cancelled reset
func (f *Flow) Resume(ctx context.Context, chatID int64) error {
	unlock := f.locks.lock(chatID)
	defer unlock()

	data, err := f.stateManager.GetStateData(ctx, chatID)
	if err != nil {
		return err
	}
	data.PendingConfirmation = ""
	return f.show(ctx, chatID, data, 0)
}
