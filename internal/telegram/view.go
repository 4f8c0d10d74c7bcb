package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kitbuilder587/wikiseek/internal/view"
)

// chatView implements view.View for one Telegram chat. The result area
// is a single bot message edited in place, an alert is a standalone
// message deleted on dismiss, and the input control is the user's
// message box, mirrored by the last submitted text.
type chatView struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger

	mu           sync.Mutex
	input        string
	frag         view.Fragment
	hasResults   bool
	newSearch    bool
	resultsMsgID int
	alertMsgID   int
}

func newChatView(api *tgbotapi.BotAPI, chatID int64, logger *zap.Logger) *chatView {
	return &chatView{
		api:    api,
		chatID: chatID,
		logger: logger,
	}
}

// SetResults writes the fragment in one API call: the first render
// sends the results message, every later one edits it in place.
func (v *chatView) SetResults(frag view.Fragment) {
	v.mu.Lock()
	v.frag = frag
	v.hasResults = true
	text := FormatFragment(frag)
	keyboard := fragmentKeyboard(frag, v.newSearch)
	msgID := v.resultsMsgID
	v.mu.Unlock()

	if v.api == nil {
		return
	}

	if len(text) > messageLimit {
		v.logger.Debug("results exceed message limit, truncating", zap.Int("length", len(text)))
		text = SplitMessage(text, messageLimit)[0]
	}

	if msgID == 0 {
		msg := tgbotapi.NewMessage(v.chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true
		msg.ReplyMarkup = keyboard
		sent, err := v.api.Send(msg)
		if err != nil {
			v.logger.Error("failed to send results", zap.Error(err))
			return
		}
		v.mu.Lock()
		v.resultsMsgID = sent.MessageID
		v.mu.Unlock()
		return
	}

	edit := tgbotapi.NewEditMessageText(v.chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	edit.ReplyMarkup = &keyboard
	if _, err := v.api.Send(edit); err != nil {
		// Telegram rejects edits that change nothing; re-rendering the
		// same outcome is allowed to hit that.
		v.logger.Debug("results edit rejected", zap.Error(err))
	}
}

func (v *chatView) ClearResults() {
	v.mu.Lock()
	msgID := v.resultsMsgID
	v.resultsMsgID = 0
	v.frag = view.Fragment{}
	v.hasResults = false
	v.mu.Unlock()

	if msgID == 0 || v.api == nil {
		return
	}
	if _, err := v.api.Request(tgbotapi.NewDeleteMessage(v.chatID, msgID)); err != nil {
		v.logger.Debug("failed to delete results message", zap.Error(err))
	}
}

func (v *chatView) ShowAlert(message string) {
	if v.api == nil {
		return
	}
	msg := tgbotapi.NewMessage(v.chatID, message)
	sent, err := v.api.Send(msg)
	if err != nil {
		v.logger.Error("failed to send alert", zap.Error(err))
		return
	}

	v.mu.Lock()
	v.alertMsgID = sent.MessageID
	v.mu.Unlock()
}

func (v *chatView) RemoveAlert() {
	v.mu.Lock()
	msgID := v.alertMsgID
	v.alertMsgID = 0
	v.mu.Unlock()

	// The message may already be gone (chat cleared by the user);
	// deletion failure only gets a debug line.
	if msgID == 0 || v.api == nil {
		return
	}
	if _, err := v.api.Request(tgbotapi.NewDeleteMessage(v.chatID, msgID)); err != nil {
		v.logger.Debug("failed to delete alert message", zap.Error(err))
	}
}

func (v *chatView) SetNewSearchVisible(visible bool) {
	v.mu.Lock()
	v.newSearch = visible
	frag := v.frag
	msgID := v.resultsMsgID
	v.mu.Unlock()

	if msgID == 0 || v.api == nil {
		return
	}

	keyboard := fragmentKeyboard(frag, visible)
	edit := tgbotapi.NewEditMessageReplyMarkup(v.chatID, msgID, keyboard)
	if _, err := v.api.Send(edit); err != nil {
		v.logger.Debug("failed to update keyboard", zap.Error(err))
	}
}

func (v *chatView) SetInput(text string) {
	v.mu.Lock()
	v.input = text
	v.mu.Unlock()
}

func (v *chatView) InputText() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

func (v *chatView) ClearInput() {
	v.SetInput("")
}

// FocusInput prompts for the next query with a forced reply, the chat
// equivalent of putting the cursor back in the search box.
func (v *chatView) FocusInput() {
	if v.api == nil {
		return
	}
	msg := tgbotapi.NewMessage(v.chatID, "Send me a search query.")
	msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true}
	if _, err := v.api.Send(msg); err != nil {
		v.logger.Debug("failed to send input prompt", zap.Error(err))
	}
}

func (v *chatView) IndicateBusy() {
	if v.api == nil {
		return
	}
	action := tgbotapi.NewChatAction(v.chatID, tgbotapi.ChatTyping)
	if _, err := v.api.Request(action); err != nil {
		v.logger.Debug("failed to send chat action", zap.Error(err))
	}
}

// requeryText resolves a keyboard callback index to the query text the
// entry carries.
func (v *chatView) requeryText(index int) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.frag.Entries) {
		return "", false
	}
	return v.frag.Entries[index].Requery, true
}
