package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

// HandleMessage treats any non-command message as one search
// submission; there is no search-as-you-type on this surface.
func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	h.bot.logger.Info("received message",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Bool("is_command", msg.IsCommand()),
	)

	if msg.IsCommand() {
		h.handleCommand(ctx, msg)
		return
	}

	h.handleSearch(ctx, msg)
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.bot.Send(msg.Chat.ID, "Hi! Send me any text and I will search Wikipedia for it.\n\nUse /help to see what I can do.")
	case "help":
		h.handleHelp(ctx, msg)
	case "new":
		sess := h.bot.session(msg.Chat.ID)
		sess.ctrl.Reset()
	default:
		h.bot.Send(msg.Chat.ID, "Unknown command. Use /help for a list.")
	}
}

func (h *Handler) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	helpText := `<b>Wikipedia search</b>

Send any text to search. Each result shows the article link, a snippet, and the article word count.

Buttons under the results:
- <b>Search: &lt;title&gt;</b> runs a new search for that article's title
- <b>Search "..."</b> runs the suggested query when nothing matched
- <b>New search</b> clears the results for a fresh query

Commands:
/new - clear the results for a fresh query
/help - this message`

	h.bot.Send(msg.Chat.ID, helpText)
}

func (h *Handler) handleSearch(ctx context.Context, msg *tgbotapi.Message) {
	if !h.bot.rateLimiter.Allow(msg.Chat.ID) {
		h.bot.logger.Warn("rate limit exceeded",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Time("reset_at", h.bot.rateLimiter.ResetTime(msg.Chat.ID)),
		)
		h.bot.RecordRateLimitHit(msg.Chat.ID)
		h.bot.Send(msg.Chat.ID, "Too many searches. Please wait a minute.")
		return
	}

	sess := h.bot.session(msg.Chat.ID)
	sess.view.SetInput(msg.Text)
	sess.ctrl.Submit(ctx, msg.Text)
}

// HandleCallback routes the inline keyboard affordances: entry
// "search again" buttons and the "New search" reset.
func (h *Handler) HandleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Answer right away, otherwise the client keeps its spinner while
	// the search runs.
	h.bot.answerCallback(cb.ID)

	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	sess := h.bot.session(chatID)

	switch {
	case cb.Data == callbackNewSearch:
		sess.ctrl.Reset()

	case strings.HasPrefix(cb.Data, callbackRequeryPrefix):
		index, err := strconv.Atoi(strings.TrimPrefix(cb.Data, callbackRequeryPrefix))
		if err != nil {
			h.bot.logger.Warn("bad callback data", zap.String("data", cb.Data))
			return
		}
		text, ok := sess.view.requeryText(index)
		if !ok {
			// Stale keyboard from an aged-out session.
			h.bot.logger.Debug("callback index out of range", zap.Int("index", index))
			return
		}
		sess.ctrl.Requery(ctx, text)

	default:
		h.bot.logger.Warn("unknown callback data", zap.String("data", cb.Data))
	}
}
