package telegram

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kitbuilder587/wikiseek/internal/controller"
	"github.com/kitbuilder587/wikiseek/internal/metrics"
	"github.com/kitbuilder587/wikiseek/internal/ratelimit"
	"github.com/kitbuilder587/wikiseek/internal/search"
)

type BotConfig struct {
	Token             string
	Debug             bool
	RequestsPerMinute int
	AlertTTL          time.Duration
	SessionTTL        time.Duration
}

type Bot struct {
	api         *tgbotapi.BotAPI
	client      search.Client
	logger      *zap.Logger
	metrics     *metrics.Metrics
	handler     *Handler
	rateLimiter *ratelimit.Limiter
	sessions    *sessionStore
	alertTTL    time.Duration
	wg          sync.WaitGroup
}

func New(cfg BotConfig, client search.Client, logger *zap.Logger, m *metrics.Metrics) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	api.Debug = cfg.Debug

	bot := &Bot{
		api:     api,
		client:  client,
		logger:  logger,
		metrics: m,
		rateLimiter: ratelimit.New(ratelimit.Config{
			RequestsPerMinute: cfg.RequestsPerMinute,
		}),
		sessions: newSessionStore(cfg.SessionTTL),
		alertTTL: cfg.AlertTTL,
	}

	bot.handler = NewHandler(bot)

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
	)

	return bot, nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot started, waiting for updates")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("bot stopping, waiting for handlers to finish")
			b.api.StopReceivingUpdates()
			b.shutdown()
			b.logger.Info("all handlers finished")
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil && update.CallbackQuery == nil {
				continue
			}
			b.wg.Add(1)
			go func(upd tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			chatID := int64(0)
			if update.Message != nil && update.Message.Chat != nil {
				chatID = update.Message.Chat.ID
			} else if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
				chatID = update.CallbackQuery.Message.Chat.ID
			}
			b.logger.Error("panic in update handler",
				zap.Any("panic", r),
				zap.Int64("chat_id", chatID),
			)
		}
	}()

	switch {
	case update.Message != nil:
		b.handler.HandleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handler.HandleCallback(ctx, update.CallbackQuery)
	}
}

// shutdown drains in-flight handlers and stops the background
// goroutines of the session store and the rate limiter.
func (b *Bot) shutdown() {
	b.wg.Wait()
	b.sessions.Stop()
	b.rateLimiter.Stop()
}

// session returns the live session for a chat, creating one on first
// contact or after the previous session aged out. Creation happens
// under the store lock so two concurrent first messages share one
// session.
func (b *Bot) session(chatID int64) *session {
	return b.sessions.getOrCreate(chatID, func() *session {
		logger := b.logger.With(zap.Int64("chat_id", chatID))
		v := newChatView(b.api, chatID, logger)
		return &session{
			view: v,
			ctrl: controller.New(v, b.client, logger, b.metrics, controller.Config{AlertTTL: b.alertTTL}),
		}
	})
}

func (b *Bot) Send(chatID int64, text string) error {
	if b.api == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) answerCallback(id string) {
	if b.api == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		b.logger.Debug("failed to answer callback", zap.Error(err))
	}
}

func (b *Bot) RecordRateLimitHit(chatID int64) {
	if b.metrics != nil {
		b.metrics.RecordRateLimitHit(strconv.FormatInt(chatID, 10))
	}
}
