package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sandeepkv93/plantbot/internal/garden"
	"github.com/sandeepkv93/plantbot/internal/session"
)

const pollTimeoutSeconds = 30

// Bot routes Telegram updates into repository operations and session
// flows. It holds no domain state of its own; everything lives in the
// persisted document or in the per-user session scratch area.
type Bot struct {
	api      *tgbotapi.BotAPI
	repo     *garden.Repository
	sessions *session.Manager
	log      *slog.Logger
}

func New(api *tgbotapi.BotAPI, repo *garden.Repository, sessions *session.Manager, log *slog.Logger) *Bot {
	return &Bot{api: api, repo: repo, sessions: sessions, log: log}
}

// Run consumes updates until ctx is cancelled. With a webhook URL the bot
// registers the webhook and serves it on addr; otherwise it long-polls.
func (b *Bot) Run(ctx context.Context, webhookURL, addr string) error {
	if webhookURL != "" {
		return b.runWebhook(ctx, webhookURL, addr)
	}
	return b.runPolling(ctx)
}

func (b *Bot) runPolling(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(cfg)
	b.log.Info("bot started", "mode", "polling", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) runWebhook(ctx context.Context, webhookURL, addr string) error {
	wh, err := tgbotapi.NewWebhook(fmt.Sprintf("%s/%s", webhookURL, b.api.Token))
	if err != nil {
		return fmt.Errorf("bot: build webhook config: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("bot: register webhook: %w", err)
	}
	updates := b.api.ListenForWebhook("/" + b.api.Token)

	srv := &http.Server{Addr: addr}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	b.log.Info("bot started", "mode", "webhook", "addr", addr, "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("bot: webhook server: %w", err)
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Error("send failed", "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyMenu(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	b.send(msg)
}

// edit rewrites the message the pressed button was attached to.
func (b *Bot) edit(q *tgbotapi.CallbackQuery, text string) {
	if q.Message == nil {
		return
	}
	b.send(tgbotapi.NewEditMessageText(q.Message.Chat.ID, q.Message.MessageID, text))
}

func (b *Bot) editMenu(q *tgbotapi.CallbackQuery, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if q.Message == nil {
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(q.Message.Chat.ID, q.Message.MessageID, text, kb))
}
