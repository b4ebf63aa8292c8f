// Package telegram adapts the Telegram Bot API to the quiz engine: it
// feeds incoming updates into the engine and implements the engine's
// outbound presentation, membership check, and report sink.
package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"quizbot/internal/config"
	"quizbot/internal/engine"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	engine *engine.Engine
	cfg    config.TelegramConfig
	log    *zap.Logger

	// One mailbox goroutine per user keeps that user's events strictly in
	// arrival order while different users are handled concurrently.
	mu        sync.Mutex
	mailboxes map[int64]chan func()
}

func New(cfg config.TelegramConfig, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram API client: %w", err)
	}
	return &Bot{
		api:       api,
		cfg:       cfg,
		log:       log,
		mailboxes: make(map[int64]chan func()),
	}, nil
}

// Attach binds the engine after construction; the engine needs the bot as
// its presenter, so the two cannot be built in one step.
func (b *Bot) Attach(eng *engine.Engine) {
	b.engine = eng
}

// Run consumes the long-poll update stream until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("authorized on Telegram", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		msg := update.Message
		userID := msg.Chat.ID
		if msg.IsCommand() {
			switch msg.Command() {
			case "start":
				b.dispatch(userID, func() { b.engine.HandleStart(ctx, userID) })
			default:
				b.sendTo(userID, "Unknown command. Send /start to begin.")
			}
			return
		}
		text := msg.Text
		if text == "" {
			text = msg.Caption
		}
		if text == "" && (msg.Photo != nil || msg.Document != nil) {
			text = "[attachment]"
		}
		b.dispatch(userID, func() { b.engine.HandleMessage(ctx, userID, text) })

	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			b.log.Warn("failed to answer callback query", zap.Error(err))
		}
		userID := cb.From.ID
		if cb.Message != nil {
			userID = cb.Message.Chat.ID
		}
		data := cb.Data
		b.dispatch(userID, func() { b.engine.HandleSelection(ctx, userID, data) })
	}
}

// dispatch queues an event on the user's mailbox, spawning the mailbox
// worker on first contact. A full mailbox drops the event rather than
// stalling the update loop for everyone else.
func (b *Bot) dispatch(userID int64, fn func()) {
	b.mu.Lock()
	box, ok := b.mailboxes[userID]
	if !ok {
		box = make(chan func(), 16)
		b.mailboxes[userID] = box
		go func() {
			for queued := range box {
				queued()
			}
		}()
	}
	b.mu.Unlock()

	select {
	case box <- fn:
	default:
		b.log.Warn("dropping event, user mailbox full", zap.Int64("user_id", userID))
	}
}

// IsMember implements domain.MembershipChecker against the configured
// channel. No configured channel means the gate is open.
func (b *Bot) IsMember(ctx context.Context, userID int64) (bool, error) {
	if b.cfg.Channel == "" {
		return true, nil
	}
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: b.cfg.Channel,
			UserID:             userID,
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check membership in %s: %w", b.cfg.Channel, err)
	}
	switch member.Status {
	case "creator", "administrator", "member", "restricted":
		return true, nil
	default:
		return false, nil
	}
}

// Forward implements domain.ReportSink by copying the report to the admin
// chat.
func (b *Bot) Forward(ctx context.Context, userID int64, text string) error {
	if b.cfg.AdminChatID == 0 {
		b.log.Warn("no admin chat configured, discarding issue report",
			zap.Int64("user_id", userID))
		return nil
	}
	return b.send(tgbotapi.NewMessage(b.cfg.AdminChatID,
		fmt.Sprintf("Issue report from user %d:\n%s", userID, text)))
}

func (b *Bot) send(c tgbotapi.Chattable) error {
	if _, err := b.api.Send(c); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (b *Bot) sendTo(userID int64, text string) {
	if err := b.send(tgbotapi.NewMessage(userID, text)); err != nil {
		b.log.Warn("failed to send message", zap.Int64("user_id", userID), zap.Error(err))
	}
}
