package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/varlabz/ask-telegram-bot/internal/agent"
	"github.com/varlabz/ask-telegram-bot/internal/models"
	"github.com/varlabz/ask-telegram-bot/internal/storage"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// Bot wires the Telegram transport to the message routing service.
type Bot struct {
	api     *tele.Bot
	service *Service
	logger  *zap.Logger
}

func New(token string, store storage.Storage, factory agent.Factory, styler *agent.Styler, logger *zap.Logger) (*Bot, error) {
	api, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 60 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		api:    api,
		logger: logger,
	}
	b.service = NewService(store, factory, styler, b, logger)

	handler := b.recoverPanics(b.onMessage)
	api.Handle(tele.OnText, handler)
	api.Handle(tele.OnPhoto, handler)

	return b, nil
}

// Start runs the long-poll loop until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("Bot started")
	b.api.Start()
}

func (b *Bot) Stop() {
	b.api.Stop()
}

// onMessage handles every text and photo update. Telebot runs each
// handler in its own goroutine, so messages are processed concurrently.
func (b *Bot) onMessage(c tele.Context) error {
	message := c.Message()
	if message == nil {
		return nil
	}

	ctx := context.Background()
	b.service.HandleMessage(ctx, newInbound(message))
	return nil
}

// recoverPanics keeps one bad message from taking down the update loop.
func (b *Bot) recoverPanics(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic recovered in handler",
					zap.Any("panic", r),
					zap.String("stack", string(debug.Stack())))
			}
		}()
		return next(c)
	}
}

// Reply sends text back into the chat and thread the message came from.
func (b *Bot) Reply(msg models.InboundMessage, text string) error {
	opts := &tele.SendOptions{
		ReplyTo: &tele.Message{
			ID:   msg.MessageID,
			Chat: &tele.Chat{ID: msg.ChatID},
		},
	}
	if msg.RawThreadID != nil {
		opts.ThreadID = int(*msg.RawThreadID)
	}

	if _, err := b.api.Send(tele.ChatID(msg.ChatID), text, opts); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// newInbound builds the transport-independent message view once at the
// boundary.
func newInbound(m *tele.Message) models.InboundMessage {
	msg := models.InboundMessage{
		ChatID:    m.Chat.ID,
		MessageID: m.ID,
		IsForum:   m.Chat.Type == tele.ChatSuperGroup && m.Chat.IsForum,
		IsTopic:   m.TopicMessage,
		Text:      m.Text,
		HasPhoto:  m.Photo != nil,
	}
	if m.ThreadID != 0 {
		id := int64(m.ThreadID)
		msg.RawThreadID = &id
	}
	if m.ReplyTo != nil {
		msg.IsReply = true
		msg.RepliedIsTopic = m.ReplyTo.TopicMessage
		if m.ReplyTo.ThreadID != 0 {
			id := int64(m.ReplyTo.ThreadID)
			msg.RepliedThreadID = &id
		}
	}
	return msg
}
