package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/varlabz/ask-telegram-bot/internal/agent"
	"github.com/varlabz/ask-telegram-bot/internal/models"
	"github.com/varlabz/ask-telegram-bot/internal/storage"
	"go.uber.org/zap"
)

// Sender delivers a reply into the chat and thread a message came from.
type Sender interface {
	Reply(msg models.InboundMessage, text string) error
}

// Service routes inbound messages: control commands mutate the
// activation state, everything else goes through the gate and, when
// admitted, to the backend agent. One Service instance handles all
// messages; each message is processed by its own goroutine.
type Service struct {
	storage storage.Storage
	gate    *Gate
	factory agent.Factory
	styler  *agent.Styler
	sender  Sender
	logger  *zap.Logger

	// mu guards the activation transitions so the persisted record and
	// the agent handle never diverge.
	mu    sync.Mutex
	agent agent.Agent
}

func NewService(store storage.Storage, factory agent.Factory, styler *agent.Styler, sender Sender, logger *zap.Logger) *Service {
	s := &Service{
		storage: store,
		gate:    NewGate(store),
		factory: factory,
		styler:  styler,
		sender:  sender,
		logger:  logger,
	}

	// Restore the agent session when a persisted activation survived a
	// restart.
	if store.Current().Active() {
		s.agent = factory()
	}

	return s
}

// HandleMessage processes one inbound message to completion. It never
// panics and never returns an error to the transport; every failure is
// handled here.
func (s *Service) HandleMessage(ctx context.Context, msg models.InboundMessage) {
	switch msg.Text {
	case cmdStart:
		s.handleStart(ctx, msg)
	case cmdStop, cmdShutUp:
		s.handleStop(ctx, msg)
	case cmdStatus:
		s.handleStatus(ctx, msg)
	case cmdHelp:
		s.reply(msg, replyHelp)
	default:
		if strings.HasPrefix(msg.Text, "/") && !hasLegacyPrefix(msg.Text) {
			s.logger.Debug("Ignoring unrecognized command",
				zap.String("text", msg.Text),
				zap.Int64("chat_id", msg.ChatID))
			return
		}
		s.handleQuestion(ctx, msg)
	}
}

func (s *Service) handleStart(ctx context.Context, msg models.InboundMessage) {
	topicID := ResolveTopic(msg)

	s.mu.Lock()
	err := s.storage.Activate(msg.ChatID, topicID)
	if err == nil {
		s.agent = s.factory()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to persist activation",
			zap.Error(err),
			zap.Int64("chat_id", msg.ChatID),
			zap.Int64p("topic_id", topicID))
		s.reply(msg, replySaveFailed)
		return
	}

	s.logger.Info("Activated",
		zap.Int64("chat_id", msg.ChatID),
		zap.Int64p("topic_id", topicID))
	s.reply(msg, s.styler.Rephrase(ctx, replyActivated))
}

func (s *Service) handleStop(ctx context.Context, msg models.InboundMessage) {
	s.mu.Lock()
	err := s.storage.Deactivate()
	if err == nil {
		s.agent = nil
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to persist deactivation",
			zap.Error(err),
			zap.Int64("chat_id", msg.ChatID))
		s.reply(msg, replySaveFailed)
		return
	}

	s.logger.Info("Deactivated", zap.Int64("chat_id", msg.ChatID))
	s.reply(msg, s.styler.Rephrase(ctx, replyDeactivated))
}

func (s *Service) handleStatus(ctx context.Context, msg models.InboundMessage) {
	record := s.storage.Current()
	switch {
	case !record.Active():
		s.reply(msg, s.styler.Rephrase(ctx, replyNotActivated))
	case record.Matches(msg.ChatID, ResolveTopic(msg)):
		s.reply(msg, s.styler.Rephrase(ctx, replyActiveHere))
	default:
		s.reply(msg, s.styler.Rephrase(ctx, replyActiveElsewhere))
	}
}

func (s *Service) handleQuestion(ctx context.Context, msg models.InboundMessage) {
	switch s.gate.Check(msg) {
	case RejectedInactive:
		s.logger.Debug("Not activated, ignoring message",
			zap.Int64("chat_id", msg.ChatID))
	case RejectedLocation:
		s.logger.Debug("Message from unauthorized location",
			zap.Int64("chat_id", msg.ChatID),
			zap.Int64p("topic_id", ResolveTopic(msg)))
		if msg.HasText() {
			s.reply(msg, s.styler.Rephrase(ctx, replyWrongPlace))
		}
	case RejectedNoText:
		if msg.HasPhoto {
			s.reply(msg, replyPhotoIgnored)
			return
		}
		s.reply(msg, s.styler.Rephrase(ctx, replyNoText))
	case Admitted:
		s.ask(ctx, msg)
	}
}

// currentAgent returns a snapshot of the agent handle. It may be nil if
// a deactivation raced in after the gate check.
func (s *Service) currentAgent() agent.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent
}

func (s *Service) reply(msg models.InboundMessage, text string) {
	if err := s.sender.Reply(msg, text); err != nil {
		s.logger.Error("Failed to send reply",
			zap.Error(err),
			zap.Int64("chat_id", msg.ChatID))
	}
}
