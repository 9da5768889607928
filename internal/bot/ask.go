package bot

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/varlabz/ask-telegram-bot/internal/models"
	"go.uber.org/zap"
)

// legacyPrefixes are the old question markers. They are optional sugar
// and stripped before asking; plain text in the authorized topic is a
// question on its own.
var legacyPrefixes = []string{"/ask ", "/вопрос ", "?"}

func hasLegacyPrefix(text string) bool {
	for _, prefix := range legacyPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

func normalizeQuestion(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range legacyPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			break
		}
	}
	return strings.TrimSpace(text)
}

// ask forwards an admitted message to the backend agent and replies
// with the answer. Backend failures are contained here: the user gets a
// fixed notice and the error is logged with the question.
func (s *Service) ask(ctx context.Context, msg models.InboundMessage) {
	question := normalizeQuestion(msg.Text)
	if question == "" {
		s.reply(msg, s.styler.Rephrase(ctx, replyNoText))
		return
	}

	handle := s.currentAgent()
	if handle == nil {
		// Deactivated between the gate check and here.
		s.logger.Debug("No agent session, dropping question",
			zap.Int64("chat_id", msg.ChatID))
		return
	}

	questionID := uuid.New().String()
	s.logger.Info("Question received",
		zap.String("question_id", questionID),
		zap.Int64("chat_id", msg.ChatID),
		zap.String("question", question))

	answer, err := handle.Run(ctx, question)
	if err != nil {
		s.logger.Error("Agent failed to answer",
			zap.Error(err),
			zap.String("question_id", questionID),
			zap.Int64("chat_id", msg.ChatID),
			zap.String("question", question))
		s.reply(msg, replyAskFailed)
		return
	}

	s.logger.Info("Question answered",
		zap.String("question_id", questionID),
		zap.Int("answer_len", len(answer)))

	if stats := handle.Stats(); stats != "" {
		answer = answer + "\n\n" + stats
	}
	s.reply(msg, answer)
}
