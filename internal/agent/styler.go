package agent

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// StylerPrompt is the system prompt for the styling session.
const StylerPrompt = "Перефразируй сообщение пользователя, сохранив смысл и язык. Ответь только перефразированным текстом, без пояснений."

// Styler paraphrases fixed confirmation templates into natural text
// through an independent agent session. It never fails: if the backend
// call errors out or returns nothing, the literal template is used so
// command feedback is never lost.
type Styler struct {
	agent  Agent
	logger *zap.Logger
}

// NewStyler wraps an agent session. A nil agent disables styling and
// every template passes through verbatim.
func NewStyler(agent Agent, logger *zap.Logger) *Styler {
	return &Styler{
		agent:  agent,
		logger: logger,
	}
}

func (s *Styler) Rephrase(ctx context.Context, template string) string {
	if s.agent == nil {
		return template
	}

	styled, err := s.agent.Run(ctx, template)
	if err != nil {
		s.logger.Warn("Failed to style reply, using template",
			zap.Error(err),
			zap.String("template", template))
		return template
	}

	styled = strings.TrimSpace(styled)
	if styled == "" {
		return template
	}
	return styled
}
