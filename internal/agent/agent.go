package agent

import "context"

// Agent answers a single question. Implementations may keep internal
// conversational memory; callers only see text in, text out.
type Agent interface {
	Run(ctx context.Context, question string) (string, error)
	// Stats renders a usage summary for appending to answers, empty
	// when there is nothing to report.
	Stats() string
}

// Factory creates a fresh agent session. The bot calls it on every
// activation so each activation gets its own backend session.
type Factory func() Agent
