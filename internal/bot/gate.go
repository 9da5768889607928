package bot

import (
	"github.com/varlabz/ask-telegram-bot/internal/models"
	"github.com/varlabz/ask-telegram-bot/internal/storage"
)

// Verdict is the gate's decision for one inbound message.
type Verdict int

const (
	// Admitted means the message is eligible for the ask pipeline.
	Admitted Verdict = iota
	// RejectedInactive means no chat is activated.
	RejectedInactive
	// RejectedLocation means the message came from outside the
	// authorized chat or topic.
	RejectedLocation
	// RejectedNoText means the message carries no text body.
	RejectedNoText
)

// Gate decides whether an inbound message is eligible for the backend.
// It has no side effects and reads only a snapshot of the activation
// record, so concurrent checks are safe.
type Gate struct {
	storage storage.Storage
}

func NewGate(storage storage.Storage) *Gate {
	return &Gate{storage: storage}
}

func (g *Gate) Check(msg models.InboundMessage) Verdict {
	record := g.storage.Current()
	if !record.Active() {
		return RejectedInactive
	}
	if !record.Matches(msg.ChatID, ResolveTopic(msg)) {
		return RejectedLocation
	}
	if !msg.HasText() {
		return RejectedNoText
	}
	return Admitted
}

// Admit is the boolean form of Check.
func (g *Gate) Admit(msg models.InboundMessage) bool {
	return g.Check(msg) == Admitted
}
