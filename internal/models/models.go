package models

// GeneralTopicID is the canonical thread id of the "General" topic in a
// forum-enabled supergroup.
const GeneralTopicID int64 = 1

// ActivationRecord is the single authorized (chat, topic) pair. A nil
// ChatID means the bot is not activated anywhere. A non-nil ChatID with
// a nil TopicID is invalid and must be normalized to not-activated.
type ActivationRecord struct {
	ChatID  *int64 `json:"chat_id"`
	TopicID *int64 `json:"topic_id"`
}

// Active reports whether the record holds a valid activation.
func (r ActivationRecord) Active() bool {
	return r.ChatID != nil && r.TopicID != nil
}

// Matches reports whether the given chat and resolved topic are the
// authorized pair.
func (r ActivationRecord) Matches(chatID int64, topicID *int64) bool {
	if !r.Active() {
		return false
	}
	if *r.ChatID != chatID {
		return false
	}
	if topicID == nil {
		return false
	}
	return *r.TopicID == *topicID
}

// Normalize clears a half-set record so a stored chat id without a
// topic id never counts as an activation.
func (r ActivationRecord) Normalize() ActivationRecord {
	if r.ChatID == nil || r.TopicID == nil {
		return ActivationRecord{}
	}
	return r
}

// InboundMessage is the transport-independent view of one Telegram
// message, built once at the transport boundary and immutable after.
type InboundMessage struct {
	ChatID          int64
	MessageID       int
	RawThreadID     *int64
	IsForum         bool
	IsReply         bool
	RepliedIsTopic  bool
	RepliedThreadID *int64
	IsTopic         bool
	Text            string
	HasPhoto        bool
}

// HasText reports whether the message carries a text body.
func (m InboundMessage) HasText() bool {
	return m.Text != ""
}
