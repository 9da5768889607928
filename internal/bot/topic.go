package bot

import "github.com/varlabz/ask-telegram-bot/internal/models"

// ResolveTopic computes the canonical thread id for a message, handling
// replies and forum topics. Returns nil for chats where topics are not
// meaningful, and models.GeneralTopicID for the General topic.
func ResolveTopic(msg models.InboundMessage) *int64 {
	if !msg.IsForum {
		return nil
	}

	if msg.IsReply {
		if msg.RepliedIsTopic {
			// Propagate the thread id up the reply chain. A missing id
			// falls through to the message's own topic flags.
			if msg.RepliedThreadID != nil && *msg.RepliedThreadID != 0 {
				id := *msg.RepliedThreadID
				return &id
			}
		} else {
			// Reply to a plain message lands in General.
			return generalTopic()
		}
	}

	if msg.IsTopic {
		if msg.RawThreadID != nil && *msg.RawThreadID != 0 {
			id := *msg.RawThreadID
			return &id
		}
		// Malformed topic flag without a thread id.
		return generalTopic()
	}

	return generalTopic()
}

func generalTopic() *int64 {
	id := models.GeneralTopicID
	return &id
}
