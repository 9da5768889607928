package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestNewInbound(t *testing.T) {
	m := &tele.Message{
		ID:           42,
		Chat:         &tele.Chat{ID: 100, Type: tele.ChatSuperGroup, IsForum: true},
		ThreadID:     5,
		TopicMessage: true,
		Text:         "hello",
		ReplyTo: &tele.Message{
			ID:           41,
			ThreadID:     7,
			TopicMessage: true,
		},
	}

	msg := newInbound(m)

	assert.Equal(t, int64(100), msg.ChatID)
	assert.Equal(t, 42, msg.MessageID)
	assert.True(t, msg.IsForum)
	assert.True(t, msg.IsTopic)
	assert.Equal(t, "hello", msg.Text)
	assert.False(t, msg.HasPhoto)
	if assert.NotNil(t, msg.RawThreadID) {
		assert.Equal(t, int64(5), *msg.RawThreadID)
	}
	assert.True(t, msg.IsReply)
	assert.True(t, msg.RepliedIsTopic)
	if assert.NotNil(t, msg.RepliedThreadID) {
		assert.Equal(t, int64(7), *msg.RepliedThreadID)
	}
}

func TestNewInboundPrivateChat(t *testing.T) {
	m := &tele.Message{
		ID:    7,
		Chat:  &tele.Chat{ID: 333, Type: tele.ChatPrivate},
		Text:  "hi",
		Photo: &tele.Photo{},
	}

	msg := newInbound(m)

	assert.Equal(t, int64(333), msg.ChatID)
	assert.False(t, msg.IsForum)
	assert.False(t, msg.IsReply)
	assert.Nil(t, msg.RawThreadID)
	assert.True(t, msg.HasPhoto)
}

func TestNewInboundSupergroupWithoutForum(t *testing.T) {
	m := &tele.Message{
		ID:   8,
		Chat: &tele.Chat{ID: 100, Type: tele.ChatSuperGroup},
		Text: "hi",
	}

	assert.False(t, newInbound(m).IsForum)
}
