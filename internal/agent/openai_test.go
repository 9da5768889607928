package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCompletion struct {
	requests []openai.ChatCompletionRequest
	response openai.ChatCompletionResponse
	err      error
}

func (s *stubCompletion) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.requests = append(s.requests, request)
	return s.response, s.err
}

func answerResponse(text string, promptTokens, completionTokens int) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
		Usage: openai.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
		},
	}
}

func newTestAgent(client completionClient, opts Options) *OpenAIAgent {
	return &OpenAIAgent{client: client, opts: opts, logger: zap.NewNop()}
}

func TestOpenAIAgentRun(t *testing.T) {
	client := &stubCompletion{response: answerResponse("  the answer  ", 10, 20)}
	a := newTestAgent(client, Options{Model: "gpt-4o-mini", MaxTokens: 100})

	answer, err := a.Run(context.Background(), "what is it")
	require.NoError(t, err)
	assert.Equal(t, "the answer", answer)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "gpt-4o-mini", req.Model)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
	assert.Equal(t, "what is it", req.Messages[0].Content)
}

func TestOpenAIAgentSystemPrompt(t *testing.T) {
	client := &stubCompletion{response: answerResponse("ok", 0, 0)}
	a := newTestAgent(client, Options{SystemPrompt: "be terse"})

	_, err := a.Run(context.Background(), "hi")
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	require.Len(t, client.requests[0].Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, client.requests[0].Messages[0].Role)
	assert.Equal(t, "be terse", client.requests[0].Messages[0].Content)
}

func TestOpenAIAgentRunError(t *testing.T) {
	client := &stubCompletion{err: errors.New("rate limited")}
	a := newTestAgent(client, Options{})

	_, err := a.Run(context.Background(), "hi")
	assert.Error(t, err)
}

func TestOpenAIAgentRunNoChoices(t *testing.T) {
	client := &stubCompletion{}
	a := newTestAgent(client, Options{})

	_, err := a.Run(context.Background(), "hi")
	assert.Error(t, err)
}

func TestOpenAIAgentStats(t *testing.T) {
	client := &stubCompletion{response: answerResponse("ok", 10, 20)}
	a := newTestAgent(client, Options{ShowStats: true})

	assert.Empty(t, a.Stats(), "no requests yet")

	_, err := a.Run(context.Background(), "one")
	require.NoError(t, err)
	_, err = a.Run(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, "requests: 2, tokens: 20 in / 40 out", a.Stats())
}

func TestOpenAIAgentStatsDisabled(t *testing.T) {
	client := &stubCompletion{response: answerResponse("ok", 10, 20)}
	a := newTestAgent(client, Options{ShowStats: false})

	_, err := a.Run(context.Background(), "one")
	require.NoError(t, err)

	assert.Empty(t, a.Stats())
}

func TestOpenAIAgentFailedCallDoesNotCountStats(t *testing.T) {
	client := &stubCompletion{err: errors.New("boom")}
	a := newTestAgent(client, Options{ShowStats: true})

	_, err := a.Run(context.Background(), "one")
	require.Error(t, err)

	assert.Empty(t, a.Stats())
}
