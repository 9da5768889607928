package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// completionClient is the slice of the OpenAI client the agent needs.
// *openai.Client satisfies it.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Options struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
	ShowStats    bool
}

// OpenAIAgent answers questions through the OpenAI chat completion API
// and accumulates token usage across the life of the session.
type OpenAIAgent struct {
	client completionClient
	opts   Options
	logger *zap.Logger

	mu       sync.Mutex
	requests int
	prompt   int
	answer   int
}

func NewOpenAIAgent(apiKey string, opts Options, logger *zap.Logger) *OpenAIAgent {
	return &OpenAIAgent{
		client: openai.NewClient(apiKey),
		opts:   opts,
		logger: logger,
	}
}

func (a *OpenAIAgent) Run(ctx context.Context, question string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if a.opts.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: a.opts.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       a.opts.Model,
			Messages:    messages,
			MaxTokens:   a.opts.MaxTokens,
			Temperature: float32(a.opts.Temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	a.record(resp.Usage)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (a *OpenAIAgent) record(usage openai.Usage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests++
	a.prompt += usage.PromptTokens
	a.answer += usage.CompletionTokens
}

func (a *OpenAIAgent) Stats() string {
	if !a.opts.ShowStats {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.requests == 0 {
		return ""
	}
	return fmt.Sprintf("requests: %d, tokens: %d in / %d out",
		a.requests, a.prompt, a.answer)
}
