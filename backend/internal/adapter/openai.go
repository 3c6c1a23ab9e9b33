package adapter

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"travelmind/backend/pkg/config"
	apperrors "travelmind/backend/pkg/errors"
	"travelmind/backend/pkg/logger"
)

// LLMAdapter talks to any OpenAI-compatible chat completions endpoint (Groq by default)
type LLMAdapter struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewLLMAdapter creates a new OpenAI-compatible adapter. An empty baseURL
// points at Groq.
func NewLLMAdapter(baseURL, apiKey, modelID string) *LLMAdapter {
	if baseURL == "" {
		baseURL = config.DefaultGroqBaseURL
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")

	return &LLMAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  modelID,
		logger: logger.Named("llm"),
	}
}

// Provider returns the provider name
func (a *LLMAdapter) Provider() string { return config.ProviderOpenAI }

// Model returns the model id sent with every request
func (a *LLMAdapter) Model() string { return a.model }

// Complete sends one chat completion request and returns the first choice
func (a *LLMAdapter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		a.logger.Error("LLM request failed",
			zap.String("model", a.model),
			zap.Error(err),
		)
		return "", apperrors.NewLLMFailed(a.Provider(), a.model, err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.NewLLMFailed(a.Provider(), a.model, apperrors.ErrLLMNoResponse)
	}

	content := resp.Choices[0].Message.Content
	a.logger.Debug("LLM response generated",
		zap.String("model", a.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return content, nil
}
