package adapter

import (
	"context"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"travelmind/backend/pkg/config"
	apperrors "travelmind/backend/pkg/errors"
	"travelmind/backend/pkg/logger"
)

// Anthropic requires max_tokens on every request
const defaultAnthropicMaxTokens = 1024

// AnthropicAdapter talks to the Anthropic Messages API
type AnthropicAdapter struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicAdapter creates a new Anthropic adapter. baseURL may be empty.
func NewAnthropicAdapter(apiKey, modelID, baseURL string) *AnthropicAdapter {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	return &AnthropicAdapter{
		client: anthropic.NewClient(apiKey, opts...),
		model:  modelID,
		logger: logger.Named("llm"),
	}
}

// Provider returns the provider name
func (a *AnthropicAdapter) Provider() string { return config.ProviderAnthropic }

// Model returns the model id sent with every request
func (a *AnthropicAdapter) Model() string { return a.model }

// Complete sends one Messages request and joins the returned text blocks
func (a *AnthropicAdapter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	system, turns := splitSystem(req.Messages)

	messages := make([]anthropic.Message, 0, len(turns))
	for _, m := range turns {
		if m.Role == RoleAssistant {
			messages = append(messages, anthropic.NewAssistantTextMessage(m.Content))
			continue
		}
		messages = append(messages, anthropic.NewUserTextMessage(m.Content))
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	temperature := req.Temperature

	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(a.model),
		System:      system,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		a.logger.Error("LLM request failed",
			zap.String("model", a.model),
			zap.Error(err),
		)
		return "", apperrors.NewLLMFailed(a.Provider(), a.model, err)
	}

	var parts []string
	for _, content := range resp.Content {
		if content.Text != nil {
			parts = append(parts, *content.Text)
		}
	}
	if len(parts) == 0 {
		return "", apperrors.NewLLMFailed(a.Provider(), a.model, apperrors.ErrLLMNoResponse)
	}

	a.logger.Debug("LLM response generated",
		zap.String("model", a.model),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
	)
	return strings.Join(parts, ""), nil
}
