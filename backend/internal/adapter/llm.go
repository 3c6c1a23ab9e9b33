package adapter

import (
	"context"
	"fmt"
	"strings"

	"travelmind/backend/pkg/config"
)

// Message roles understood by every provider
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a provider-neutral completion call. MaxTokens of zero
// leaves the provider default in place.
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Completer turns a message list into the model's reply text.
// Implementations make exactly one request per call and never retry.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Provider() string
	Model() string
}

// NewCompleter builds the completer selected by cfg.LLMProvider
func NewCompleter(ctx context.Context, cfg *config.Config) (Completer, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case config.ProviderOpenAI, "":
		return NewLLMAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.ModelID), nil
	case config.ProviderAnthropic:
		return NewAnthropicAdapter(cfg.LLMAPIKey, cfg.ModelID, cfg.LLMBaseURL), nil
	case config.ProviderGemini:
		return NewGeminiAdapter(ctx, cfg.LLMAPIKey, cfg.ModelID)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLMProvider)
	}
}

// splitSystem separates system turns from the conversation for providers that
// take the system prompt as a dedicated field
func splitSystem(messages []Message) (string, []Message) {
	var system []string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(system, "\n\n"), rest
}
