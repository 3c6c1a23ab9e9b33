package knowledge

import (
	"context"

	"go.uber.org/zap"

	"travelmind/backend/internal/adapter"
	"travelmind/backend/internal/metrics"
	apperrors "travelmind/backend/pkg/errors"
	"travelmind/backend/pkg/logger"
)

// DefaultChatTemperature is the sampling temperature of proxied chat turns
const DefaultChatTemperature = 0.7

// Chat forwards a conversation to the model unchanged
type Chat struct {
	llm         adapter.Completer
	temperature float32
	metrics     *metrics.Collector
	logger      *zap.Logger
}

// NewChat creates a new chat proxy. collector may be nil.
func NewChat(llm adapter.Completer, temperature float32, collector *metrics.Collector) *Chat {
	return &Chat{
		llm:         llm,
		temperature: temperature,
		metrics:     collector,
		logger:      logger.Named("chat"),
	}
}

// Reply returns the model's next turn for messages
func (c *Chat) Reply(ctx context.Context, messages []adapter.Message) (string, error) {
	if len(messages) == 0 {
		return "", apperrors.NewInvalidInput("messages", "at least one message is required")
	}

	reply, err := c.llm.Complete(ctx, adapter.CompletionRequest{
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		c.metrics.CountLLM("chat", metrics.OutcomeError)
		return "", err
	}
	c.metrics.CountLLM("chat", metrics.OutcomeOK)

	c.logger.Debug("Chat reply generated",
		zap.Int("messages", len(messages)),
		zap.Int("reply_length", len(reply)),
	)
	return reply, nil
}
