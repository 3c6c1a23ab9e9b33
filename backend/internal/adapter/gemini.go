package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"travelmind/backend/pkg/config"
	apperrors "travelmind/backend/pkg/errors"
	"travelmind/backend/pkg/logger"
)

// GeminiAdapter talks to the Google Gemini API
type GeminiAdapter struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(ctx context.Context, apiKey, modelID string) (*GeminiAdapter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiAdapter{
		client: client,
		model:  modelID,
		logger: logger.Named("llm"),
	}, nil
}

// Provider returns the provider name
func (a *GeminiAdapter) Provider() string { return config.ProviderGemini }

// Model returns the model id sent with every request
func (a *GeminiAdapter) Model() string { return a.model }

// Close releases the underlying client
func (a *GeminiAdapter) Close() error {
	return a.client.Close()
}

// Complete replays all but the last turn as chat history and sends the last one
func (a *GeminiAdapter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	system, turns := splitSystem(req.Messages)
	if len(turns) == 0 {
		return "", apperrors.NewLLMFailed(a.Provider(), a.model,
			fmt.Errorf("no user message to send"))
	}

	model := a.client.GenerativeModel(a.model)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	session := model.StartChat()
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(turns[len(turns)-1].Content))
	if err != nil {
		a.logger.Error("LLM request failed",
			zap.String("model", a.model),
			zap.Error(err),
		)
		return "", apperrors.NewLLMFailed(a.Provider(), a.model, err)
	}

	var parts []string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				parts = append(parts, string(txt))
			}
		}
		break
	}
	if len(parts) == 0 {
		return "", apperrors.NewLLMFailed(a.Provider(), a.model, apperrors.ErrLLMNoResponse)
	}

	return strings.Join(parts, ""), nil
}
