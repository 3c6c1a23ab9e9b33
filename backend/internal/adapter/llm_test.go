package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmind/backend/pkg/config"
	apperrors "travelmind/backend/pkg/errors"
)

// fakeChatServer serves /chat/completions and records the last request body
type fakeChatServer struct {
	*httptest.Server
	calls   atomic.Int32
	lastReq map[string]interface{}
}

func newFakeChatServer(t *testing.T, status int, body string) *fakeChatServer {
	t.Helper()
	f := &fakeChatServer{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&f.lastReq)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func TestLLMAdapter_Complete(t *testing.T) {
	server := newFakeChatServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "Try Lisbon."}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 3, "total_tokens": 13}
	}`)

	llm := NewLLMAdapter(server.URL, "test-key", "llama-3.1-8b-instant")
	reply, err := llm.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a travel assistant."},
			{Role: RoleUser, Content: "Where should I go?"},
		},
		Temperature: 0.7,
	})

	require.NoError(t, err)
	assert.Equal(t, "Try Lisbon.", reply)
	assert.Equal(t, int32(1), server.calls.Load())
	assert.Equal(t, "llama-3.1-8b-instant", server.lastReq["model"])
	assert.InDelta(t, 0.7, server.lastReq["temperature"], 0.0001)
	assert.Len(t, server.lastReq["messages"], 2)
}

func TestLLMAdapter_NoChoices(t *testing.T) {
	server := newFakeChatServer(t, http.StatusOK, `{"id": "x", "choices": []}`)

	llm := NewLLMAdapter(server.URL, "test-key", "m")
	_, err := llm.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLLMNoResponse))
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeLLM))
}

func TestLLMAdapter_ServerErrorIsNotRetried(t *testing.T) {
	server := newFakeChatServer(t, http.StatusInternalServerError,
		`{"error": {"message": "upstream exploded", "type": "server_error"}}`)

	llm := NewLLMAdapter(server.URL, "test-key", "m")
	_, err := llm.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	require.Error(t, err)
	var llmErr *apperrors.ErrLLMFailed
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, config.ProviderOpenAI, llmErr.Provider)
	assert.Equal(t, int32(1), server.calls.Load())
}

func TestNewCompleter(t *testing.T) {
	ctx := context.Background()

	openaiCompleter, err := NewCompleter(ctx, &config.Config{
		LLMProvider: config.ProviderOpenAI,
		LLMAPIKey:   "k",
		ModelID:     "llama-3.1-8b-instant",
	})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOpenAI, openaiCompleter.Provider())
	assert.Equal(t, "llama-3.1-8b-instant", openaiCompleter.Model())

	anthropicCompleter, err := NewCompleter(ctx, &config.Config{
		LLMProvider: config.ProviderAnthropic,
		LLMAPIKey:   "k",
		ModelID:     "claude-3-5-haiku-latest",
	})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderAnthropic, anthropicCompleter.Provider())

	_, err = NewCompleter(ctx, &config.Config{LLMProvider: "ollama"})
	assert.EqualError(t, err, "unsupported llm provider: ollama")
}

func TestSplitSystem(t *testing.T) {
	system, rest := splitSystem([]Message{
		{Role: RoleSystem, Content: "a"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleSystem, Content: "b"},
		{Role: RoleAssistant, Content: "hello"},
	})

	assert.Equal(t, "a\n\nb", system)
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	}, rest)
}
