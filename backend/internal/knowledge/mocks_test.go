package knowledge

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"travelmind/backend/internal/adapter"
	"travelmind/backend/internal/graph"
	"travelmind/backend/pkg/config"
)

// Mock implementations for testing

type graphCall struct {
	op   string
	key  string
	keys []string
}

type mockGraph struct {
	mu    sync.Mutex
	calls []graphCall

	// failOn makes the named operation return this error
	failOn map[string]error

	context     *graph.TravelContext
	contextErr  error
	stats       *graph.DestinationStats
	statsErr    error
	readsCalled []string
}

func (m *mockGraph) record(op, key string, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, graphCall{op: op, key: key, keys: keys})
	if err, ok := m.failOn[op]; ok {
		return err
	}
	return nil
}

func (m *mockGraph) AddDestinationInterest(ctx context.Context, userID, destination string) error {
	return m.record("add_destination_interest", destination, nil)
}

func (m *mockGraph) AddActivityInterest(ctx context.Context, userID, activity string) error {
	return m.record("add_activity_interest", activity, nil)
}

func (m *mockGraph) AddConstraint(ctx context.Context, userID, constraint string) error {
	return m.record("add_constraint", constraint, nil)
}

func (m *mockGraph) AddBudgetIndicators(ctx context.Context, userID string, indicators []string) error {
	return m.record("add_budget_indicators", userID, indicators)
}

func (m *mockGraph) SetTravelStyle(ctx context.Context, userID, travelStyle string) error {
	return m.record("set_travel_style", travelStyle, nil)
}

func (m *mockGraph) AddGroupDynamics(ctx context.Context, groupID string, dynamics []string) error {
	return m.record("add_group_dynamics", groupID, dynamics)
}

func (m *mockGraph) GetTravelContext(ctx context.Context, userID string) (*graph.TravelContext, error) {
	m.mu.Lock()
	m.readsCalled = append(m.readsCalled, "get_travel_context")
	m.mu.Unlock()
	if m.contextErr != nil {
		return nil, m.contextErr
	}
	if m.context == nil {
		return nil, graph.ErrNotFound
	}
	return m.context, nil
}

func (m *mockGraph) GetDestinationStats(ctx context.Context, destination string) (*graph.DestinationStats, error) {
	m.mu.Lock()
	m.readsCalled = append(m.readsCalled, "get_destination_stats")
	m.mu.Unlock()
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	if m.stats == nil {
		return nil, graph.ErrNotFound
	}
	return m.stats, nil
}

func (m *mockGraph) callsFor(op string) []graphCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []graphCall
	for _, c := range m.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

type mockCompleter struct {
	reply    string
	err      error
	requests []adapter.CompletionRequest
}

func (m *mockCompleter) Complete(ctx context.Context, req adapter.CompletionRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockCompleter) Provider() string { return "mock" }

func (m *mockCompleter) Model() string { return "mock-model" }

func (m *mockCompleter) lastPrompt() string {
	if len(m.requests) == 0 {
		return ""
	}
	msgs := m.requests[len(m.requests)-1].Messages
	var parts []string
	for _, msg := range msgs {
		parts = append(parts, msg.Content)
	}
	return strings.Join(parts, "\n")
}

func testPrompts(t *testing.T) *Prompts {
	t.Helper()
	cfg, err := config.LoadPrompts("")
	require.NoError(t, err)
	prompts, err := NewPrompts(cfg)
	require.NoError(t, err)
	return prompts
}
