package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmind/backend/internal/graph"
	"travelmind/backend/internal/metrics"
	apperrors "travelmind/backend/pkg/errors"
)

const parisReply = `{"destinations":["Paris"],"activities":["hiking"],"preferences":[],"constraints":[],"budget_indicators":[],"travel_style":"adventure","group_dynamics":[],"seasonal_preferences":[],"accommodation_preferences":[]}`

func newTestExtractor(t *testing.T, g *mockGraph, llm *mockCompleter, collector *metrics.Collector) *Extractor {
	return NewExtractor(llm, NewWriter(g), testPrompts(t), DefaultExtractionTemperature, collector)
}

func TestExtractor_ParisExample(t *testing.T) {
	g := &mockGraph{}
	llm := &mockCompleter{reply: "Here you go:\n" + parisReply + "\nEnjoy!"}
	collector := metrics.NewCollector("test")
	ex := newTestExtractor(t, g, llm, collector)

	insights, err := ex.Extract(context.Background(), "I'd love to go hiking near Paris", "u1", "")
	require.NoError(t, err)
	require.NotNil(t, insights)

	assert.Equal(t, []string{"Paris"}, insights.Destinations)
	assert.Equal(t, []string{"hiking"}, insights.Activities)
	assert.Equal(t, "adventure", insights.TravelStyle)
	assert.Empty(t, insights.Preferences)

	require.Len(t, g.callsFor("add_destination_interest"), 1)
	assert.Equal(t, "Paris", g.callsFor("add_destination_interest")[0].key)
	require.Len(t, g.callsFor("add_activity_interest"), 1)
	assert.Equal(t, "hiking", g.callsFor("add_activity_interest")[0].key)
	require.Len(t, g.callsFor("set_travel_style"), 1)
	assert.Equal(t, "adventure", g.callsFor("set_travel_style")[0].key)
	assert.Empty(t, g.callsFor("add_constraint"))
	assert.Empty(t, g.callsFor("add_budget_indicators"))
	assert.Empty(t, g.callsFor("add_group_dynamics"))
	assert.Len(t, g.calls, 3)

	require.Len(t, llm.requests, 1)
	assert.InDelta(t, 0.3, llm.requests[0].Temperature, 0.0001)
	assert.Contains(t, llm.lastPrompt(), "I'd love to go hiking near Paris")

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Extractions.WithLabelValues(metrics.OutcomeOK)))
}

func TestExtractor_OneWritePerNonEmptyField(t *testing.T) {
	g := &mockGraph{}
	llm := &mockCompleter{reply: `{
		"destinations": ["Tokyo", "Kyoto"],
		"activities": ["ramen tasting"],
		"preferences": ["window seat"],
		"constraints": ["no red-eye flights", "max 10 days"],
		"budget_indicators": ["mid-range", "splurge on food"],
		"travel_style": "cultural",
		"group_dynamics": ["two couples"],
		"seasonal_preferences": ["cherry blossom season"],
		"accommodation_preferences": ["ryokan"]
	}`}
	ex := newTestExtractor(t, g, llm, nil)

	insights, err := ex.Extract(context.Background(), "transcript", "u1", "g1")
	require.NoError(t, err)
	require.NotNil(t, insights)

	assert.Len(t, g.callsFor("add_destination_interest"), 2)
	assert.Len(t, g.callsFor("add_activity_interest"), 1)
	assert.Len(t, g.callsFor("add_constraint"), 2)
	require.Len(t, g.callsFor("add_budget_indicators"), 1)
	assert.Equal(t, []string{"mid-range", "splurge on food"}, g.callsFor("add_budget_indicators")[0].keys)
	assert.Len(t, g.callsFor("set_travel_style"), 1)
	require.Len(t, g.callsFor("add_group_dynamics"), 1)
	assert.Equal(t, "g1", g.callsFor("add_group_dynamics")[0].key)
	assert.Len(t, g.calls, 8)

	assert.Equal(t, []string{"window seat"}, insights.Preferences)
	assert.Equal(t, []string{"cherry blossom season"}, insights.SeasonalPreferences)
	assert.Equal(t, []string{"ryokan"}, insights.AccommodationPreferences)
}

func TestExtractor_GroupDynamicsNeedGroupID(t *testing.T) {
	g := &mockGraph{}
	llm := &mockCompleter{reply: `{"group_dynamics": ["family with kids"], "travel_style": ""}`}
	ex := newTestExtractor(t, g, llm, nil)

	insights, err := ex.Extract(context.Background(), "transcript", "u1", "")
	require.NoError(t, err)
	require.NotNil(t, insights)
	assert.Empty(t, g.calls)
	assert.Equal(t, []string{"family with kids"}, insights.GroupDynamics)
	assert.Equal(t, []string{}, insights.Destinations)
}

func TestExtractor_MalformedReply(t *testing.T) {
	replies := map[string]string{
		"no braces":       "I could not find any travel details.",
		"invalid json":    `Sure! {"destinations": ["Paris",]}`,
		"reversed braces": "} nothing here {",
		"wrong types":     `{"destinations": "Paris"}`,
	}

	for name, reply := range replies {
		t.Run(name, func(t *testing.T) {
			g := &mockGraph{}
			collector := metrics.NewCollector("test")
			ex := newTestExtractor(t, g, &mockCompleter{reply: reply}, collector)

			insights, err := ex.Extract(context.Background(), "transcript", "u1", "g1")
			assert.NoError(t, err)
			assert.Nil(t, insights)
			assert.Empty(t, g.calls)
			assert.Equal(t, 1.0, testutil.ToFloat64(collector.Extractions.WithLabelValues(metrics.OutcomeParse)))
		})
	}
}

func TestExtractor_ModelFailurePropagates(t *testing.T) {
	g := &mockGraph{}
	modelErr := apperrors.NewLLMFailed("mock", "mock-model", errors.New("connection refused"))
	ex := newTestExtractor(t, g, &mockCompleter{err: modelErr}, nil)

	insights, err := ex.Extract(context.Background(), "transcript", "u1", "")
	assert.Nil(t, insights)
	assert.ErrorIs(t, err, modelErr)
	assert.Empty(t, g.calls)
}

func TestExtractor_WriteFailuresDoNotStopSiblings(t *testing.T) {
	g := &mockGraph{failOn: map[string]error{
		"add_destination_interest": apperrors.NewGraphQueryFailed("add_destination_interest", errors.New("deadlock")),
	}}
	ex := newTestExtractor(t, g, &mockCompleter{reply: parisReply}, nil)

	insights, err := ex.Extract(context.Background(), "transcript", "u1", "")
	require.NoError(t, err)
	require.NotNil(t, insights)
	assert.Len(t, g.callsFor("add_activity_interest"), 1)
	assert.Len(t, g.callsFor("set_travel_style"), 1)
}

func TestExtractor_GraphDisabled(t *testing.T) {
	repo := graph.NewRepository(nil, nil)
	ex := NewExtractor(&mockCompleter{reply: parisReply}, NewWriter(repo), testPrompts(t), DefaultExtractionTemperature, nil)

	insights, err := ex.Extract(context.Background(), "transcript", "u1", "g1")
	require.NoError(t, err)
	require.NotNil(t, insights)
	assert.Equal(t, []string{"Paris"}, insights.Destinations)
}

func TestExtractor_InvalidInput(t *testing.T) {
	llm := &mockCompleter{reply: parisReply}
	ex := newTestExtractor(t, &mockGraph{}, llm, nil)

	_, err := ex.Extract(context.Background(), "   ", "u1", "")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	_, err = ex.Extract(context.Background(), "transcript", " ", "")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	assert.Empty(t, llm.requests)
}
