package knowledge

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"travelmind/backend/internal/graph"
	"travelmind/backend/pkg/logger"
)

// GraphWriter is the subset of the graph repository the writer needs
type GraphWriter interface {
	AddDestinationInterest(ctx context.Context, userID, destination string) error
	AddActivityInterest(ctx context.Context, userID, activity string) error
	AddConstraint(ctx context.Context, userID, constraint string) error
	AddBudgetIndicators(ctx context.Context, userID string, indicators []string) error
	SetTravelStyle(ctx context.Context, userID, travelStyle string) error
	AddGroupDynamics(ctx context.Context, groupID string, dynamics []string) error
}

// WriteFailure is one upsert that did not apply
type WriteFailure struct {
	Operation string `json:"operation"`
	Key       string `json:"key"`
	Error     string `json:"error"`
}

// WriteReport summarizes one batch of insight upserts. Partial application is
// a normal outcome.
type WriteReport struct {
	Written  int            `json:"written"`
	Skipped  int            `json:"skipped"`
	Failures []WriteFailure `json:"failures,omitempty"`
}

// Writer persists extracted insights through the graph repository
type Writer struct {
	graph  GraphWriter
	logger *zap.Logger
}

// NewWriter creates a new insight writer
func NewWriter(g GraphWriter) *Writer {
	return &Writer{
		graph:  g,
		logger: logger.Named("knowledge"),
	}
}

// Write issues one upsert per destination, activity and constraint, one for
// all budget indicators, one for the travel style and, when groupID is set,
// one for all group dynamics. Calls run sequentially and a failure never
// stops the calls after it. Preferences, seasonal preferences and
// accommodation preferences are not persisted.
func (w *Writer) Write(ctx context.Context, insights *Insights, userID, groupID string) WriteReport {
	var report WriteReport
	if insights == nil {
		return report
	}

	for _, destination := range insights.Destinations {
		w.apply(&report, "add_destination_interest", destination, func() error {
			return w.graph.AddDestinationInterest(ctx, userID, destination)
		})
	}

	for _, activity := range insights.Activities {
		w.apply(&report, "add_activity_interest", activity, func() error {
			return w.graph.AddActivityInterest(ctx, userID, activity)
		})
	}

	for _, constraint := range insights.Constraints {
		w.apply(&report, "add_constraint", constraint, func() error {
			return w.graph.AddConstraint(ctx, userID, constraint)
		})
	}

	if len(insights.BudgetIndicators) > 0 {
		w.apply(&report, "add_budget_indicators", userID, func() error {
			return w.graph.AddBudgetIndicators(ctx, userID, insights.BudgetIndicators)
		})
	}

	if insights.TravelStyle != "" {
		w.apply(&report, "set_travel_style", insights.TravelStyle, func() error {
			return w.graph.SetTravelStyle(ctx, userID, insights.TravelStyle)
		})
	}

	if groupID != "" && len(insights.GroupDynamics) > 0 {
		w.apply(&report, "add_group_dynamics", groupID, func() error {
			return w.graph.AddGroupDynamics(ctx, groupID, insights.GroupDynamics)
		})
	}

	w.logger.Info("Insights stored in knowledge graph",
		zap.String("user_id", userID),
		zap.String("group_id", groupID),
		zap.Int("written", report.Written),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", len(report.Failures)),
	)
	return report
}

func (w *Writer) apply(report *WriteReport, operation, key string, fn func() error) {
	err := fn()
	switch {
	case err == nil:
		report.Written++
	case graph.IsEmpty(err) || errors.Is(err, graph.ErrEmptyKey):
		report.Skipped++
	default:
		w.logger.Warn("Failed to store insight",
			zap.String("operation", operation),
			zap.String("key", key),
			zap.Error(err),
		)
		report.Failures = append(report.Failures, WriteFailure{
			Operation: operation,
			Key:       key,
			Error:     err.Error(),
		})
	}
}
