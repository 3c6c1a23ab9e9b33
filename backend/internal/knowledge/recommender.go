package knowledge

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"travelmind/backend/internal/adapter"
	"travelmind/backend/internal/graph"
	"travelmind/backend/internal/metrics"
	apperrors "travelmind/backend/pkg/errors"
	"travelmind/backend/pkg/logger"
)

// DefaultRecommendationTemperature favors varied recommendations
const DefaultRecommendationTemperature = 0.7

// GraphReader is the subset of the graph repository the recommender needs
type GraphReader interface {
	GetTravelContext(ctx context.Context, userID string) (*graph.TravelContext, error)
	GetDestinationStats(ctx context.Context, destination string) (*graph.DestinationStats, error)
}

// Recommendation bundles the model's answer with the data it was built from
type Recommendation struct {
	Recommendations     string                  `json:"recommendations"`
	UserContext         *graph.TravelContext    `json:"user_context"`
	DestinationInsights *graph.DestinationStats `json:"destination_insights"`
}

// Recommender generates personalized travel recommendations from the graph
type Recommender struct {
	graph       GraphReader
	llm         adapter.Completer
	prompts     *Prompts
	temperature float32
	metrics     *metrics.Collector
	logger      *zap.Logger
}

// NewRecommender creates a new recommender. collector may be nil.
func NewRecommender(g GraphReader, llm adapter.Completer, prompts *Prompts, temperature float32, collector *metrics.Collector) *Recommender {
	return &Recommender{
		graph:       g,
		llm:         llm,
		prompts:     prompts,
		temperature: temperature,
		metrics:     collector,
		logger:      logger.Named("knowledge"),
	}
}

// Recommend builds recommendations for userID, optionally focused on one
// destination. It returns (nil, nil) without calling the model when the
// graph has no such user or is disabled. Destination stats that cannot be
// read are left out of the prompt.
func (r *Recommender) Recommend(ctx context.Context, userID, destination string) (*Recommendation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewInvalidInput("userId", "user id is empty")
	}
	destination = strings.TrimSpace(destination)

	var (
		tc    *graph.TravelContext
		stats *graph.DestinationStats
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := r.graph.GetTravelContext(gctx, userID)
		if err != nil {
			if graph.IsEmpty(err) {
				return nil
			}
			return err
		}
		tc = result
		return nil
	})

	if destination != "" {
		g.Go(func() error {
			result, err := r.graph.GetDestinationStats(gctx, destination)
			if err != nil {
				if !graph.IsEmpty(err) {
					r.logger.Warn("Failed to read destination stats",
						zap.String("destination", destination),
						zap.Error(err),
					)
				}
				return nil
			}
			stats = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if tc == nil {
		r.logger.Info("No travel context for user, skipping recommendation",
			zap.String("user_id", userID),
		)
		return nil, nil
	}

	prompt, err := r.prompts.Recommendation(tc, destination, stats)
	if err != nil {
		return nil, err
	}

	reply, err := r.llm.Complete(ctx, adapter.CompletionRequest{
		Messages:    []adapter.Message{{Role: adapter.RoleUser, Content: prompt}},
		Temperature: r.temperature,
	})
	if err != nil {
		r.metrics.CountLLM("recommendation", metrics.OutcomeError)
		return nil, err
	}
	r.metrics.CountLLM("recommendation", metrics.OutcomeOK)

	r.logger.Info("Recommendation generated",
		zap.String("user_id", userID),
		zap.String("destination", destination),
		zap.Bool("has_stats", stats != nil),
	)

	return &Recommendation{
		Recommendations:     reply,
		UserContext:         tc,
		DestinationInsights: stats,
	}, nil
}
