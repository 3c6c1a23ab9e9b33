package knowledge

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"travelmind/backend/internal/adapter"
	"travelmind/backend/internal/metrics"
	apperrors "travelmind/backend/pkg/errors"
	"travelmind/backend/pkg/logger"
)

// DefaultExtractionTemperature keeps extraction replies close to deterministic
const DefaultExtractionTemperature = 0.3

// Extractor turns conversation transcripts into stored travel insights
type Extractor struct {
	llm         adapter.Completer
	writer      *Writer
	prompts     *Prompts
	temperature float32
	metrics     *metrics.Collector
	logger      *zap.Logger
}

// NewExtractor creates a new insight extractor. collector may be nil.
func NewExtractor(llm adapter.Completer, writer *Writer, prompts *Prompts, temperature float32, collector *metrics.Collector) *Extractor {
	return &Extractor{
		llm:         llm,
		writer:      writer,
		prompts:     prompts,
		temperature: temperature,
		metrics:     collector,
		logger:      logger.Named("knowledge"),
	}
}

// Extract asks the model for the insights in transcript and stores them for
// userID (and groupID, if set) before returning them.
//
// A reply without a parseable insights object yields (nil, nil) and nothing
// is written. A failed model call is returned as an error.
func (e *Extractor) Extract(ctx context.Context, transcript, userID, groupID string) (*Insights, error) {
	transcript = CleanTranscript(transcript)
	if transcript == "" {
		return nil, apperrors.NewInvalidInput("transcript", "transcript is empty")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewInvalidInput("userId", "user id is empty")
	}

	e.logger.Info("Processing conversation transcript",
		zap.String("user_id", userID),
		zap.String("group_id", groupID),
		zap.Int("transcript_length", len(transcript)),
	)

	prompt, err := e.prompts.Extraction(transcript)
	if err != nil {
		return nil, err
	}

	reply, err := e.llm.Complete(ctx, adapter.CompletionRequest{
		Messages:    []adapter.Message{{Role: adapter.RoleUser, Content: prompt}},
		Temperature: e.temperature,
	})
	if err != nil {
		e.metrics.CountLLM("extraction", metrics.OutcomeError)
		e.metrics.CountExtraction(metrics.OutcomeError)
		return nil, err
	}
	e.metrics.CountLLM("extraction", metrics.OutcomeOK)

	insights, err := parseInsights(reply)
	if err != nil {
		e.metrics.CountExtraction(metrics.OutcomeParse)
		e.logger.Warn("Failed to parse extraction response",
			zap.String("user_id", userID),
			zap.String("response", reply),
			zap.Error(err),
		)
		return nil, nil
	}

	report := e.writer.Write(ctx, insights, userID, groupID)
	if len(report.Failures) > 0 {
		e.metrics.CountExtraction(metrics.OutcomeError)
	} else {
		e.metrics.CountExtraction(metrics.OutcomeOK)
	}

	e.logger.Debug("Extraction completed",
		zap.String("user_id", userID),
		zap.Int("destinations", len(insights.Destinations)),
		zap.Int("activities", len(insights.Activities)),
		zap.String("travel_style", insights.TravelStyle),
	)
	return insights, nil
}
