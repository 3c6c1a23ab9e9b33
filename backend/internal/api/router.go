package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelmind/backend/internal/adapter"
	"travelmind/backend/internal/graph"
	"travelmind/backend/internal/knowledge"
	"travelmind/backend/internal/metrics"
)

// Chatter proxies chat turns to the model
type Chatter interface {
	Reply(ctx context.Context, messages []adapter.Message) (string, error)
}

// InsightExtractor extracts and stores insights from a transcript
type InsightExtractor interface {
	Extract(ctx context.Context, transcript, userID, groupID string) (*knowledge.Insights, error)
}

// Recommender generates personalized recommendations
type Recommender interface {
	Recommend(ctx context.Context, userID, destination string) (*knowledge.Recommendation, error)
}

// GraphStore is the part of the graph repository exposed directly over HTTP
type GraphStore interface {
	Enabled() bool
	GetTravelContext(ctx context.Context, userID string) (*graph.TravelContext, error)
	GetDestinationStats(ctx context.Context, destination string) (*graph.DestinationStats, error)
	UpsertUser(ctx context.Context, userID string, profile graph.UserProfile) error
	UpsertTravelPreferences(ctx context.Context, userID string, prefs graph.TravelPreferences) error
	UpsertTrip(ctx context.Context, groupID string, trip graph.Trip) error
	LinkUserToTrip(ctx context.Context, userID, groupID string) error
	AddItinerary(ctx context.Context, groupID string, itinerary graph.Itinerary) error
}

// Dependencies are the components the HTTP layer maps requests onto
type Dependencies struct {
	Chat        Chatter
	Extractor   InsightExtractor
	Recommender Recommender
	Graph       GraphStore
	Metrics     *metrics.Collector
	Logger      *zap.Logger
}

// NewRouter builds the gin engine with every route and middleware
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := &handlers{deps: deps, logger: deps.Logger}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(deps.Logger))
	router.Use(observe(deps.Metrics))
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", h.health)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := router.Group("/api")
	{
		api.POST("/chat", h.chat)

		api.GET("/knowledge-insights", h.getKnowledgeInsights)
		api.POST("/knowledge-insights", h.processTranscript)

		api.PUT("/users/:id", h.upsertUser)
		api.PUT("/users/:id/preferences", h.upsertPreferences)

		api.PUT("/trips/:groupId", h.upsertTrip)
		api.POST("/trips/:groupId/participants", h.addParticipant)
		api.POST("/trips/:groupId/itinerary", h.addItinerary)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
