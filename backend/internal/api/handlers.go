package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelmind/backend/internal/adapter"
	"travelmind/backend/internal/graph"
	apperrors "travelmind/backend/pkg/errors"
)

// Actions accepted by GET /api/knowledge-insights
const (
	actionRecommendations     = "recommendations"
	actionTravelContext       = "travel-context"
	actionDestinationInsights = "destination-insights"
)

type handlers struct {
	deps   Dependencies
	logger *zap.Logger
}

type chatRequest struct {
	Messages []adapter.Message `json:"messages" binding:"required,min=1"`
}

type transcriptRequest struct {
	UserID     string `json:"userId"`
	Transcript string `json:"transcript"`
	GroupID    string `json:"groupId"`
}

type participantRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"graph":  h.deps.Graph != nil && h.deps.Graph.Enabled(),
	})
}

// chat proxies a conversation to the model
func (h *handlers) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.deps.Chat.Reply(c.Request.Context(), req.Messages)
	if err != nil {
		h.logError(c, "Chat completion failed", err)
		c.String(http.StatusInternalServerError, "Failed to generate response")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// getKnowledgeInsights serves recommendations, travel context and
// destination statistics, selected by the action query parameter
func (h *handlers) getKnowledgeInsights(c *gin.Context) {
	ctx := c.Request.Context()
	userID := strings.TrimSpace(c.Query("userId"))
	destination := strings.TrimSpace(c.Query("destination"))

	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	var (
		data interface{}
		err  error
	)

	switch c.Query("action") {
	case actionRecommendations:
		data, err = h.deps.Recommender.Recommend(ctx, userID, destination)

	case actionTravelContext:
		tc, readErr := h.deps.Graph.GetTravelContext(ctx, userID)
		data, err = emptyAsNil(tc, readErr)

	case actionDestinationInsights:
		if destination == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Destination is required for insights"})
			return
		}
		stats, readErr := h.deps.Graph.GetDestinationStats(ctx, destination)
		data, err = emptyAsNil(stats, readErr)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action parameter"})
		return
	}

	if err != nil {
		h.logError(c, "Failed to fetch knowledge insights", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch knowledge insights"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// processTranscript extracts insights from a transcript and stores them
func (h *handlers) processTranscript(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || strings.TrimSpace(req.Transcript) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and transcript are required"})
		return
	}

	insights, err := h.deps.Extractor.Extract(c.Request.Context(), req.Transcript, req.UserID, req.GroupID)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logError(c, "Failed to process conversation transcript", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process conversation transcript"})
		return
	}

	// insights is nil when the model reply held no usable object
	c.JSON(http.StatusOK, gin.H{"success": true, "data": insights})
}

func (h *handlers) upsertUser(c *gin.Context) {
	var profile graph.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWrite(c, h.deps.Graph.UpsertUser(c.Request.Context(), c.Param("id"), profile))
}

func (h *handlers) upsertPreferences(c *gin.Context) {
	var prefs graph.TravelPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWrite(c, h.deps.Graph.UpsertTravelPreferences(c.Request.Context(), c.Param("id"), prefs))
}

func (h *handlers) upsertTrip(c *gin.Context) {
	var trip graph.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWrite(c, h.deps.Graph.UpsertTrip(c.Request.Context(), c.Param("groupId"), trip))
}

func (h *handlers) addParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWrite(c, h.deps.Graph.LinkUserToTrip(c.Request.Context(), req.UserID, c.Param("groupId")))
}

func (h *handlers) addItinerary(c *gin.Context) {
	var itinerary graph.Itinerary
	if err := c.ShouldBindJSON(&itinerary); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWrite(c, h.deps.Graph.AddItinerary(c.Request.Context(), c.Param("groupId"), itinerary))
}

// respondWrite maps the result of a graph write onto a response
func (h *handlers) respondWrite(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, graph.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Knowledge graph is not configured"})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logError(c, "Graph write failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update knowledge graph"})
	}
}

func (h *handlers) logError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
}

// emptyAsNil turns disabled and not-found reads into a nil result
func emptyAsNil[T any](v *T, err error) (interface{}, error) {
	if err != nil {
		if graph.IsEmpty(err) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
