package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelmind/backend/internal/adapter"
	"travelmind/backend/internal/api"
	"travelmind/backend/internal/graph"
	"travelmind/backend/internal/knowledge"
	"travelmind/backend/internal/metrics"
	"travelmind/backend/pkg/config"
	"travelmind/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...",
		zap.String("env", cfg.Env),
		zap.String("llm_provider", cfg.LLMProvider),
		zap.String("model", cfg.ModelID),
	)

	ctx := context.Background()

	// Neo4j is optional: without credentials the graph runs disabled
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}

	collector := metrics.NewCollector("travelmind")
	graphRepo := graph.NewRepository(driver, collector)
	defer func() {
		if err := graphRepo.Close(context.Background()); err != nil {
			log.Warn("Failed to close Neo4j driver", zap.Error(err))
		}
	}()

	if cfg.EnsureSchema && graphRepo.Enabled() {
		if err := graphRepo.EnsureSchema(ctx); err != nil {
			log.Warn("Failed to ensure graph schema", zap.Error(err))
		}
	}

	router, err := buildRouter(ctx, cfg, graphRepo, collector)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started",
		zap.String("port", cfg.Port),
		zap.Bool("graph_enabled", graphRepo.Enabled()),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// buildRouter wires the model client, the knowledge pipeline and the HTTP layer
func buildRouter(ctx context.Context, cfg *config.Config, graphRepo *graph.Repository, collector *metrics.Collector) (*gin.Engine, error) {
	prompts, err := config.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}
	compiled, err := knowledge.NewPrompts(prompts)
	if err != nil {
		return nil, err
	}

	llm, err := adapter.NewCompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	return api.NewRouter(api.Dependencies{
		Chat: knowledge.NewChat(llm, float32(cfg.ChatTemperature), collector),
		Extractor: knowledge.NewExtractor(llm, knowledge.NewWriter(graphRepo), compiled,
			float32(cfg.ExtractionTemperature), collector),
		Recommender: knowledge.NewRecommender(graphRepo, llm, compiled,
			float32(cfg.RecommendationTemperature), collector),
		Graph:   graphRepo,
		Metrics: collector,
		Logger:  logger.Named("http"),
	}), nil
}
