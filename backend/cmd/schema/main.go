package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"travelmind/backend/internal/graph"
	"travelmind/backend/pkg/config"
	"travelmind/backend/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "Maximum time to spend creating constraints")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Ensuring knowledge graph schema...")

	// Only the Neo4j settings are needed here
	cfg, err := config.LoadGraph()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	err = run(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal("Failed to ensure schema", zap.Error(err))
	}

	log.Info("Knowledge graph schema is up to date")
}

// run connects, creates the constraints and closes the driver before returning
func run(ctx context.Context, cfg *config.Config) error {
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	repo := graph.NewRepository(driver, nil)
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			logger.Get().Warn("Failed to close Neo4j driver", zap.Error(err))
		}
	}()

	if !repo.Enabled() {
		return graph.ErrDisabled
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create constraints: %w", err)
	}
	return nil
}
