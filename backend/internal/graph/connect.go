package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "travelmind/backend/pkg/errors"
	"travelmind/backend/pkg/logger"
)

// Connect creates the process-wide Neo4j driver. Missing credentials return a
// nil driver and nil error so the repository runs disabled; this is the one
// place that condition is logged.
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	log := logger.Named("graph")

	if uri == "" || user == "" || password == "" {
		log.Warn("Neo4j credentials not configured. Knowledge graph features disabled.")
		return nil, nil
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}

	// The driver connects lazily; an unreachable server is reported but not fatal
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Error("Failed to verify Neo4j connectivity", zap.String("uri", uri), zap.Error(err))
		return driver, nil
	}

	log.Info("Neo4j connection established", zap.String("uri", uri))
	return driver, nil
}
