package graph

import (
	"context"
	"errors"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"travelmind/backend/internal/metrics"
	apperrors "travelmind/backend/pkg/errors"
	"travelmind/backend/pkg/logger"
)

var (
	// ErrDisabled is returned by every operation when no driver is configured
	ErrDisabled = errors.New("knowledge graph disabled")
	// ErrNotFound is returned by reads that matched nothing
	ErrNotFound = errors.New("not found in knowledge graph")
	// ErrEmptyKey is returned when a natural key is blank after normalization
	ErrEmptyKey = apperrors.NewInvalidInput("key", "natural key is empty")
)

// IsEmpty reports whether err means "no data" rather than a failure:
// the graph is disabled or the read matched nothing.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrDisabled) || errors.Is(err, ErrNotFound)
}

// Repository handles all Neo4j database operations. A nil driver puts it in
// disabled mode where every operation returns ErrDisabled.
type Repository struct {
	driver  neo4j.DriverWithContext
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewRepository creates a new graph repository. collector may be nil.
func NewRepository(driver neo4j.DriverWithContext, collector *metrics.Collector) *Repository {
	return &Repository{
		driver:  driver,
		metrics: collector,
		logger:  logger.Named("graph"),
	}
}

// Enabled reports whether the repository has a driver
func (r *Repository) Enabled() bool {
	return r.driver != nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	if r.driver == nil {
		return nil
	}
	return r.driver.Close(ctx)
}

// withSession opens one session, runs fn and always closes the session.
// Failures other than ErrNotFound are logged and wrapped as ErrGraphQueryFailed.
func (r *Repository) withSession(ctx context.Context, operation string, mode neo4j.AccessMode, fn func(neo4j.SessionWithContext) error) (err error) {
	if r.driver == nil {
		r.metrics.ObserveGraph(operation, metrics.OutcomeDisabled, 0)
		return ErrDisabled
	}

	start := time.Now()
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode})
	defer func() {
		if closeErr := session.Close(ctx); closeErr != nil {
			r.logger.Warn("Failed to close graph session",
				zap.String("operation", operation),
				zap.Error(closeErr),
			)
		}
	}()

	err = fn(session)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		r.metrics.ObserveGraph(operation, metrics.OutcomeOK, elapsed)
		return nil
	case errors.Is(err, ErrNotFound):
		r.metrics.ObserveGraph(operation, metrics.OutcomeEmpty, elapsed)
		return err
	default:
		r.metrics.ObserveGraph(operation, metrics.OutcomeError, elapsed)
		r.logger.Error("Graph operation failed",
			zap.String("operation", operation),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return apperrors.NewGraphQueryFailed(operation, err)
	}
}

// write runs a single auto-commit statement in a write session and drains it
func (r *Repository) write(ctx context.Context, operation, query string, params map[string]interface{}) error {
	return r.withSession(ctx, operation, neo4j.AccessModeWrite, func(session neo4j.SessionWithContext) error {
		return runAndConsume(ctx, session, query, params)
	})
}

// writeTx runs several statements in one managed write transaction
func (r *Repository) writeTx(ctx context.Context, operation string, statements []statement) error {
	return r.withSession(ctx, operation, neo4j.AccessModeWrite, func(session neo4j.SessionWithContext) error {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
			for _, st := range statements {
				result, err := tx.Run(ctx, st.query, st.params)
				if err != nil {
					return nil, err
				}
				if _, err := result.Consume(ctx); err != nil {
					return nil, err
				}
			}
			return nil, nil
		})
		return err
	})
}

// readSingle runs a read query and hands the first record to fn.
// No record yields ErrNotFound.
func (r *Repository) readSingle(ctx context.Context, operation, query string, params map[string]interface{}, fn func(*neo4j.Record) error) error {
	return r.withSession(ctx, operation, neo4j.AccessModeRead, func(session neo4j.SessionWithContext) error {
		result, err := session.Run(ctx, query, params)
		if err != nil {
			return err
		}
		if !result.Next(ctx) {
			if err := result.Err(); err != nil {
				return err
			}
			return ErrNotFound
		}
		return fn(result.Record())
	})
}

type statement struct {
	query  string
	params map[string]interface{}
}

func runAndConsume(ctx context.Context, session neo4j.SessionWithContext, query string, params map[string]interface{}) error {
	result, err := session.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}
