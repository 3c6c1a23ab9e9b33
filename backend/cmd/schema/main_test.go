package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"travelmind/backend/internal/graph"
	"travelmind/backend/pkg/config"
)

func TestRun_WithoutCredentials(t *testing.T) {
	err := run(context.Background(), &config.Config{})
	assert.ErrorIs(t, err, graph.ErrDisabled)
}
