package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// naturalKey is the identifying property of one node label
type naturalKey struct {
	label    string
	property string
}

var naturalKeys = []naturalKey{
	{"User", "id"},
	{"Trip", "groupId"},
	{"Destination", "name"},
	{"Place", "name"},
	{"Hotel", "name"},
	{"Activity", "name"},
	{"TravelStyle", "name"},
	{"FlightPreference", "type"},
	{"BudgetRange", "range"},
	{"Interest", "name"},
	{"DealBreaker", "description"},
	{"Constraint", "description"},
	{"BudgetIndicator", "description"},
	{"GroupDynamic", "description"},
}

func (k naturalKey) constraintName() string {
	return fmt.Sprintf("%s_%s_unique", strings.ToLower(k.label), strings.ToLower(k.property))
}

func (k naturalKey) statement() string {
	return fmt.Sprintf("CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:`%s`) REQUIRE n.%s IS UNIQUE",
		k.constraintName(), k.label, k.property)
}

// EnsureSchema creates a uniqueness constraint for every natural key.
// Existing constraints are left as they are. Returns ErrDisabled without a driver.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	return r.withSession(ctx, "ensure_schema", neo4j.AccessModeWrite, func(session neo4j.SessionWithContext) error {
		for _, key := range naturalKeys {
			if err := runAndConsume(ctx, session, key.statement(), nil); err != nil {
				return fmt.Errorf("failed to create constraint %s: %w", key.constraintName(), err)
			}
			r.logger.Debug("Constraint ensured",
				zap.String("label", key.label),
				zap.String("property", key.property),
			)
		}
		return nil
	})
}
