package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// User Operations
// ============================================================================

// userLink describes one User-[rel]->taxonomy node relationship
type userLink struct {
	operation string
	label     string
	keyProp   string
	rel       string
}

var (
	linkDestinationInterest = userLink{"add_destination_interest", "Destination", "name", "INTERESTED_IN_DESTINATION"}
	linkActivity            = userLink{"add_activity_interest", "Activity", "name", "ENJOYS_ACTIVITY"}
	linkConstraint          = userLink{"add_constraint", "Constraint", "description", "HAS_CONSTRAINT"}
	linkBudgetIndicator     = userLink{"add_budget_indicators", "BudgetIndicator", "description", "HAS_BUDGET_INDICATOR"}
	linkTravelStyle         = userLink{"set_travel_style", "TravelStyle", "name", "PREFERS_TRAVEL_STYLE"}
	linkFlightPreference    = userLink{"set_flight_preference", "FlightPreference", "type", "PREFERS_FLIGHT"}
	linkBudgetRange         = userLink{"set_budget_range", "BudgetRange", "range", "HAS_BUDGET"}
	linkInterest            = userLink{"add_interests", "Interest", "name", "INTERESTED_IN"}
	linkDealBreaker         = userLink{"add_deal_breakers", "DealBreaker", "description", "AVOIDS"}
)

// query merges the user, then one node and one edge per element of $values
func (l userLink) query() string {
	return fmt.Sprintf(`
		MERGE (u:User {id: $userID})
		WITH u
		UNWIND $values AS value
		MERGE (n:`+"`%s`"+` {%s: value})
		MERGE (u)-[:%s]->(n)
	`, l.label, l.keyProp, l.rel)
}

// linkUser merges the user and links it to one taxonomy node per value.
// Values are normalized; if none survive no query is issued.
func (r *Repository) linkUser(ctx context.Context, link userLink, userID string, values ...string) error {
	userID = NormalizeKey(userID)
	if userID == "" {
		return ErrEmptyKey
	}
	keys := normalizeKeys(values)
	if len(keys) == 0 {
		return ErrEmptyKey
	}

	if err := r.write(ctx, link.operation, link.query(), map[string]interface{}{
		"userID": userID,
		"values": toParamList(keys),
	}); err != nil {
		return err
	}

	r.logger.Debug("User linked",
		zap.String("operation", link.operation),
		zap.String("user_id", userID),
		zap.Strings("keys", keys),
	)
	return nil
}

// UpsertUser creates or updates a user node, overwriting its scalar attributes
func (r *Repository) UpsertUser(ctx context.Context, userID string, profile UserProfile) error {
	userID = NormalizeKey(userID)
	if userID == "" {
		return ErrEmptyKey
	}

	query := `
		MERGE (u:User {id: $userID})
		SET u.name = $name,
		    u.email = $email,
		    u.location = $location,
		    u.updated_at = datetime()
	`

	err := r.write(ctx, "upsert_user", query, map[string]interface{}{
		"userID":   userID,
		"name":     profile.Name,
		"email":    profile.Email,
		"location": profile.Location,
	})
	if err != nil {
		return err
	}

	r.logger.Info("User upserted", zap.String("user_id", userID))
	return nil
}

// UpsertTravelPreferences records explicitly stated preferences in a single
// transaction. Blank fields are skipped rather than stored as placeholders.
func (r *Repository) UpsertTravelPreferences(ctx context.Context, userID string, prefs TravelPreferences) error {
	userID = NormalizeKey(userID)
	if userID == "" {
		return ErrEmptyKey
	}

	statements := []statement{{
		query:  `MERGE (u:User {id: $userID}) SET u.updated_at = datetime()`,
		params: map[string]interface{}{"userID": userID},
	}}

	add := func(link userLink, values ...string) {
		keys := normalizeKeys(values)
		if len(keys) == 0 {
			return
		}
		statements = append(statements, statement{
			query:  link.query(),
			params: map[string]interface{}{"userID": userID, "values": toParamList(keys)},
		})
	}
	add(linkTravelStyle, prefs.TravelStyle)
	add(linkFlightPreference, prefs.FlightPreference)
	add(linkBudgetRange, prefs.Budget)
	add(linkInterest, prefs.Interests...)
	add(linkDealBreaker, prefs.DealBreakers...)

	return r.writeTx(ctx, "upsert_travel_preferences", statements)
}

// AddDestinationInterest links a user to a destination they showed interest in
func (r *Repository) AddDestinationInterest(ctx context.Context, userID, destination string) error {
	return r.linkUser(ctx, linkDestinationInterest, userID, destination)
}

// AddActivityInterest links a user to an activity they enjoy
func (r *Repository) AddActivityInterest(ctx context.Context, userID, activity string) error {
	return r.linkUser(ctx, linkActivity, userID, activity)
}

// AddConstraint links a user to a travel constraint
func (r *Repository) AddConstraint(ctx context.Context, userID, constraint string) error {
	return r.linkUser(ctx, linkConstraint, userID, constraint)
}

// AddBudgetIndicators links a user to every budget indicator in one call
func (r *Repository) AddBudgetIndicators(ctx context.Context, userID string, indicators []string) error {
	return r.linkUser(ctx, linkBudgetIndicator, userID, indicators...)
}

// SetTravelStyle links a user to a travel style. Earlier styles are kept.
func (r *Repository) SetTravelStyle(ctx context.Context, userID, travelStyle string) error {
	return r.linkUser(ctx, linkTravelStyle, userID, travelStyle)
}

// GetTravelContext reads back a user's taxonomy relationships and trip history.
// Returns ErrNotFound when no User node exists.
func (r *Repository) GetTravelContext(ctx context.Context, userID string) (*TravelContext, error) {
	userID = NormalizeKey(userID)
	if userID == "" {
		return nil, ErrEmptyKey
	}

	query := `
		MATCH (u:User {id: $userID})
		RETURN u.id AS id, u.name AS name, u.email AS email, u.location AS location, u.updated_at AS updated_at,
		       [(u)-[:PREFERS_TRAVEL_STYLE]->(n:TravelStyle) | n.name] AS travel_styles,
		       [(u)-[:PREFERS_FLIGHT]->(n:FlightPreference) | n.type] AS flight_preferences,
		       [(u)-[:HAS_BUDGET]->(n:BudgetRange) | n.range] AS budget_ranges,
		       [(u)-[:INTERESTED_IN]->(n:Interest) | n.name] AS interests,
		       [(u)-[:AVOIDS]->(n:DealBreaker) | n.description] AS deal_breakers,
		       [(u)-[:HAS_CONSTRAINT]->(n:` + "`Constraint`" + `) | n.description] AS constraints,
		       [(u)-[:HAS_BUDGET_INDICATOR]->(n:BudgetIndicator) | n.description] AS budget_indicators,
		       [(u)-[:ENJOYS_ACTIVITY]->(n:Activity) | n.name] AS activities,
		       [(u)-[:INTERESTED_IN_DESTINATION]->(n:Destination) | n.name] AS destination_interests,
		       [(u)-[:PARTICIPATED_IN]->(:Trip)-[:TRAVELS_TO]->(n:Destination) | n.name] AS visited_destinations,
		       [(u)-[:PARTICIPATED_IN]->(:Trip)-[:INCLUDES_PLACE]->(n:Place) | n.name] AS visited_places,
		       [(u)-[:PARTICIPATED_IN]->(:Trip)-[:STAYED_AT]->(n:Hotel) | n.name] AS stayed_hotels
	`

	var tc *TravelContext
	err := r.readSingle(ctx, "get_travel_context", query, map[string]interface{}{
		"userID": userID,
	}, func(record *neo4j.Record) error {
		tc = &TravelContext{
			User: User{
				ID:        getStringFromRecord(record, "id"),
				Name:      getStringFromRecord(record, "name"),
				Email:     getStringFromRecord(record, "email"),
				Location:  getStringFromRecord(record, "location"),
				UpdatedAt: getTimeFromRecord(record, "updated_at"),
			},
			TravelStyles:         getStringSliceFromRecord(record, "travel_styles"),
			FlightPreferences:    getStringSliceFromRecord(record, "flight_preferences"),
			BudgetRanges:         getStringSliceFromRecord(record, "budget_ranges"),
			Interests:            getStringSliceFromRecord(record, "interests"),
			DealBreakers:         getStringSliceFromRecord(record, "deal_breakers"),
			Constraints:          getStringSliceFromRecord(record, "constraints"),
			BudgetIndicators:     getStringSliceFromRecord(record, "budget_indicators"),
			Activities:           getStringSliceFromRecord(record, "activities"),
			DestinationInterests: getStringSliceFromRecord(record, "destination_interests"),
			VisitedDestinations:  getStringSliceFromRecord(record, "visited_destinations"),
			VisitedPlaces:        getStringSliceFromRecord(record, "visited_places"),
			StayedHotels:         getStringSliceFromRecord(record, "stayed_hotels"),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tc, nil
}
