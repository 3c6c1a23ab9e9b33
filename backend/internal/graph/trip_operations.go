package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// Trip Operations
// ============================================================================

const defaultPlaceType = "Unknown"

// UpsertTrip creates or updates a trip, overwriting its scalar attributes.
// The TRAVELS_TO edge is only written when a destination name is given.
func (r *Repository) UpsertTrip(ctx context.Context, groupID string, trip Trip) error {
	groupID = NormalizeKey(groupID)
	if groupID == "" {
		return ErrEmptyKey
	}

	destination := NormalizeKey(trip.DestinationName)

	// duration stays null when unknown so it never drags the average down
	var duration interface{}
	if trip.DurationDays > 0 {
		duration = int64(trip.DurationDays)
	}

	statements := []statement{{
		query: `
			MERGE (t:Trip {groupId: $groupID})
			SET t.destination = $destinationCode,
			    t.destinationDisplay = $destinationName,
			    t.departureDate = $departureDate,
			    t.returnDate = $returnDate,
			    t.duration = $duration,
			    t.budgetRange = $budgetRange,
			    t.updatedAt = datetime()
		`,
		params: map[string]interface{}{
			"groupID":         groupID,
			"destinationCode": trip.DestinationCode,
			"destinationName": destination,
			"departureDate":   trip.DepartureDate,
			"returnDate":      trip.ReturnDate,
			"duration":        duration,
			"budgetRange":     trip.BudgetRange,
		},
	}}

	if destination != "" {
		statements = append(statements, statement{
			query: `
				MATCH (t:Trip {groupId: $groupID})
				MERGE (d:Destination {name: $destination})
				MERGE (t)-[:TRAVELS_TO]->(d)
			`,
			params: map[string]interface{}{"groupID": groupID, "destination": destination},
		})
	}

	if err := r.writeTx(ctx, "upsert_trip", statements); err != nil {
		return err
	}

	r.logger.Info("Trip upserted",
		zap.String("group_id", groupID),
		zap.String("destination", destination),
	)
	return nil
}

// LinkUserToTrip records that a user participates in a trip. Both nodes are
// created if this is their first reference.
func (r *Repository) LinkUserToTrip(ctx context.Context, userID, groupID string) error {
	userID = NormalizeKey(userID)
	groupID = NormalizeKey(groupID)
	if userID == "" || groupID == "" {
		return ErrEmptyKey
	}

	query := `
		MERGE (u:User {id: $userID})
		MERGE (t:Trip {groupId: $groupID})
		MERGE (u)-[:PARTICIPATED_IN]->(t)
	`

	return r.write(ctx, "link_user_to_trip", query, map[string]interface{}{
		"userID":  userID,
		"groupID": groupID,
	})
}

// AddItinerary attaches the places and hotels of an itinerary to a trip in a
// single transaction. Places with a blank name are skipped; repeated names
// keep their first occurrence.
func (r *Repository) AddItinerary(ctx context.Context, groupID string, itinerary Itinerary) error {
	groupID = NormalizeKey(groupID)
	if groupID == "" {
		return ErrEmptyKey
	}

	places := placeParams(itinerary.Days)
	hotels, err := hotelParams(itinerary.Hotels)
	if err != nil {
		return err
	}
	if len(places) == 0 && len(hotels) == 0 {
		return nil
	}

	destination := NormalizeKey(itinerary.Destination)
	var statements []statement

	if len(places) > 0 {
		query := `
			MERGE (t:Trip {groupId: $groupID})
			WITH t
			UNWIND $places AS place
			MERGE (p:Place {name: place.name})
			SET p.type = place.type,
			    p.description = place.description,
			    p.duration = place.duration
			MERGE (t)-[:INCLUDES_PLACE]->(p)
		`
		if destination != "" {
			query += `
			WITH p
			MERGE (d:Destination {name: $destination})
			MERGE (p)-[:LOCATED_IN]->(d)
		`
		}
		statements = append(statements, statement{
			query: query,
			params: map[string]interface{}{
				"groupID":     groupID,
				"places":      places,
				"destination": destination,
			},
		})
	}

	if len(hotels) > 0 {
		statements = append(statements, statement{
			query: `
				MERGE (t:Trip {groupId: $groupID})
				WITH t
				UNWIND $hotels AS hotel
				MERGE (h:Hotel {name: hotel.name})
				SET h.rating = hotel.rating,
				    h.price = hotel.price,
				    h.amenities = hotel.amenities
				MERGE (t)-[:STAYED_AT]->(h)
			`,
			params: map[string]interface{}{
				"groupID": groupID,
				"hotels":  hotels,
			},
		})
	}

	if err := r.writeTx(ctx, "add_itinerary", statements); err != nil {
		return err
	}

	r.logger.Info("Itinerary added",
		zap.String("group_id", groupID),
		zap.Int("places", len(places)),
		zap.Int("hotels", len(hotels)),
	)
	return nil
}

// AddGroupDynamics links a trip to every group dynamic in one call
func (r *Repository) AddGroupDynamics(ctx context.Context, groupID string, dynamics []string) error {
	groupID = NormalizeKey(groupID)
	if groupID == "" {
		return ErrEmptyKey
	}
	keys := normalizeKeys(dynamics)
	if len(keys) == 0 {
		return ErrEmptyKey
	}

	query := `
		MERGE (t:Trip {groupId: $groupID})
		WITH t
		UNWIND $values AS value
		MERGE (gd:GroupDynamic {description: value})
		MERGE (t)-[:HAS_GROUP_DYNAMIC]->(gd)
	`

	return r.write(ctx, "add_group_dynamics", query, map[string]interface{}{
		"groupID": groupID,
		"values":  toParamList(keys),
	})
}

// GetDestinationStats aggregates every trip travelling to a destination.
// Each aggregate is collected in its own stage so the trip count and the
// average duration are computed over distinct trips only.
// Returns ErrNotFound when the destination node does not exist.
func (r *Repository) GetDestinationStats(ctx context.Context, destination string) (*DestinationStats, error) {
	destination = NormalizeKey(destination)
	if destination == "" {
		return nil, ErrEmptyKey
	}

	query := `
		MATCH (d:Destination {name: $destination})
		OPTIONAL MATCH (d)<-[:TRAVELS_TO]-(t:Trip)
		WITH d, collect(DISTINCT t) AS trips
		WITH d, trips, [trip IN trips WHERE trip.duration IS NOT NULL | toFloat(trip.duration)] AS durations
		OPTIONAL MATCH (d)<-[:TRAVELS_TO]-(:Trip)-[:INCLUDES_PLACE]->(p:Place)-[:LOCATED_IN]->(d)
		WITH d, trips, durations, collect(DISTINCT p.name) AS places
		OPTIONAL MATCH (d)<-[:TRAVELS_TO]-(:Trip)-[:STAYED_AT]->(h:Hotel)
		WITH d, trips, durations, places, collect(DISTINCT h.name) AS hotels
		OPTIONAL MATCH (d)<-[:TRAVELS_TO]-(:Trip)<-[:PARTICIPATED_IN]-(:User)-[:INTERESTED_IN]->(i:Interest)
		WITH d, trips, durations, places, hotels, collect(DISTINCT i.name) AS interests
		OPTIONAL MATCH (d)<-[:TRAVELS_TO]-(:Trip)<-[:PARTICIPATED_IN]-(:User)-[:ENJOYS_ACTIVITY]->(a:Activity)
		RETURN d.name AS destination,
		       size(trips) AS total_trips,
		       places AS popular_places,
		       hotels AS popular_hotels,
		       interests AS common_interests,
		       collect(DISTINCT a.name) AS common_activities,
		       CASE size(durations)
		         WHEN 0 THEN null
		         ELSE reduce(total = 0.0, x IN durations | total + x) / size(durations)
		       END AS average_duration
	`

	var stats *DestinationStats
	err := r.readSingle(ctx, "get_destination_stats", query, map[string]interface{}{
		"destination": destination,
	}, func(record *neo4j.Record) error {
		stats = &DestinationStats{
			Destination:      getStringFromRecord(record, "destination"),
			TotalTrips:       getInt64FromRecord(record, "total_trips"),
			PopularPlaces:    getStringSliceFromRecord(record, "popular_places"),
			PopularHotels:    getStringSliceFromRecord(record, "popular_hotels"),
			CommonInterests:  getStringSliceFromRecord(record, "common_interests"),
			CommonActivities: getStringSliceFromRecord(record, "common_activities"),
			AverageDuration:  getOptionalFloat64FromRecord(record, "average_duration"),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// ============================================================================
// Parameter Builders
// ============================================================================

func placeParams(days []ItineraryDay) []interface{} {
	var params []interface{}
	seen := make(map[string]bool)

	for _, day := range days {
		for _, place := range day.Places {
			name := NormalizeKey(place.Name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			placeType := place.Type
			if placeType == "" {
				placeType = defaultPlaceType
			}
			params = append(params, map[string]interface{}{
				"name":        name,
				"type":        placeType,
				"description": place.Description,
				"duration":    place.Duration,
			})
		}
	}
	return params
}

func hotelParams(hotels []Hotel) ([]interface{}, error) {
	var params []interface{}
	seen := make(map[string]bool)

	for _, hotel := range hotels {
		name := NormalizeKey(hotel.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		amenities := hotel.Amenities
		if amenities == nil {
			amenities = []string{}
		}
		encoded, err := json.Marshal(amenities)
		if err != nil {
			return nil, fmt.Errorf("failed to encode amenities for hotel %q: %w", name, err)
		}

		params = append(params, map[string]interface{}{
			"name":      name,
			"rating":    hotel.Rating,
			"price":     hotel.Price,
			"amenities": string(encoded),
		})
	}
	return params, nil
}
