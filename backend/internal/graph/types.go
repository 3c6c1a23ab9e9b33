package graph

import "time"

// ============================================================================
// Write Inputs
// ============================================================================

// UserProfile carries the scalar User attributes overwritten on every upsert
type UserProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// TravelPreferences is an explicitly stated preference set for a user
type TravelPreferences struct {
	TravelStyle      string   `json:"travel_style"`
	FlightPreference string   `json:"flight_preference"`
	Budget           string   `json:"budget"`
	Interests        []string `json:"interests"`
	DealBreakers     []string `json:"deal_breakers"`
}

// Trip is a planned group trip, keyed by group id
type Trip struct {
	DestinationCode string `json:"destination_code"`
	DestinationName string `json:"destination_name"`
	DepartureDate   string `json:"departure_date"`
	ReturnDate      string `json:"return_date"`
	DurationDays    int    `json:"duration_days"`
	BudgetRange     string `json:"budget_range"`
}

// Place is a point of interest included in an itinerary
type Place struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// ItineraryDay groups the places planned for one day
type ItineraryDay struct {
	Places []Place `json:"places"`
}

// Hotel is an accommodation attached to a trip
type Hotel struct {
	Name      string   `json:"name"`
	Rating    float64  `json:"rating"`
	Price     string   `json:"price"`
	Amenities []string `json:"amenities"`
}

// Itinerary is the day-by-day plan of a trip plus its hotels
type Itinerary struct {
	Destination string         `json:"destination"`
	Days        []ItineraryDay `json:"itinerary"`
	Hotels      []Hotel        `json:"hotels"`
}

// ============================================================================
// Read Results
// ============================================================================

// User is the User node as read back from the graph
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Location  string    `json:"location,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// TravelContext is everything the graph knows about one user's travel habits
type TravelContext struct {
	User                 User     `json:"user"`
	TravelStyles         []string `json:"travel_styles"`
	FlightPreferences    []string `json:"flight_preferences"`
	BudgetRanges         []string `json:"budget_ranges"`
	Interests            []string `json:"interests"`
	DealBreakers         []string `json:"deal_breakers"`
	Constraints          []string `json:"constraints"`
	BudgetIndicators     []string `json:"budget_indicators"`
	Activities           []string `json:"activities"`
	DestinationInterests []string `json:"destination_interests"`
	VisitedDestinations  []string `json:"visited_destinations"`
	VisitedPlaces        []string `json:"visited_places"`
	StayedHotels         []string `json:"stayed_hotels"`
}

// DestinationStats aggregates every trip that travels to one destination
type DestinationStats struct {
	Destination      string   `json:"destination"`
	TotalTrips       int64    `json:"total_trips"`
	PopularPlaces    []string `json:"popular_places"`
	PopularHotels    []string `json:"popular_hotels"`
	CommonInterests  []string `json:"common_interests"`
	CommonActivities []string `json:"common_activities"`
	// AverageDuration is nil when no trip to the destination records a duration
	AverageDuration *float64 `json:"average_duration"`
}
