package knowledge

import (
	"encoding/json"
	"errors"
	"strings"

	apperrors "travelmind/backend/pkg/errors"
)

// Insights is the fixed nine-field object extracted from a transcript
type Insights struct {
	Destinations             []string `json:"destinations"`
	Activities               []string `json:"activities"`
	Preferences              []string `json:"preferences"`
	Constraints              []string `json:"constraints"`
	BudgetIndicators         []string `json:"budget_indicators"`
	TravelStyle              string   `json:"travel_style"`
	GroupDynamics            []string `json:"group_dynamics"`
	SeasonalPreferences      []string `json:"seasonal_preferences"`
	AccommodationPreferences []string `json:"accommodation_preferences"`
}

var errNoJSONObject = errors.New("no JSON object found in reply")

// parseInsights reads the span from the first '{' to the last '}' of reply
// as an Insights object. Missing arrays come back empty rather than nil.
func parseInsights(reply string) (*Insights, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end <= start {
		return nil, apperrors.NewExtractionParse(reply, errNoJSONObject)
	}

	insights := &Insights{}
	if err := json.Unmarshal([]byte(reply[start:end+1]), insights); err != nil {
		return nil, apperrors.NewExtractionParse(reply, err)
	}

	insights.fillEmpty()
	return insights, nil
}

func (in *Insights) fillEmpty() {
	for _, field := range []*[]string{
		&in.Destinations,
		&in.Activities,
		&in.Preferences,
		&in.Constraints,
		&in.BudgetIndicators,
		&in.GroupDynamics,
		&in.SeasonalPreferences,
		&in.AccommodationPreferences,
	} {
		if *field == nil {
			*field = []string{}
		}
	}
}
