package types

// ItineraryRequest is the body of POST /recommend/itinerary.
type ItineraryRequest struct {
	Destination string `json:"destination"`
	Preferences string `json:"preferences"`
	Duration    string `json:"duration"`
}

// ItineraryActivity is a single timed entry within a day.
type ItineraryActivity struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
}

// MealSuggestion is a restaurant recommendation attached to a day.
type MealSuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MapURL      string `json:"mapUrl"`
}

// ItineraryDay is one day of a generated plan. Day runs 1..N and a valid
// N-day itinerary carries exactly N entries in that order.
type ItineraryDay struct {
	Day        int                 `json:"day"`
	Theme      string              `json:"theme"`
	Activities []ItineraryActivity `json:"activities"`
	Meals      []MealSuggestion    `json:"meals,omitempty"`
}

// Attraction is a highlight of the destination, enriched with an image
// before the response is written.
type Attraction struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// ItineraryResponse is the body of a successful itinerary call. Both
// slices are empty, not absent, when generation fails.
type ItineraryResponse struct {
	Itinerary   []ItineraryDay `json:"itinerary"`
	Attractions []Attraction   `json:"attractions"`
}
