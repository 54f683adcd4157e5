package types

// TravelPreferences is the body of POST /recommend/destinations. The JSON
// field names mirror the front-end client types and must not change.
// Preferences, Duration and Budget are required; the rest are optional
// extension fields supplied by the richer client form.
type TravelPreferences struct {
	Preferences          string   `json:"preferences"`
	Duration             string   `json:"duration"`
	Budget               string   `json:"budget"`
	StartDate            string   `json:"startDate,omitempty"`
	Travelers            int      `json:"travelers,omitempty"`
	TravelStyles         []string `json:"travelStyles,omitempty"`
	PreferredDestination string   `json:"preferredDestination,omitempty"`
}

// DestinationRecommendation is one recommended destination. ImageURL and
// Weather are derived after generation and are never empty in a response:
// either a provider value or the deterministic fallback.
type DestinationRecommendation struct {
	ID                      string `json:"id"`
	Destination             string `json:"destination"`
	Country                 string `json:"country"`
	ShortDescription        string `json:"shortDescription"`
	ReasonForRecommendation string `json:"reasonForRecommendation"`
	EstimatedTotalCost      string `json:"estimatedTotalCost"`
	FlightSuggestion        string `json:"flightSuggestion"`
	HotelSuggestion         string `json:"hotelSuggestion"`
	ImageURL                string `json:"imageUrl"`
	Weather                 string `json:"weather"`
}

// RecommendationsResponse is the body of a successful destinations call.
// Recommendations is empty, not absent, when generation fails.
type RecommendationsResponse struct {
	Recommendations []DestinationRecommendation `json:"recommendations"`
}

// ResearchSummary is the bounded plain-text block produced by the research
// stage and consumed only by the generation stage of the same request.
type ResearchSummary string

// Response is the generic error envelope written by api.ErrorResponse.
type Response struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
