package destinations

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/travel-recommendation-api/internal/types"
)

// researchQuery builds the web-search query for the research stage,
// substituting generic terms for missing fields.
func researchQuery(prefs types.TravelPreferences) string {
	style := "여행"
	if len(prefs.TravelStyles) > 0 {
		style = strings.Join(prefs.TravelStyles, " ")
	}
	startDate := prefs.StartDate
	if startDate == "" {
		startDate = "올해"
	}
	travelers := "성인"
	if prefs.Travelers > 0 {
		travelers = fmt.Sprintf("%d명", prefs.Travelers)
	}
	destination := prefs.PreferredDestination
	if destination == "" {
		destination = "인기 해외 여행지"
	}
	return fmt.Sprintf("%s %s 출발 %s %s 추천 %s", destination, startDate, travelers, style, prefs.Preferences)
}

const noResearchData = "검색된 여행 정보가 없습니다."

// destinationConstraint renders the prompt rule for the preferred
// destination and trip length. Short trips (4 days or fewer) must get a
// single city; longer trips may combine two as "City1 & City2".
func destinationConstraint(prefs types.TravelPreferences, durationDays int) string {
	var b strings.Builder
	if prefs.PreferredDestination != "" {
		fmt.Fprintf(&b, "The traveler explicitly wants to visit %q. Only recommend this destination or close variants of it.\n", prefs.PreferredDestination)
	}
	if durationDays > 0 && durationDays <= 4 {
		b.WriteString("The trip is short, so every recommendation must be a single city.")
	} else {
		b.WriteString("Multi-city recommendations are allowed for this trip length; format them as \"City1 & City2\".")
	}
	return b.String()
}

func recommendationsPrompt(prefs types.TravelPreferences, research types.ResearchSummary, durationDays int) string {
	return fmt.Sprintf(`You are a professional travel consultant.
Recommend exactly 3 travel destinations based on the following user preferences:
- Preferences: %s
- Duration: %s days
- Budget: %s
- Start date: %s
- Travelers: %d
- Travel styles: %s

%s

Recent travel information gathered from the web:
%s

Return the result STRICTLY as a JSON object with this exact shape and no
other fields:
{
"recommendations": [
    {
    "destination": "city name",
    "country": "country name",
    "shortDescription": "one or two sentence description",
    "reasonForRecommendation": "why this fits the traveler",
    "estimatedTotalCost": "estimated total cost for the whole trip",
    "flightSuggestion": "flight route or airline suggestion",
    "hotelSuggestion": "area or hotel suggestion"
    }
]
}
Do not wrap the response in markdown markers. Ensure all text fields are in Korean.`,
		prefs.Preferences, prefs.Duration, prefs.Budget, prefs.StartDate,
		prefs.Travelers, strings.Join(prefs.TravelStyles, ", "),
		destinationConstraint(prefs, durationDays), research)
}
