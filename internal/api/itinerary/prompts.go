package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/travel-recommendation-api/internal/types"
)

const (
	noGeneralData    = "추가 정보 없음"
	noRestaurantData = "맛집 정보 없음"
)

func generalResearchQuery(req types.ItineraryRequest) string {
	preferences := req.Preferences
	if preferences == "" {
		preferences = "관광"
	}
	return fmt.Sprintf("%s 여행 명소 관광 정보 %s", req.Destination, preferences)
}

// Restaurant research is two-tier: the dedicated food query first, then a
// reworded generic query before giving up.
func restaurantResearchQuery(req types.ItineraryRequest) string {
	return fmt.Sprintf("%s 맛집 추천 현지 음식", req.Destination)
}

func restaurantFallbackQuery(req types.ItineraryRequest) string {
	return fmt.Sprintf("%s 유명한 식당", req.Destination)
}

func itineraryPrompt(req types.ItineraryRequest, durationDays int, research types.ResearchSummary) string {
	return fmt.Sprintf(`You are a professional travel planner.
Create a detailed daily itinerary for a %d-day trip to %s.
Consider the following preferences: %s

Recent information about the destination gathered from the web:
%s

Return the result STRICTLY as a JSON object with this exact shape and no
other fields:
{
"itinerary": [
    {
    "day": 1,
    "theme": "theme of the day",
    "activities": [
        {
        "time": "time label such as 오전 10:00",
        "activity": "activity name",
        "description": "short description of the activity"
        }
    ],
    "meals": [
        {
        "name": "restaurant or dish name",
        "description": "why it is worth trying",
        "mapUrl": "https://www.google.com/maps/search/?api=1&query=<url-encoded restaurant name>"
        }
    ]
    }
],
"attractions": [
    {
    "name": "attraction name",
    "description": "one sentence about the attraction"
    }
]
}
The "itinerary" array must contain exactly %d entries with "day" numbered
1 through %d in order. Include 3 to 5 attractions. Do not wrap the
response in markdown markers. Ensure all text fields are in Korean.`,
		durationDays, req.Destination, req.Preferences, research, durationDays, durationDays)
}
