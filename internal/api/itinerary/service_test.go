package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/travel-recommendation-api/app/observability/metrics"
	"github.com/FACorreiaa/travel-recommendation-api/internal/api/search"
	"github.com/FACorreiaa/travel-recommendation-api/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

// --- Mocks for Dependencies ---

type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Search(ctx context.Context, query string) ([]search.Result, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]search.Result), args.Error(1)
}

type MockImageResolver struct {
	mock.Mock
}

func (m *MockImageResolver) ResolveImage(ctx context.Context, subject, hint string) string {
	args := m.Called(ctx, subject, hint)
	return args.String(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var testRequest = types.ItineraryRequest{
	Destination: "Kyoto",
	Preferences: "temples, food",
	Duration:    "2",
}

const validItineraryResponse = `{
	"itinerary": [
		{
			"day": 1,
			"theme": "사원 탐방",
			"activities": [
				{"time": "오전 10:00", "activity": "후시미 이나리", "description": "천 개의 토리이"}
			],
			"meals": [
				{"name": "니시키 시장", "description": "교토의 부엌", "mapUrl": "https://www.google.com/maps/search/?api=1&query=Nishiki%20Market"}
			]
		},
		{
			"day": 2,
			"theme": "전통 거리",
			"activities": [
				{"time": "오전 9:00", "activity": "기온 거리", "description": "전통 찻집 거리"}
			],
			"meals": []
		}
	],
	"attractions": [
		{"name": "후시미 이나리", "description": "천 개의 붉은 토리이로 유명한 신사"},
		{"name": "금각사", "description": "금박으로 덮인 사찰"}
	]
}`

func TestRecommendItinerarySuccess(t *testing.T) {
	ai := new(MockAIClient)
	searcher := new(MockSearchClient)
	images := new(MockImageResolver)

	searcher.On("Search", mock.Anything, mock.Anything).
		Return([]search.Result{{Content: "교토 여행 정보"}}, nil)
	ai.On("GenerateContent", mock.Anything, mock.Anything).Return(validItineraryResponse, nil)
	images.On("ResolveImage", mock.Anything, "후시미 이나리", "Kyoto").Return("https://img.example/fushimi")
	images.On("ResolveImage", mock.Anything, "금각사", "Kyoto").Return("https://img.example/kinkakuji")

	svc := NewServiceImpl(ai, searcher, images, testLogger())
	resp, err := svc.RecommendItinerary(context.Background(), testRequest, 2)

	require.NoError(t, err)
	require.Len(t, resp.Itinerary, 2)
	assert.Equal(t, 1, resp.Itinerary[0].Day)
	assert.Equal(t, 2, resp.Itinerary[1].Day)
	require.Len(t, resp.Attractions, 2)
	assert.Equal(t, "https://img.example/fushimi", resp.Attractions[0].ImageURL)
	assert.Equal(t, "https://img.example/kinkakuji", resp.Attractions[1].ImageURL)

	images.AssertExpectations(t)
}

func TestRecommendItineraryGenerationErrorFailsEmpty(t *testing.T) {
	ai := new(MockAIClient)
	searcher := new(MockSearchClient)
	images := new(MockImageResolver)

	searcher.On("Search", mock.Anything, mock.Anything).Return([]search.Result{}, nil)
	ai.On("GenerateContent", mock.Anything, mock.Anything).Return("", errors.New("model unavailable"))

	svc := NewServiceImpl(ai, searcher, images, testLogger())
	resp, err := svc.RecommendItinerary(context.Background(), testRequest, 3)

	require.NoError(t, err)
	assert.NotNil(t, resp.Itinerary)
	assert.NotNil(t, resp.Attractions)
	assert.Empty(t, resp.Itinerary)
	assert.Empty(t, resp.Attractions)
}

func TestParseItineraryDayCount(t *testing.T) {
	// A 3-day request must yield exactly 3 entries numbered 1..3.
	_, _, err := parseItinerary(validItineraryResponse, 3)
	assert.Error(t, err)

	days, attractions, err := parseItinerary(validItineraryResponse, 2)
	require.NoError(t, err)
	assert.Len(t, days, 2)
	assert.Len(t, attractions, 2)
}

func TestParseItineraryRejectsBadNumbering(t *testing.T) {
	raw := `{
		"itinerary": [
			{"day": 2, "theme": "a", "activities": [{"time":"t","activity":"a","description":"d"}]},
			{"day": 1, "theme": "b", "activities": [{"time":"t","activity":"a","description":"d"}]}
		],
		"attractions": []
	}`
	_, _, err := parseItinerary(raw, 2)
	assert.Error(t, err)
}

func TestParseItineraryRejectsUnknownFields(t *testing.T) {
	raw := `{
		"itinerary": [
			{"day": 1, "theme": "a", "activities": [{"time":"t","activity":"a","description":"d"}], "hotel": "x"}
		],
		"attractions": []
	}`
	_, _, err := parseItinerary(raw, 1)
	assert.Error(t, err)
}

func TestResearchMergesGeneralFirst(t *testing.T) {
	ai := new(MockAIClient)
	searcher := new(MockSearchClient)
	images := new(MockImageResolver)

	searcher.On("Search", mock.Anything, generalResearchQuery(testRequest)).
		Return([]search.Result{{Content: "일반 정보"}}, nil)
	searcher.On("Search", mock.Anything, restaurantResearchQuery(testRequest)).
		Return([]search.Result{{Content: "맛집 정보"}}, nil)

	svc := NewServiceImpl(ai, searcher, images, testLogger())
	summary := string(svc.research(context.Background(), testRequest))

	general := strings.Index(summary, "일반 정보")
	restaurant := strings.Index(summary, "맛집 정보")
	require.GreaterOrEqual(t, general, 0)
	require.GreaterOrEqual(t, restaurant, 0)
	assert.Less(t, general, restaurant, "general info must precede restaurant info")
}

func TestRestaurantResearchFallsBackToSecondaryQuery(t *testing.T) {
	ai := new(MockAIClient)
	searcher := new(MockSearchClient)
	images := new(MockImageResolver)

	searcher.On("Search", mock.Anything, restaurantResearchQuery(testRequest)).
		Return(nil, errors.New("restaurant provider down")).Once()
	searcher.On("Search", mock.Anything, restaurantFallbackQuery(testRequest)).
		Return([]search.Result{{Content: "교토 유명 식당 목록"}}, nil).Once()

	svc := NewServiceImpl(ai, searcher, images, testLogger())
	got := svc.fetchRestaurants(context.Background(), testRequest)

	assert.Contains(t, got, "교토 유명 식당 목록")
	searcher.AssertExpectations(t)
}

func TestRestaurantResearchGivesUpAfterBothTiers(t *testing.T) {
	ai := new(MockAIClient)
	searcher := new(MockSearchClient)
	images := new(MockImageResolver)

	searcher.On("Search", mock.Anything, mock.Anything).
		Return(nil, errors.New("search down")).Twice()

	svc := NewServiceImpl(ai, searcher, images, testLogger())
	got := svc.fetchRestaurants(context.Background(), testRequest)

	assert.Equal(t, noRestaurantData, got)
	searcher.AssertExpectations(t)
}
