package weather

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/travel-recommendation-api/app/observability/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestResolveWeatherSuccess(t *testing.T) {
	var geocodedName string
	geocoding := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geocodedName = r.URL.Query().Get("name")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[{"name":"Paris","latitude":48.8566,"longitude":2.3522}]}`)
	}))
	defer geocoding.Close()

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"current_weather":{"temperature":21.6,"weathercode":0}}`)
	}))
	defer forecast.Close()

	client := NewClient(geocoding.URL, forecast.URL, 5*time.Second, testLogger())
	got := client.ResolveWeather(context.Background(), "Paris & London")

	assert.Equal(t, "맑음, 22°C", got)
	// Composite names are reduced to the primary place before geocoding.
	assert.Equal(t, "Paris", geocodedName)
}

func TestResolveWeatherSentinelWhenUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "http://127.0.0.1:1", 500*time.Millisecond, testLogger())

	for _, place := range []string{"Seoul", "Osaka -> Kyoto", ""} {
		assert.Equal(t, Sentinel, client.ResolveWeather(context.Background(), place))
	}
}

func TestResolveWeatherSentinelOnNoGeocodingMatch(t *testing.T) {
	geocoding := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer geocoding.Close()

	client := NewClient(geocoding.URL, "http://127.0.0.1:1", 5*time.Second, testLogger())
	assert.Equal(t, Sentinel, client.ResolveWeather(context.Background(), "Atlantis"))
}

func TestResolveWeatherSentinelOnForecastError(t *testing.T) {
	geocoding := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[{"name":"Tokyo","latitude":35.68,"longitude":139.69}]}`)
	}))
	defer geocoding.Close()

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer forecast.Close()

	client := NewClient(geocoding.URL, forecast.URL, 5*time.Second, testLogger())
	assert.Equal(t, Sentinel, client.ResolveWeather(context.Background(), "Tokyo"))
}

func TestDescribeWeatherCode(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "맑음"},
		{2, "구름 조금"},
		{45, "안개"},
		{53, "이슬비"},
		{63, "비"},
		{73, "눈"},
		{81, "소나기"},
		{95, "뇌우"},
		{30, "흐림"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describeWeatherCode(tt.code), "code %d", tt.code)
	}
}
