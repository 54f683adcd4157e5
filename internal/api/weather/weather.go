// Package weather resolves a place name to a current-conditions string via
// the Open-Meteo geocoding and forecast APIs.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FACorreiaa/travel-recommendation-api/app/observability/metrics"
	"github.com/FACorreiaa/travel-recommendation-api/internal/api/place"
)

// Sentinel is the fixed user-facing value for any lookup failure.
const Sentinel = "날씨 정보 없음"

type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
	logger       *slog.Logger
}

func NewClient(geocodingURL, forecastURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		geocodingURL: strings.TrimSuffix(geocodingURL, "/"),
		forecastURL:  strings.TrimSuffix(forecastURL, "/"),
		logger:       logger,
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// ResolveWeather returns "<description>, <temp>°C" for the primary place in
// a possibly composite string, or the sentinel on any failure. No retries.
func (c *Client) ResolveWeather(ctx context.Context, placeName string) string {
	primary := place.ExtractPrimaryName(placeName)
	if primary == "" {
		return c.sentinel(ctx, placeName, fmt.Errorf("empty place name"))
	}

	lat, lon, err := c.geocode(ctx, primary)
	if err != nil {
		return c.sentinel(ctx, primary, err)
	}

	temperature, code, err := c.currentWeather(ctx, lat, lon)
	if err != nil {
		return c.sentinel(ctx, primary, err)
	}

	return fmt.Sprintf("%s, %d°C", describeWeatherCode(code), int(math.Round(temperature)))
}

func (c *Client) sentinel(ctx context.Context, placeName string, err error) string {
	c.logger.WarnContext(ctx, "Weather lookup failed",
		slog.String("place", placeName), slog.Any("error", err))
	metrics.Get().WeatherFallbacksTotal.Add(ctx, 1)
	return Sentinel
}

func (c *Client) geocode(ctx context.Context, name string) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/v1/search?name=%s&count=1", c.geocodingURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoding provider returned status %d", resp.StatusCode)
	}

	var parsed geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding match for %q", name)
	}
	return parsed.Results[0].Latitude, parsed.Results[0].Longitude, nil
}

func (c *Client) currentWeather(ctx context.Context, lat, lon float64) (float64, int, error) {
	endpoint := fmt.Sprintf("%s/v1/forecast?latitude=%.4f&longitude=%.4f&current_weather=true",
		c.forecastURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("forecast provider returned status %d", resp.StatusCode)
	}

	var parsed forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, 0, fmt.Errorf("failed to decode forecast response: %w", err)
	}
	return parsed.CurrentWeather.Temperature, parsed.CurrentWeather.WeatherCode, nil
}

// describeWeatherCode maps WMO weather interpretation codes to the Korean
// phrases shown to the client.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "맑음"
	case code <= 3:
		return "구름 조금"
	case code == 45 || code == 48:
		return "안개"
	case code >= 51 && code <= 57:
		return "이슬비"
	case code >= 61 && code <= 67:
		return "비"
	case code >= 71 && code <= 77:
		return "눈"
	case code >= 80 && code <= 82:
		return "소나기"
	case code >= 85 && code <= 86:
		return "눈보라"
	case code >= 95:
		return "뇌우"
	default:
		return "흐림"
	}
}
