// Package photos resolves a destination or attraction name to an image
// URL via the Unsplash search API, degrading to a deterministic
// placeholder when the provider cannot serve.
package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FACorreiaa/travel-recommendation-api/app/observability/metrics"
)

const placeholderTemplate = "https://picsum.photos/seed/%s/800/600"

type Client struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
	logger     *slog.Logger
}

func NewClient(baseURL, accessKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		accessKey:  accessKey,
		logger:     logger,
	}
}

type searchPhotosResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// ResolveImage returns an image URL for the subject. It tries up to three
// increasingly generic queries and stops at the first with a result. Every
// failure mode (missing key, transport error, non-200, zero results)
// degrades to the seeded placeholder; the function never returns an error.
func (c *Client) ResolveImage(ctx context.Context, subject, hint string) string {
	if subject == "" || c.accessKey == "" {
		return c.placeholder(subject)
	}

	for _, query := range buildQueries(subject, hint) {
		imageURL, err := c.searchOne(ctx, query)
		if err != nil {
			c.logger.WarnContext(ctx, "Photo search failed",
				slog.String("query", query), slog.Any("error", err))
			metrics.Get().ProviderFailuresTotal.Add(ctx, 1)
			break // provider is unhealthy, no point walking the ladder
		}
		if imageURL != "" {
			return imageURL
		}
	}

	return c.placeholder(subject)
}

func (c *Client) placeholder(subject string) string {
	metrics.Get().ImageFallbacksTotal.Add(context.Background(), 1)
	return fmt.Sprintf(placeholderTemplate, url.PathEscape(subject))
}

// buildQueries orders candidate queries most specific first.
func buildQueries(subject, hint string) []string {
	var queries []string
	if hint != "" {
		queries = append(queries,
			fmt.Sprintf("%s %s landmark architecture", subject, hint),
			fmt.Sprintf("%s famous tourist attraction", subject),
			fmt.Sprintf("%s %s", subject, hint),
		)
	} else {
		queries = append(queries,
			fmt.Sprintf("%s landmark architecture", subject),
			fmt.Sprintf("%s famous tourist attraction", subject),
			subject,
		)
	}
	return queries
}

// searchOne runs a single photo query; empty string means zero results.
func (c *Client) searchOne(ctx context.Context, query string) (string, error) {
	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=1&orientation=landscape",
		c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build photo search request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("photo search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("photo provider returned status %d", resp.StatusCode)
	}

	var parsed searchPhotosResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode photo search response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return "", nil
	}
	return parsed.Results[0].URLs.Regular, nil
}
