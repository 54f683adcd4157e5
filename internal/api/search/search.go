// Package search wraps the Tavily web-search API used by the research
// stages of both pipelines.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no Tavily API key was provided.
var ErrNotConfigured = errors.New("search client not configured")

// maxContentChars bounds each result's contribution to a research summary.
const maxContentChars = 150

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
}

func NewClient(baseURL, apiKey string, maxResults int, timeout time.Duration) *Client {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		maxResults: maxResults,
	}
}

// Result is a single web-search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Search issues one query with the configured result bound.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(searchRequest{Query: query, MaxResults: c.maxResults})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return parsed.Results, nil
}

// FormatResults renders results as a research summary block: one line per
// result, content truncated to 150 characters with an ellipsis marker.
func FormatResults(results []Result) string {
	var b strings.Builder
	for _, res := range results {
		content := strings.TrimSpace(res.Content)
		// Truncate by runes, not bytes; provider content is often Korean.
		if runes := []rune(content); len(runes) > maxContentChars {
			content = string(runes[:maxContentChars]) + "..."
		}
		b.WriteString("- ")
		b.WriteString(content)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
