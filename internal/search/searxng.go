// ABOUTME: SearXNG search adapter over its JSON API
// ABOUTME: Caps results at 5 and trims snippets to 500 runes
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"redpen/internal/models"
)

const (
	searxngMaxResults = 5
	maxSnippetRunes   = 500
)

// SearXNGClient queries a self-hosted SearXNG instance.
type SearXNGClient struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

// NewSearXNGClient creates a client for the given SearXNG base URL.
func NewSearXNGClient(baseURL, language string) *SearXNGClient {
	if language == "" {
		language = "ru-RU"
	}
	return &SearXNGClient{
		baseURL:    baseURL,
		language:   language,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type searxngResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs one query. Empty result sets are not errors; transport and
// protocol failures are.
func (c *SearXNGClient) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("searxng: bad base url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("categories", "general")
	q.Set("language", c.language)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("searxng: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searxng: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searxng: http %d", resp.StatusCode)
	}

	var data searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("searxng: decode response: %w", err)
	}

	results := make([]models.SearchResult, 0, searxngMaxResults)
	for _, r := range data.Results {
		if len(results) == searxngMaxResults {
			break
		}
		results = append(results, models.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: truncateRunes(r.Content, maxSnippetRunes),
		})
	}
	return results, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
