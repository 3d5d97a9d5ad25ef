// ABOUTME: Brave web search API adapter, key-gated
// ABOUTME: Caps results at 3; without a key the provider reports itself disabled
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"redpen/internal/models"
)

const braveMaxResults = 3

// ErrNoAPIKey is returned by providers that are configured without
// credentials, so the fallback chain can move on.
var ErrNoAPIKey = errors.New("no api key configured")

// BraveClient queries the Brave web search API.
type BraveClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewBraveClient creates a Brave search client. baseURL is overridable
// for tests; empty selects the production endpoint.
func NewBraveClient(apiKey, baseURL string) *BraveClient {
	if baseURL == "" {
		baseURL = "https://api.search.brave.com/res/v1/web/search"
	}
	return &BraveClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search runs one query against Brave.
func (c *BraveClient) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("brave: %w", ErrNoAPIKey)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("brave: bad base url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("count", fmt.Sprintf("%d", braveMaxResults))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("brave: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave: http %d", resp.StatusCode)
	}

	var data braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("brave: decode response: %w", err)
	}

	results := make([]models.SearchResult, 0, braveMaxResults)
	for _, r := range data.Web.Results {
		if len(results) == braveMaxResults {
			break
		}
		results = append(results, models.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: truncateRunes(r.Description, maxSnippetRunes),
		})
	}
	return results, nil
}
