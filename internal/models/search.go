// ABOUTME: SearchResult is one hit returned by a web-search provider
// ABOUTME: Shared by all search adapters and the fact-check tool loop
package models

// SearchResult is a single (title, url, snippet) web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
