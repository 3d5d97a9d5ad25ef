// ABOUTME: UnifiedClient chains search providers and returns the first non-empty success
// ABOUTME: Provider failures are logged and skipped; results are never merged across providers
package search

import (
	"context"
	"log"

	"redpen/internal/models"
)

// Provider is one web-search backend in the fallback chain.
type Provider interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// UnifiedClient tries providers in order. The first provider that
// succeeds with at least one result short-circuits the chain; a provider
// that fails or comes back empty just hands over to the next one.
type UnifiedClient struct {
	providers []Provider
}

// NewUnifiedClient builds the fallback chain in the given order.
func NewUnifiedClient(providers ...Provider) *UnifiedClient {
	if len(providers) == 0 {
		log.Printf("[search] no providers configured, search is disabled")
	}
	return &UnifiedClient{providers: providers}
}

// Search implements the pipeline's search port.
func (c *UnifiedClient) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	for _, provider := range c.providers {
		results, err := provider.Search(ctx, query)
		if err != nil {
			log.Printf("[search] provider failed, trying next: %v", err)
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	return nil, nil
}
