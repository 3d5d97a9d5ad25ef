// ABOUTME: Tests for the unified search fallback chain
// ABOUTME: Verifies short-circuiting, skip-on-failure, and no cross-provider merging
package search

import (
	"context"
	"errors"
	"testing"

	"redpen/internal/models"
)

type stubProvider struct {
	calls   int
	results []models.SearchResult
	err     error
}

func (s *stubProvider) Search(_ context.Context, _ string) ([]models.SearchResult, error) {
	s.calls++
	return s.results, s.err
}

func result(title string) models.SearchResult {
	return models.SearchResult{Title: title, URL: "https://" + title, Snippet: "snippet"}
}

func TestUnified_FirstNonEmptyWins(t *testing.T) {
	a := &stubProvider{results: []models.SearchResult{result("a")}}
	b := &stubProvider{results: []models.SearchResult{result("b")}}
	c := NewUnifiedClient(a, b)

	got, err := c.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "a" {
		t.Errorf("expected provider a's results, got %v", got)
	}
	if b.calls != 0 {
		t.Error("chain must short-circuit before provider b")
	}
}

func TestUnified_FallbackOrder(t *testing.T) {
	tests := []struct {
		name      string
		a, b, c   *stubProvider
		wantTitle string
		wantEmpty bool
	}{
		{
			"a fails, b empty, c answers",
			&stubProvider{err: errors.New("down")},
			&stubProvider{},
			&stubProvider{results: []models.SearchResult{result("c")}},
			"c", false,
		},
		{
			"all empty",
			&stubProvider{}, &stubProvider{}, &stubProvider{},
			"", true,
		},
		{
			"all fail",
			&stubProvider{err: errors.New("x")},
			&stubProvider{err: errors.New("y")},
			&stubProvider{err: errors.New("z")},
			"", true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUnifiedClient(tt.a, tt.b, tt.c)
			got, err := u.Search(context.Background(), "q")
			if err != nil {
				t.Fatalf("chain must absorb provider errors, got %v", err)
			}
			if tt.wantEmpty {
				if len(got) != 0 {
					t.Errorf("expected no results, got %v", got)
				}
				return
			}
			if len(got) != 1 || got[0].Title != tt.wantTitle {
				t.Errorf("expected %q, got %v", tt.wantTitle, got)
			}
		})
	}
}

func TestUnified_NeverMergesProviders(t *testing.T) {
	a := &stubProvider{results: []models.SearchResult{result("a1"), result("a2")}}
	b := &stubProvider{results: []models.SearchResult{result("b1")}}
	u := NewUnifiedClient(a, b)

	got, _ := u.Search(context.Background(), "q")
	for _, r := range got {
		if r.Title == "b1" {
			t.Error("results from different providers must never be merged")
		}
	}
	if len(got) != 2 {
		t.Errorf("expected exactly provider a's 2 results, got %d", len(got))
	}
}

func TestUnified_NoProviders(t *testing.T) {
	u := NewUnifiedClient()
	got, err := u.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results, got %v", got)
	}
}
